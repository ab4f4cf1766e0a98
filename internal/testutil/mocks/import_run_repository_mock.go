package mocks

import (
	"context"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockImportRunRepository is a mock implementation of repository.ImportRunRepository
type MockImportRunRepository struct {
	mock.Mock
}

func (m *MockImportRunRepository) Insert(ctx context.Context, run models.ImportRun) (int64, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImportRunRepository) Get(ctx context.Context, id int64) (*models.ImportRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportRun), args.Error(1)
}

func (m *MockImportRunRepository) MarkRunning(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImportRunRepository) Finish(ctx context.Context, id int64, summary models.ImportSummary, failure error) error {
	args := m.Called(ctx, id, summary, failure)
	return args.Error(0)
}

func (m *MockImportRunRepository) FailUnfinished(ctx context.Context, reason string) (int, error) {
	args := m.Called(ctx, reason)
	return args.Int(0), args.Error(1)
}
