package mocks

import (
	"context"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session models.PracticeSession, questions []models.PracticeQuestion) error {
	args := m.Called(ctx, session, questions)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*models.PracticeSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeSession), args.Error(1)
}

func (m *MockSessionRepository) QuestionAt(ctx context.Context, sessionID string, position int) (*models.PracticeQuestion, error) {
	args := m.Called(ctx, sessionID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeQuestion), args.Error(1)
}

func (m *MockSessionRepository) Questions(ctx context.Context, sessionID string) ([]models.PracticeQuestion, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeQuestion), args.Error(1)
}

func (m *MockSessionRepository) RecordAnswer(ctx context.Context, sessionID string, position int, answer string, correct bool) (*models.PracticeSession, error) {
	args := m.Called(ctx, sessionID, position, answer, correct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeSession), args.Error(1)
}

func (m *MockSessionRepository) Recent(ctx context.Context, limit int) ([]models.PracticeSession, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeSession), args.Error(1)
}
