package mocks

import (
	"context"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLessonRepository is a mock implementation of repository.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Get(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonWithWords), args.Error(1)
}

func (m *MockLessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListByLanguage(ctx context.Context, languageID int64) ([]models.Lesson, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) TitleExists(ctx context.Context, languageID int64, title string) (bool, error) {
	args := m.Called(ctx, languageID, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockLessonRepository) Insert(ctx context.Context, lesson models.Lesson, wordIDs []int64) (int64, error) {
	args := m.Called(ctx, lesson, wordIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLessonRepository) Words(ctx context.Context, lessonID int64) ([]models.Word, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockLessonRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
