package services_test

import (
	"context"
	"testing"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lessonFixture struct {
	lessons   *mocks.MockLessonRepository
	words     *mocks.MockWordRepository
	languages *mocks.MockLanguageRepository
	svc       services.LessonService
}

func newLessonFixture() lessonFixture {
	f := lessonFixture{
		lessons:   new(mocks.MockLessonRepository),
		words:     new(mocks.MockWordRepository),
		languages: new(mocks.MockLanguageRepository),
	}
	f.svc = services.NewLessonService(f.lessons, f.words, f.languages)
	f.languages.On("Get", mock.Anything, int64(1)).Return(&models.Language{ID: 1, Name: "Spanish"}, nil)
	return f
}

func TestLessonService_Create(t *testing.T) {
	f := newLessonFixture()
	f.lessons.On("TitleExists", mock.Anything, int64(1), "Animals").Return(false, nil)
	f.words.On("ByIDs", mock.Anything, []int64{10, 11}).Return([]models.Word{
		{ID: 10, LanguageID: 1}, {ID: 11, LanguageID: 1},
	}, nil)
	f.lessons.On("Insert", mock.Anything, mock.Anything, []int64{10, 11}).Return(int64(5), nil)

	lesson, err := f.svc.Create(context.Background(), services.CreateLessonRequest{
		LanguageID: 1, Title: " Animals ", WordIDs: []int64{10, 11, 10},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), lesson.ID)
	assert.Equal(t, "Animals", lesson.Title)
	assert.Equal(t, 2, lesson.WordCount)
}

func TestLessonService_CreateRejectsForeignWordsAndTakenTitle(t *testing.T) {
	f := newLessonFixture()
	f.lessons.On("TitleExists", mock.Anything, int64(1), "Animals").Return(true, nil)
	f.words.On("ByIDs", mock.Anything, []int64{10, 20}).Return([]models.Word{
		{ID: 10, LanguageID: 1}, {ID: 20, LanguageID: 2},
	}, nil)

	_, err := f.svc.Create(context.Background(), services.CreateLessonRequest{
		LanguageID: 1, Title: "Animals", WordIDs: []int64{10, 20},
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "All words must belong to the lesson's language.", appErr.Fields["words"])
	assert.Contains(t, appErr.Fields["title"], "already exists")
	f.lessons.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestLessonService_CreateUnknownWord(t *testing.T) {
	f := newLessonFixture()
	f.lessons.On("TitleExists", mock.Anything, int64(1), "Food").Return(false, nil)
	f.words.On("ByIDs", mock.Anything, []int64{10, 99}).Return([]models.Word{{ID: 10, LanguageID: 1}}, nil)

	_, err := f.svc.Create(context.Background(), services.CreateLessonRequest{
		LanguageID: 1, Title: "Food", WordIDs: []int64{10, 99},
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields["words"], "do not exist")
}

func TestLessonService_ListByLanguage(t *testing.T) {
	f := newLessonFixture()
	f.lessons.On("ListByLanguage", mock.Anything, int64(1)).Return([]models.Lesson{{ID: 1}}, nil)
	f.lessons.On("List", mock.Anything).Return([]models.Lesson{{ID: 1}, {ID: 2}}, nil)

	byLang, err := f.svc.List(context.Background(), 1)
	require.NoError(t, err)
	all, err := f.svc.List(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, byLang, 1)
	assert.Len(t, all, 2)
}

func TestLessonService_GetNotFound(t *testing.T) {
	f := newLessonFixture()
	f.lessons.On("Get", mock.Anything, int64(42)).Return(nil, nil)

	_, err := f.svc.Get(context.Background(), 42)

	assert.True(t, errors.IsNotFound(err))
}
