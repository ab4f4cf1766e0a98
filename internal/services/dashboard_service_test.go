package services_test

import (
	"context"
	"testing"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	languages := new(mocks.MockLanguageRepository)
	words := new(mocks.MockWordRepository)
	lessons := new(mocks.MockLessonRepository)
	sessions := new(mocks.MockSessionRepository)

	languages.On("Count", mock.Anything).Return(2, nil)
	words.On("Count", mock.Anything, models.WordFilter{}).Return(40, nil)
	lessons.On("Count", mock.Anything).Return(3, nil)
	sessions.On("Recent", mock.Anything, 5).Return([]models.PracticeSession{{ID: "a"}, {ID: "b"}}, nil)

	dash, err := services.NewDashboardService(languages, words, lessons, sessions).Summary(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, models.DashboardCounts{Languages: 2, Words: 40, Lessons: 3}, dash.Counts)
	assert.Len(t, dash.Recent, 2)
}
