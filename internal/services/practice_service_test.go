package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/practice"
	"github.com/VA-creat/eassylang/internal/repository"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PracticeServiceSuite struct {
	suite.Suite
	sessions  *mocks.MockSessionRepository
	words     *mocks.MockWordRepository
	lessons   *mocks.MockLessonRepository
	languages *mocks.MockLanguageRepository
	svc       services.PracticeService
	ctx       context.Context
}

func (s *PracticeServiceSuite) SetupTest() {
	s.sessions = new(mocks.MockSessionRepository)
	s.words = new(mocks.MockWordRepository)
	s.lessons = new(mocks.MockLessonRepository)
	s.languages = new(mocks.MockLanguageRepository)
	s.svc = services.NewPracticeService(s.sessions, s.words, s.lessons, s.languages,
		practice.NewSource(7), services.PracticeSettings{DefaultQuestions: 2, MaxQuestions: 5})
	s.ctx = context.Background()

	s.languages.On("Get", mock.Anything, int64(1)).Return(&models.Language{ID: 1, Name: "Spanish"}, nil)
}

func spanishPool(n int) []models.Word {
	pool := make([]models.Word, n)
	for i := range pool {
		pool[i] = models.Word{
			ID:          int64(i + 1),
			LanguageID:  1,
			Term:        fmt.Sprintf("palabra%d", i),
			Translation: fmt.Sprintf("word%d", i),
		}
	}
	return pool
}

func (s *PracticeServiceSuite) TestStart_UsesDefaultCountAndLanguagePool() {
	s.words.On("ByLanguage", mock.Anything, int64(1)).Return(spanishPool(5), nil)
	s.sessions.On("Create", mock.Anything,
		mock.MatchedBy(func(ps models.PracticeSession) bool {
			return ps.ID != "" && ps.QuestionCount == 2 && ps.LessonID == nil && ps.Cursor == 0
		}),
		mock.MatchedBy(func(qs []models.PracticeQuestion) bool {
			return len(qs) == 2 && qs[0].Position == 0 && qs[1].Position == 1 && qs[0].SessionID != ""
		}),
	).Return(nil)

	session, err := s.svc.Start(s.ctx, services.StartPracticeRequest{LanguageID: 1})

	s.Require().NoError(err)
	s.Assert().Equal(2, session.QuestionCount)
	s.Assert().Equal("Spanish", session.LanguageName)
	s.sessions.AssertExpectations(s.T())
}

func (s *PracticeServiceSuite) TestStart_LessonPoolWithMultipleChoice() {
	lessonID := int64(3)
	s.lessons.On("Get", mock.Anything, lessonID).Return(&models.LessonWithWords{
		Lesson: models.Lesson{ID: lessonID, LanguageID: 1, Title: "Basics"},
		Words:  spanishPool(4),
	}, nil)
	s.sessions.On("Create", mock.Anything,
		mock.MatchedBy(func(ps models.PracticeSession) bool {
			return ps.LessonID != nil && *ps.LessonID == lessonID && ps.QuestionCount == 4
		}),
		mock.MatchedBy(func(qs []models.PracticeQuestion) bool {
			return qs[2].Kind == models.KindMultipleChoice && len(qs[2].Options) == 4
		}),
	).Return(nil)

	session, err := s.svc.Start(s.ctx, services.StartPracticeRequest{LanguageID: 1, LessonID: &lessonID, QuestionCount: 5, MultipleChoice: true})

	s.Require().NoError(err)
	s.Assert().Equal("Basics", session.LessonTitle)
	s.words.AssertNotCalled(s.T(), "ByLanguage", mock.Anything, mock.Anything)
}

func (s *PracticeServiceSuite) TestStart_LessonFromAnotherLanguage() {
	lessonID := int64(8)
	s.lessons.On("Get", mock.Anything, lessonID).Return(&models.LessonWithWords{
		Lesson: models.Lesson{ID: lessonID, LanguageID: 2},
	}, nil)

	_, err := s.svc.Start(s.ctx, services.StartPracticeRequest{LanguageID: 1, LessonID: &lessonID})

	appErr, ok := errors.AsAppError(err)
	s.Require().True(ok)
	s.Assert().Equal("Lesson does not belong to the selected language.", appErr.Fields["lesson"])
}

func (s *PracticeServiceSuite) TestStart_CountOutOfRange() {
	for _, n := range []int{-1, 6} {
		_, err := s.svc.Start(s.ctx, services.StartPracticeRequest{LanguageID: 1, QuestionCount: n})

		appErr, ok := errors.AsAppError(err)
		s.Require().True(ok, "count %d", n)
		s.Assert().Equal("Ensure this value is between 1 and 5.", appErr.Fields["question_count"])
	}
}

func (s *PracticeServiceSuite) TestStart_NoWords() {
	s.words.On("ByLanguage", mock.Anything, int64(1)).Return([]models.Word{}, nil)

	session, err := s.svc.Start(s.ctx, services.StartPracticeRequest{LanguageID: 1, QuestionCount: 3})

	s.Assert().Nil(session)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeNoWords))
	s.sessions.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PracticeServiceSuite) TestCurrent_NotFound() {
	s.sessions.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := s.svc.Current(s.ctx, "missing")

	s.Assert().True(errors.IsNotFound(err))
}

func (s *PracticeServiceSuite) TestCurrent_InProgress() {
	q := &models.PracticeQuestion{Position: 1, Kind: models.KindTranslationToTerm, Word: models.Word{Term: "gato", Translation: "cat"}}
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 4, Cursor: 1}, nil)
	s.sessions.On("QuestionAt", mock.Anything, "abc", 1).Return(q, nil)

	state, err := s.svc.Current(s.ctx, "abc")

	s.Require().NoError(err)
	s.Assert().False(state.Complete)
	s.Assert().Equal(1, state.Answered)
	s.Assert().Equal(2, state.CurrentIndex())
	s.Assert().Equal(25, state.ProgressPct)
	s.Assert().Equal("cat", state.Question.Prompt())
}

func (s *PracticeServiceSuite) TestAnswer_GradesAndAdvances() {
	first := &models.PracticeQuestion{Position: 0, Kind: models.KindTermToTranslation, Word: models.Word{Term: "gato", Translation: "cat"}}
	second := &models.PracticeQuestion{Position: 1, Kind: models.KindTranslationToTerm, Word: models.Word{Term: "perro", Translation: "dog"}}
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 2}, nil)
	s.sessions.On("QuestionAt", mock.Anything, "abc", 0).Return(first, nil)
	s.sessions.On("RecordAnswer", mock.Anything, "abc", 0, "CAT", true).
		Return(&models.PracticeSession{ID: "abc", QuestionCount: 2, Cursor: 1}, nil)
	s.sessions.On("QuestionAt", mock.Anything, "abc", 1).Return(second, nil)

	outcome, err := s.svc.Answer(s.ctx, "abc", "  CAT ")

	s.Require().NoError(err)
	s.Assert().True(outcome.Correct)
	s.Assert().Equal("cat", outcome.Expected)
	s.Assert().Equal(second, outcome.State.Question)
	s.Assert().Equal(1, outcome.State.Answered)
}

func (s *PracticeServiceSuite) TestAnswer_LastQuestionCompletes() {
	last := &models.PracticeQuestion{Position: 1, Kind: models.KindTranslationToTerm, Word: models.Word{Term: "perro", Translation: "dog"}}
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 2, Cursor: 1}, nil)
	s.sessions.On("QuestionAt", mock.Anything, "abc", 1).Return(last, nil)
	s.sessions.On("RecordAnswer", mock.Anything, "abc", 1, "gato", false).
		Return(&models.PracticeSession{ID: "abc", QuestionCount: 2, Cursor: 2, CorrectCount: 1}, nil)

	outcome, err := s.svc.Answer(s.ctx, "abc", "gato")

	s.Require().NoError(err)
	s.Assert().False(outcome.Correct)
	s.Assert().Equal("perro", outcome.Expected)
	s.Assert().True(outcome.State.Complete)
	s.Assert().Nil(outcome.State.Question)
	s.Assert().Equal(100, outcome.State.ProgressPct)
}

func (s *PracticeServiceSuite) TestAnswer_BlankRejected() {
	_, err := s.svc.Answer(s.ctx, "abc", "   ")

	appErr, ok := errors.AsAppError(err)
	s.Require().True(ok)
	s.Assert().Equal("This field is required.", appErr.Fields["answer"])
	s.sessions.AssertNotCalled(s.T(), "RecordAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PracticeServiceSuite) TestAnswer_CompletedSessionConflicts() {
	s.sessions.On("Get", mock.Anything, "done").Return(&models.PracticeSession{ID: "done", QuestionCount: 1, Cursor: 1}, nil)

	_, err := s.svc.Answer(s.ctx, "done", "anything")

	s.Assert().True(errors.IsCode(err, errors.ErrCodeConflict))
}

func (s *PracticeServiceSuite) TestAnswer_StaleCursorConflicts() {
	q := &models.PracticeQuestion{Position: 0, Kind: models.KindTermToTranslation, Word: models.Word{Translation: "cat"}}
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 2}, nil)
	s.sessions.On("QuestionAt", mock.Anything, "abc", 0).Return(q, nil)
	s.sessions.On("RecordAnswer", mock.Anything, "abc", 0, "cat", true).Return(nil, repository.ErrStaleCursor)

	_, err := s.svc.Answer(s.ctx, "abc", "cat")

	s.Assert().True(errors.IsCode(err, errors.ErrCodeConflict))
}

func (s *PracticeServiceSuite) TestResult() {
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 3, Cursor: 3, CorrectCount: 2}, nil)
	s.sessions.On("Questions", mock.Anything, "abc").Return([]models.PracticeQuestion{
		{Position: 0, UserAnswer: "cat", IsCorrect: true},
		{Position: 1, UserAnswer: "perro", IsCorrect: false},
		{Position: 2, UserAnswer: "dog", IsCorrect: true},
	}, nil)

	result, err := s.svc.Result(s.ctx, "abc")

	s.Require().NoError(err)
	s.Assert().Equal(66, result.Percent)
	s.Assert().Equal(practice.Mood(66), result.Mood)
	s.Require().Len(result.Missed, 1)
	s.Assert().Equal(1, result.Missed[0].Position)
}

func (s *PracticeServiceSuite) TestResult_UnfinishedSessionConflicts() {
	s.sessions.On("Get", mock.Anything, "abc").Return(&models.PracticeSession{ID: "abc", QuestionCount: 3, Cursor: 1}, nil)

	result, err := s.svc.Result(s.ctx, "abc")

	s.Assert().Nil(result)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeConflict))
	s.sessions.AssertNotCalled(s.T(), "Questions", mock.Anything, "abc")
}

func (s *PracticeServiceSuite) TestResult_NotFound() {
	s.sessions.On("Get", mock.Anything, "nope").Return(nil, nil)

	_, err := s.svc.Result(s.ctx, "nope")

	s.Assert().True(errors.IsNotFound(err))
}

func TestPracticeServiceSuite(t *testing.T) {
	suite.Run(t, new(PracticeServiceSuite))
}

func TestNewPracticeService_ClampsSettings(t *testing.T) {
	languages := new(mocks.MockLanguageRepository)
	words := new(mocks.MockWordRepository)
	sessions := new(mocks.MockSessionRepository)
	languages.On("Get", mock.Anything, int64(1)).Return(&models.Language{ID: 1}, nil)
	words.On("ByLanguage", mock.Anything, int64(1)).Return(spanishPool(20), nil)
	sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := services.NewPracticeService(sessions, words, nil, languages, practice.NewSource(1), services.PracticeSettings{})
	session, err := svc.Start(context.Background(), services.StartPracticeRequest{LanguageID: 1})

	require.NoError(t, err)
	assert.Equal(t, 10, session.QuestionCount)
}
