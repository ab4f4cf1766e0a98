package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/practice"
	"github.com/VA-creat/eassylang/internal/repository"
	"github.com/VA-creat/eassylang/internal/validation"
	"github.com/google/uuid"
)

// StartPracticeRequest configures a new practice session. A zero
// QuestionCount means the configured default.
type StartPracticeRequest struct {
	LanguageID     int64  `form:"language" json:"language_id" validate:"gt=0"`
	LessonID       *int64 `form:"lesson" json:"lesson_id,omitempty"`
	QuestionCount  int    `form:"question_count" json:"question_count"`
	MultipleChoice bool   `form:"multiple_choice" json:"multiple_choice"`
}

// PracticeSettings bounds the number of questions per session.
type PracticeSettings struct {
	DefaultQuestions int
	MaxQuestions     int
}

// PracticeService runs practice sessions
type PracticeService interface {
	Start(ctx context.Context, req StartPracticeRequest) (*models.PracticeSession, error)
	Current(ctx context.Context, id string) (*models.PracticeState, error)
	Answer(ctx context.Context, id, answer string) (*models.AnswerOutcome, error)
	Result(ctx context.Context, id string) (*models.PracticeResult, error)
	Recent(ctx context.Context, limit int) ([]models.PracticeSession, error)
}

type practiceService struct {
	sessionRepo  repository.SessionRepository
	wordRepo     repository.WordRepository
	lessonRepo   repository.LessonRepository
	languageRepo repository.LanguageRepository
	src          practice.Source
	settings     PracticeSettings
	newID        func() string
	now          func() time.Time
}

// NewPracticeService creates a new PracticeService drawing randomness from src.
func NewPracticeService(
	sessionRepo repository.SessionRepository,
	wordRepo repository.WordRepository,
	lessonRepo repository.LessonRepository,
	languageRepo repository.LanguageRepository,
	src practice.Source,
	settings PracticeSettings,
) PracticeService {
	if settings.MaxQuestions <= 0 {
		settings.MaxQuestions = 50
	}
	if settings.DefaultQuestions <= 0 || settings.DefaultQuestions > settings.MaxQuestions {
		settings.DefaultQuestions = min(10, settings.MaxQuestions)
	}
	return &practiceService{
		sessionRepo:  sessionRepo,
		wordRepo:     wordRepo,
		lessonRepo:   lessonRepo,
		languageRepo: languageRepo,
		src:          src,
		settings:     settings,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

func (s *practiceService) Start(ctx context.Context, req StartPracticeRequest) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = s.settings.DefaultQuestions
	}
	if req.QuestionCount < 1 || req.QuestionCount > s.settings.MaxQuestions {
		return nil, errors.NewValidationError("question_count",
			fmt.Sprintf("Ensure this value is between 1 and %d.", s.settings.MaxQuestions))
	}

	language, err := s.languageRepo.Get(ctx, req.LanguageID)
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if language == nil {
		return nil, errors.NewValidationError("language", "Select a valid choice.")
	}

	session := models.PracticeSession{
		ID:           s.newID(),
		LanguageID:   language.ID,
		LanguageName: language.Name,
		CreatedAt:    s.now(),
	}

	var pool []models.Word
	if req.LessonID != nil {
		lesson, err := s.lessonRepo.Get(ctx, *req.LessonID)
		if err != nil {
			log.Error("failed to get lesson: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if lesson == nil {
			return nil, errors.NewValidationError("lesson", "Select a valid choice.")
		}
		if lesson.LanguageID != language.ID {
			return nil, errors.NewValidationError("lesson", "Lesson does not belong to the selected language.")
		}
		session.LessonID = &lesson.ID
		session.LessonTitle = lesson.Title
		pool = lesson.Words
	} else {
		pool, err = s.wordRepo.ByLanguage(ctx, language.ID)
		if err != nil {
			log.Error("failed to load language words: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	chosen := practice.PickWords(s.src, pool, req.QuestionCount)
	if len(chosen) == 0 {
		log.Info("no words to practice: language_id=%d", language.ID)
		return nil, errors.NewNoWordsError()
	}

	questions := practice.BuildQuestions(s.src, chosen, pool, req.MultipleChoice)
	for i := range questions {
		questions[i].SessionID = session.ID
	}
	session.QuestionCount = len(questions)

	if err := s.sessionRepo.Create(ctx, session, questions); err != nil {
		log.Error("failed to create practice session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.WithField("session_id", session.ID).Info("started practice session: language_id=%d, questions=%d, multiple_choice=%t",
		language.ID, session.QuestionCount, req.MultipleChoice)
	return &session, nil
}

func (s *practiceService) session(ctx context.Context, id string) (*models.PracticeSession, error) {
	session, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get practice session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("practice session", id)
	}
	return session, nil
}

func (s *practiceService) state(ctx context.Context, session models.PracticeSession) (*models.PracticeState, error) {
	answered := min(session.Cursor, session.QuestionCount)
	state := &models.PracticeState{
		Session:     session,
		Answered:    answered,
		Total:       session.QuestionCount,
		ProgressPct: practice.Percent(answered, session.QuestionCount),
		Complete:    session.Complete(),
	}
	if state.Complete {
		return state, nil
	}

	question, err := s.sessionRepo.QuestionAt(ctx, session.ID, session.Cursor)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get current question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewInternalError(fmt.Errorf("session %s has no question at position %d", session.ID, session.Cursor))
	}
	state.Question = question
	return state, nil
}

func (s *practiceService) Current(ctx context.Context, id string) (*models.PracticeState, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, *session)
}

func (s *practiceService) Answer(ctx context.Context, id, answer string) (*models.AnswerOutcome, error) {
	log := logger.FromContext(ctx).WithField("session_id", id)

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, errors.NewValidationError("answer", "This field is required.")
	}

	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Complete() {
		return nil, errors.NewConflictError("practice session is already complete")
	}

	question, err := s.sessionRepo.QuestionAt(ctx, id, session.Cursor)
	if err != nil {
		log.Error("failed to get current question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewInternalError(fmt.Errorf("session %s has no question at position %d", id, session.Cursor))
	}

	correct := practice.GradeQuestion(*question, answer)
	updated, err := s.sessionRepo.RecordAnswer(ctx, id, question.Position, answer, correct)
	if stderrors.Is(err, repository.ErrStaleCursor) {
		log.Warn("answer for position %d lost a race", question.Position)
		return nil, errors.NewConflictError("this question has already been answered")
	}
	if err != nil {
		log.Error("failed to record answer: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("recorded answer: position=%d, correct=%t", question.Position, correct)

	if updated.Complete() {
		log.Info("practice session complete: correct=%d/%d", updated.CorrectCount, updated.QuestionCount)
	}

	state, err := s.state(ctx, *updated)
	if err != nil {
		return nil, err
	}
	return &models.AnswerOutcome{
		Correct:  correct,
		Expected: practice.ExpectedAnswer(question.Kind, question.Word),
		State:    *state,
	}, nil
}

func (s *practiceService) Result(ctx context.Context, id string) (*models.PracticeResult, error) {
	log := logger.FromContext(ctx)

	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}

	// Unanswered questions carry their translations; results wait for the last answer.
	if !session.Complete() {
		return nil, errors.NewConflictError("practice session is not complete yet")
	}

	questions, err := s.sessionRepo.Questions(ctx, id)
	if err != nil {
		log.Error("failed to list session questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := &models.PracticeResult{
		Session:   *session,
		Questions: questions,
		Percent:   practice.Percent(session.CorrectCount, session.QuestionCount),
	}
	result.Mood = practice.Mood(result.Percent)
	for _, q := range questions {
		if !q.IsCorrect {
			result.Missed = append(result.Missed, q)
		}
	}
	return result, nil
}

func (s *practiceService) Recent(ctx context.Context, limit int) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx)

	sessions, err := s.sessionRepo.Recent(ctx, limit)
	if err != nil {
		log.Error("failed to list recent sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}
