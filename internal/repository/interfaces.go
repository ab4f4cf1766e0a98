package repository

import (
	"context"
	"errors"

	"github.com/VA-creat/eassylang/internal/models"
)

// ErrStaleCursor is returned when an answer targets a question that is no longer
// the session's current one, typically because another request answered it first.
var ErrStaleCursor = errors.New("practice session cursor moved")

// Lookups by id return (nil, nil) when the row does not exist.

// LanguageRepository handles language data access
type LanguageRepository interface {
	Get(ctx context.Context, id int64) (*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
	List(ctx context.Context) ([]models.Language, error)
	Insert(ctx context.Context, language models.Language) (int64, error)
	Count(ctx context.Context) (int, error)
}

// WordRepository handles word data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	ByLanguage(ctx context.Context, languageID int64) ([]models.Word, error)
	ByIDs(ctx context.Context, ids []int64) ([]models.Word, error)
	Exists(ctx context.Context, languageID int64, term, translation string) (bool, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	InsertBatch(ctx context.Context, words []models.Word) (models.ImportSummary, error)
	Delete(ctx context.Context, id int64) error
}

// LessonRepository handles lesson data access
type LessonRepository interface {
	Get(ctx context.Context, id int64) (*models.LessonWithWords, error)
	List(ctx context.Context) ([]models.Lesson, error)
	ListByLanguage(ctx context.Context, languageID int64) ([]models.Lesson, error)
	TitleExists(ctx context.Context, languageID int64, title string) (bool, error)
	Insert(ctx context.Context, lesson models.Lesson, wordIDs []int64) (int64, error)
	Words(ctx context.Context, lessonID int64) ([]models.Word, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository handles practice session and question data access
type SessionRepository interface {
	Create(ctx context.Context, session models.PracticeSession, questions []models.PracticeQuestion) error
	Get(ctx context.Context, id string) (*models.PracticeSession, error)
	QuestionAt(ctx context.Context, sessionID string, position int) (*models.PracticeQuestion, error)
	Questions(ctx context.Context, sessionID string) ([]models.PracticeQuestion, error)
	RecordAnswer(ctx context.Context, sessionID string, position int, answer string, correct bool) (*models.PracticeSession, error)
	Recent(ctx context.Context, limit int) ([]models.PracticeSession, error)
}

// ImportRunRepository handles import run bookkeeping
type ImportRunRepository interface {
	Insert(ctx context.Context, run models.ImportRun) (int64, error)
	Get(ctx context.Context, id int64) (*models.ImportRun, error)
	MarkRunning(ctx context.Context, id int64) error
	Finish(ctx context.Context, id int64, summary models.ImportSummary, failure error) error
	FailUnfinished(ctx context.Context, reason string) (int, error)
}
