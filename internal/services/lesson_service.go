package services

import (
	"context"
	"strings"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
	"github.com/VA-creat/eassylang/internal/validation"
)

// CreateLessonRequest is the input for adding a lesson.
type CreateLessonRequest struct {
	LanguageID  int64   `form:"language" json:"language_id" validate:"gt=0"`
	Title       string  `form:"title" json:"title" validate:"required,max=200"`
	Description string  `form:"description" json:"description" validate:"max=2000"`
	WordIDs     []int64 `form:"words" json:"word_ids"`
}

// LessonService handles lesson-related business logic
type LessonService interface {
	List(ctx context.Context, languageID int64) ([]models.Lesson, error)
	Get(ctx context.Context, id int64) (*models.LessonWithWords, error)
	Create(ctx context.Context, req CreateLessonRequest) (*models.Lesson, error)
}

type lessonService struct {
	lessonRepo   repository.LessonRepository
	wordRepo     repository.WordRepository
	languageRepo repository.LanguageRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(lessonRepo repository.LessonRepository, wordRepo repository.WordRepository, languageRepo repository.LanguageRepository) LessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		wordRepo:     wordRepo,
		languageRepo: languageRepo,
	}
}

// List returns every lesson, or only those of languageID when it is non-zero.
func (s *lessonService) List(ctx context.Context, languageID int64) ([]models.Lesson, error) {
	log := logger.FromContext(ctx)

	var (
		lessons []models.Lesson
		err     error
	)
	if languageID > 0 {
		lessons, err = s.lessonRepo.ListByLanguage(ctx, languageID)
	} else {
		lessons, err = s.lessonRepo.List(ctx)
	}
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

func (s *lessonService) Get(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	log := logger.FromContext(ctx)

	lesson, err := s.lessonRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

func (s *lessonService) Create(ctx context.Context, req CreateLessonRequest) (*models.Lesson, error) {
	log := logger.FromContext(ctx)

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	language, err := s.languageRepo.Get(ctx, req.LanguageID)
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if language == nil {
		return nil, errors.NewValidationError("language", "Select a valid choice.")
	}

	fields := map[string]string{}

	taken, err := s.lessonRepo.TitleExists(ctx, req.LanguageID, req.Title)
	if err != nil {
		log.Error("failed to check lesson title: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if taken {
		fields["title"] = "Lesson with this language and title already exists."
	}

	wordIDs := uniqueIDs(req.WordIDs)
	if len(wordIDs) > 0 {
		words, err := s.wordRepo.ByIDs(ctx, wordIDs)
		if err != nil {
			log.Error("failed to load lesson words: %v", err)
			return nil, errors.NewInternalError(err)
		}
		switch {
		case len(words) != len(wordIDs):
			fields["words"] = "Select a valid choice. Some of the selected words do not exist."
		case !sameLanguage(words, req.LanguageID):
			fields["words"] = "All words must belong to the lesson's language."
		}
	}

	if len(fields) > 0 {
		return nil, errors.NewFieldErrors(fields)
	}

	lesson := models.Lesson{
		LanguageID:   req.LanguageID,
		LanguageName: language.Name,
		Title:        req.Title,
		Description:  req.Description,
		WordCount:    len(wordIDs),
	}
	id, err := s.lessonRepo.Insert(ctx, lesson, wordIDs)
	if err != nil {
		log.Error("failed to insert lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	lesson.ID = id

	log.Info("created lesson: id=%d, words=%d", id, len(wordIDs))
	return &lesson, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameLanguage(words []models.Word, languageID int64) bool {
	for _, w := range words {
		if w.LanguageID != languageID {
			return false
		}
	}
	return true
}
