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

// CreateWordRequest is the input for adding a word.
type CreateWordRequest struct {
	LanguageID   int64               `form:"language" json:"language_id" validate:"gt=0"`
	Term         string              `form:"term" json:"term" validate:"required,max=255"`
	Translation  string              `form:"translation" json:"translation" validate:"required,max=255"`
	PartOfSpeech models.PartOfSpeech `form:"part_of_speech" json:"part_of_speech" validate:"part_of_speech"`
	Example      string              `form:"example" json:"example" validate:"max=1000"`
}

// WordService handles word-related business logic
type WordService interface {
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error)
	Get(ctx context.Context, id int64) (*models.Word, error)
	Create(ctx context.Context, req CreateWordRequest) (*models.Word, error)
	Delete(ctx context.Context, id int64) error
}

type wordService struct {
	wordRepo     repository.WordRepository
	languageRepo repository.LanguageRepository
}

// NewWordService creates a new WordService
func NewWordService(wordRepo repository.WordRepository, languageRepo repository.LanguageRepository) WordService {
	return &wordService{wordRepo: wordRepo, languageRepo: languageRepo}
}

func (s *wordService) List(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error) {
	log := logger.FromContext(ctx)
	filter.Query = strings.TrimSpace(filter.Query)
	log.Debug("listing words: language_id=%d, query=%q", filter.LanguageID, filter.Query)

	words, err := s.wordRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	total, err := s.wordRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count words: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return words, total, nil
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx)

	word, err := s.wordRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

func (s *wordService) Create(ctx context.Context, req CreateWordRequest) (*models.Word, error) {
	log := logger.FromContext(ctx)

	req.Term = strings.TrimSpace(req.Term)
	req.Translation = strings.TrimSpace(req.Translation)
	req.Example = strings.TrimSpace(req.Example)
	if strings.TrimSpace(string(req.PartOfSpeech)) == "" {
		req.PartOfSpeech = models.PartOther
	}
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

	exists, err := s.wordRepo.Exists(ctx, req.LanguageID, req.Term, req.Translation)
	if err != nil {
		log.Error("failed to check word uniqueness: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewValidationError("term", "Word with this language, term and translation already exists.")
	}

	word := models.Word{
		LanguageID:   req.LanguageID,
		LanguageName: language.Name,
		Term:         req.Term,
		Translation:  req.Translation,
		PartOfSpeech: req.PartOfSpeech,
		Example:      req.Example,
	}
	id, err := s.wordRepo.Insert(ctx, word)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	word.ID = id

	log.Info("created word: id=%d, language_id=%d", id, word.LanguageID)
	return &word, nil
}

func (s *wordService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.wordRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete word: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("deleted word: id=%d", id)
	return nil
}
