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

// CreateLanguageRequest is the input for adding a language.
type CreateLanguageRequest struct {
	Name string `form:"name" json:"name" validate:"required,max=100"`
	Code string `form:"code" json:"code" validate:"required,max=10"`
}

// LanguageService handles language-related business logic
type LanguageService interface {
	List(ctx context.Context) ([]models.Language, error)
	Get(ctx context.Context, id int64) (*models.Language, error)
	Create(ctx context.Context, req CreateLanguageRequest) (*models.Language, error)
}

type languageService struct {
	languageRepo repository.LanguageRepository
}

// NewLanguageService creates a new LanguageService
func NewLanguageService(languageRepo repository.LanguageRepository) LanguageService {
	return &languageService{languageRepo: languageRepo}
}

func (s *languageService) List(ctx context.Context) ([]models.Language, error) {
	log := logger.FromContext(ctx)

	languages, err := s.languageRepo.List(ctx)
	if err != nil {
		log.Error("failed to list languages: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return languages, nil
}

func (s *languageService) Get(ctx context.Context, id int64) (*models.Language, error) {
	log := logger.FromContext(ctx)

	language, err := s.languageRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if language == nil {
		return nil, errors.NewNotFoundError("language", id)
	}
	return language, nil
}

func (s *languageService) Create(ctx context.Context, req CreateLanguageRequest) (*models.Language, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.languageRepo.GetByCode(ctx, req.Code)
	if err != nil {
		log.Error("failed to look up language code: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewValidationError("code", "Language with this code already exists.")
	}

	language := models.Language{Name: req.Name, Code: req.Code}
	id, err := s.languageRepo.Insert(ctx, language)
	if err != nil {
		log.Error("failed to insert language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	language.ID = id

	log.Info("created language: id=%d, code=%s", id, language.Code)
	return &language, nil
}
