package services

import (
	"context"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

// DashboardService handles the home page summary
type DashboardService interface {
	Summary(ctx context.Context, recent int) (*models.Dashboard, error)
}

type dashboardService struct {
	languageRepo repository.LanguageRepository
	wordRepo     repository.WordRepository
	lessonRepo   repository.LessonRepository
	sessionRepo  repository.SessionRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	languageRepo repository.LanguageRepository,
	wordRepo repository.WordRepository,
	lessonRepo repository.LessonRepository,
	sessionRepo repository.SessionRepository,
) DashboardService {
	return &dashboardService{
		languageRepo: languageRepo,
		wordRepo:     wordRepo,
		lessonRepo:   lessonRepo,
		sessionRepo:  sessionRepo,
	}
}

func (s *dashboardService) Summary(ctx context.Context, recent int) (*models.Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: recent=%d", recent)

	var (
		dash models.Dashboard
		err  error
	)

	if dash.Counts.Languages, err = s.languageRepo.Count(ctx); err != nil {
		log.Error("failed to count languages: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if dash.Counts.Words, err = s.wordRepo.Count(ctx, models.WordFilter{}); err != nil {
		log.Error("failed to count words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if dash.Counts.Lessons, err = s.lessonRepo.Count(ctx); err != nil {
		log.Error("failed to count lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if recent > 0 {
		if dash.Recent, err = s.sessionRepo.Recent(ctx, recent); err != nil {
			log.Error("failed to list recent sessions: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	return &dash, nil
}
