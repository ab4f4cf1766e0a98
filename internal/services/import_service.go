package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/importer"
	"github.com/VA-creat/eassylang/internal/jobs"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
	"github.com/VA-creat/eassylang/internal/worker"
)

// ImportService handles word list imports
type ImportService interface {
	worker.ImportRunner
	Import(ctx context.Context, languageID int64, filename string, r io.Reader) (models.ImportSummary, error)
	Enqueue(ctx context.Context, languageID int64, filename string, data []byte) (*models.ImportRun, error)
	GetRun(ctx context.Context, id int64) (*models.ImportRun, error)
	RecoverUnfinished(ctx context.Context) (int, error)
}

type importService struct {
	wordRepo     repository.WordRepository
	languageRepo repository.LanguageRepository
	runRepo      repository.ImportRunRepository
	jobQueue     jobs.JobQueue
	maxBytes     int64
}

// NewImportService creates a new ImportService
func NewImportService(
	wordRepo repository.WordRepository,
	languageRepo repository.LanguageRepository,
	runRepo repository.ImportRunRepository,
	jobQueue jobs.JobQueue,
	maxBytes int64,
) ImportService {
	return &importService{
		wordRepo:     wordRepo,
		languageRepo: languageRepo,
		runRepo:      runRepo,
		jobQueue:     jobQueue,
		maxBytes:     maxBytes,
	}
}

func (s *importService) tooLarge() *errors.AppError {
	return errors.NewValidationError("file", fmt.Sprintf("File is too large (limit %d KB).", s.maxBytes/1024))
}

func (s *importService) checkUpload(ctx context.Context, languageID int64, filename string) (*models.Language, error) {
	log := logger.FromContext(ctx)

	fields := map[string]string{}
	var language *models.Language
	if languageID > 0 {
		var err error
		language, err = s.languageRepo.Get(ctx, languageID)
		if err != nil {
			log.Error("failed to get language: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}
	if language == nil {
		fields["language"] = "Select a valid choice."
	}
	if !importer.Supported(filename) {
		fields["file"] = fmt.Sprintf("Unsupported file type. Upload one of: %s.", strings.Join(importer.SupportedExtensions, ", "))
	}
	if len(fields) > 0 {
		return nil, errors.NewFieldErrors(fields)
	}
	return language, nil
}

// Import reads r and inserts its words into languageID in one transaction.
func (s *importService) Import(ctx context.Context, languageID int64, filename string, r io.Reader) (models.ImportSummary, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"language_id": languageID,
		"filename":    filename,
	})

	if _, err := s.checkUpload(ctx, languageID, filename); err != nil {
		return models.ImportSummary{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		log.Error("failed to read upload: %v", err)
		return models.ImportSummary{}, errors.NewBadRequestError("could not read uploaded file")
	}
	if int64(len(data)) > s.maxBytes {
		return models.ImportSummary{}, s.tooLarge()
	}

	rows, err := importer.ReadRows(filename, bytes.NewReader(data))
	if err != nil {
		log.Warn("failed to parse upload: %v", err)
		return models.ImportSummary{}, errors.NewValidationError("file", "Could not read the file: "+err.Error())
	}

	words, invalid := importer.Words(languageID, rows)
	log.Debug("parsed upload: rows=%d, words=%d, invalid=%d", len(rows), len(words), invalid)

	summary, err := s.wordRepo.InsertBatch(ctx, words)
	if err != nil {
		log.Error("failed to insert words: %v", err)
		return models.ImportSummary{}, errors.NewInternalError(err)
	}
	summary.Skipped += invalid

	log.Info("import finished: added=%d, skipped=%d", summary.Added, summary.Skipped)
	return summary, nil
}

// Enqueue records a pending import run and hands the file to the worker pool.
func (s *importService) Enqueue(ctx context.Context, languageID int64, filename string, data []byte) (*models.ImportRun, error) {
	log := logger.FromContext(ctx)

	language, err := s.checkUpload(ctx, languageID, filename)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge()
	}

	run := models.ImportRun{
		LanguageID:   languageID,
		LanguageName: language.Name,
		Filename:     filename,
		Status:       models.ImportStatusPending,
	}
	id, err := s.runRepo.Insert(ctx, run)
	if err != nil {
		log.Error("failed to record import run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	run.ID = id

	job := &worker.ImportWordsJob{
		Runner: s,
		Request: worker.ImportRequest{
			RunID:      id,
			LanguageID: languageID,
			Filename:   filename,
			Data:       data,
		},
	}
	if err := s.jobQueue.EnqueueImport(job); err != nil {
		log.Warn("failed to queue import run %d: %v", id, err)
		if ferr := s.runRepo.Finish(ctx, id, models.ImportSummary{}, err); ferr != nil {
			log.Error("failed to mark import run %d failed: %v", id, ferr)
		}
		return nil, errors.NewConflictError("the import queue is busy, try again shortly")
	}

	log.Info("queued import run: id=%d, filename=%s, bytes=%d", id, filename, len(data))
	return &run, nil
}

// RunImport executes a queued import and records its outcome.
func (s *importService) RunImport(ctx context.Context, req worker.ImportRequest) error {
	log := logger.FromContext(ctx).WithField("run_id", req.RunID)

	if err := s.runRepo.MarkRunning(ctx, req.RunID); err != nil {
		log.Error("failed to mark import run running: %v", err)
		return err
	}

	summary, importErr := s.Import(ctx, req.LanguageID, req.Filename, bytes.NewReader(req.Data))

	var failure error
	if importErr != nil {
		failure = stderrors.New(describeFailure(importErr))
	}
	if err := s.runRepo.Finish(ctx, req.RunID, summary, failure); err != nil {
		log.Error("failed to finish import run: %v", err)
		return err
	}
	return importErr
}

func (s *importService) GetRun(ctx context.Context, id int64) (*models.ImportRun, error) {
	log := logger.FromContext(ctx)

	run, err := s.runRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get import run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if run == nil {
		return nil, errors.NewNotFoundError("import run", id)
	}
	return run, nil
}

// RecoverUnfinished fails runs whose worker died with the previous process.
func (s *importService) RecoverUnfinished(ctx context.Context) (int, error) {
	n, err := s.runRepo.FailUnfinished(ctx, "interrupted by server restart")
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

// describeFailure renders err for the import status page.
func describeFailure(err error) string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return err.Error()
	}
	if len(appErr.Fields) == 0 {
		return appErr.Message
	}
	msgs := make([]string, 0, len(appErr.Fields))
	for _, msg := range appErr.Fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, " ")
}
