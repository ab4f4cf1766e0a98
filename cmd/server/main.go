package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VA-creat/eassylang/internal/api"
	"github.com/VA-creat/eassylang/internal/config"
	"github.com/VA-creat/eassylang/internal/db"
	"github.com/VA-creat/eassylang/internal/jobs"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/practice"
	"github.com/VA-creat/eassylang/internal/repository/sqlite"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("EassyLang Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("templates_dir=%s", cfg.TemplatesDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("import_max_bytes=%d", cfg.ImportMaxBytes)
	log.Debug("practice_default_questions=%d", cfg.PracticeDefaultQuestions)
	log.Debug("practice_max_questions=%d", cfg.PracticeMaxQuestions)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load templates
	log.Debug("loading templates from %s", cfg.TemplatesDir)
	tmpl, err := api.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	jobQueue := jobs.NewWorkerQueue(importPool)

	// Repositories
	languageRepo := sqlite.NewLanguageRepository(database.DB)
	wordRepo := sqlite.NewWordRepository(database.DB)
	lessonRepo := sqlite.NewLessonRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	importRunRepo := sqlite.NewImportRunRepository(database.DB)

	// Services
	settings := services.PracticeSettings{
		DefaultQuestions: cfg.PracticeDefaultQuestions,
		MaxQuestions:     cfg.PracticeMaxQuestions,
	}
	importService := services.NewImportService(wordRepo, languageRepo, importRunRepo, jobQueue, cfg.ImportMaxBytes)

	srv := &api.Server{
		LanguageService:  services.NewLanguageService(languageRepo),
		WordService:      services.NewWordService(wordRepo, languageRepo),
		LessonService:    services.NewLessonService(lessonRepo, wordRepo, languageRepo),
		PracticeService:  services.NewPracticeService(sessionRepo, wordRepo, lessonRepo, languageRepo, practice.NewSource(cfg.RandomSeed), settings),
		ImportService:    importService,
		DashboardService: services.NewDashboardService(languageRepo, wordRepo, lessonRepo, sessionRepo),
		DB:               database,
		Templates:        tmpl,
		ImportMaxBytes:   cfg.ImportMaxBytes,
		DefaultQuestions: settings.DefaultQuestions,
		MaxQuestions:     settings.MaxQuestions,
	}

	ctx, cancel := context.WithCancel(context.Background())

	if n, err := importService.RecoverUnfinished(ctx); err != nil {
		log.Warn("failed to recover unfinished imports: %v", err)
	} else if n > 0 {
		log.Info("marked %d interrupted imports as failed", n)
	}

	importPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Let queued imports drain before the worker context goes away.
	log.Debug("stopping import pool")
	importPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("EassyLang Server Stopped")
	log.Info("===========================================")
}
