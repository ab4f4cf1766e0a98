package api

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/services"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	LanguageService  services.LanguageService
	WordService      services.WordService
	LessonService    services.LessonService
	PracticeService  services.PracticeService
	ImportService    services.ImportService
	DashboardService services.DashboardService
	DB               Pinger
	Templates        *template.Template
	ImportMaxBytes   int64
	DefaultQuestions int
	MaxQuestions     int
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

// renderStatus executes the template into a buffer first so a template error
// never leaves a half written page behind.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}

	log := logger.FromContext(r.Context())
	var buf bytes.Buffer
	if err := s.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderForm re-renders a form page with field messages when err is a
// validation failure and falls back to handleError otherwise.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, name string, data pageData, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeValidation {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("form rejected: %v", appErr)

	if data == nil {
		data = pageData{}
	}
	data["errors"] = appErr.Fields
	s.renderStatus(w, r, appErr.Status, name, data)
}
