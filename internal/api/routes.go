package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	for name, value := range securityHeaders {
		r.Use(middleware.SetHeader(name, value))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/", s.handleHome)

		r.Get("/languages", s.handleLanguages)
		r.Post("/languages", s.handleCreateLanguage)

		r.Get("/words", s.handleWords)
		r.Get("/words/new", s.handleNewWord)
		r.Post("/words", s.handleCreateWord)
		r.Post("/words/{id}/delete", s.handleDeleteWord)

		r.Get("/lessons", s.handleLessons)
		r.Get("/lessons/new", s.handleNewLesson)
		r.Post("/lessons", s.handleCreateLesson)
		r.Get("/lessons/{id}", s.handleLessonDetail)

		r.Get("/import", s.handleImportForm)
		r.Post("/import", s.handleImport)
		r.Get("/import/{id}", s.handleImportStatus)

		r.Get("/practice/start", s.handlePracticeStartForm)
		r.Post("/practice/start", s.handlePracticeStart)
		r.Get("/practice/{id}/run", s.handlePracticeRun)
		r.Post("/practice/{id}/run", s.handlePracticeAnswer)
		r.Get("/practice/{id}/result", s.handlePracticeResult)

		r.Route("/api/practice", func(r chi.Router) {
			r.Post("/", s.handleAPIStartPractice)
			r.Get("/{id}", s.handleAPIPracticeState)
			r.Post("/{id}/answer", s.handleAPIAnswer)
			r.Get("/{id}/result", s.handleAPIPracticeResult)
		})
	})

	return r
}
