package api

import (
	"fmt"
	"net/http"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
)

func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	languageID := formInt64(r, "language")

	lessons, err := s.LessonService.List(r.Context(), languageID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/lessons.html", pageData{
		"lessons":          lessons,
		"languages":        languages,
		"selectedLanguage": languageID,
	})
}

func (s *Server) lessonFormPage(r *http.Request, form services.CreateLessonRequest) (pageData, error) {
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		return nil, err
	}

	var words []models.Word
	if form.LanguageID > 0 {
		words, _, err = s.WordService.List(r.Context(), models.WordFilter{LanguageID: form.LanguageID})
		if err != nil {
			return nil, err
		}
	}

	return pageData{
		"languages": languages,
		"words":     words,
		"form":      form,
	}, nil
}

func (s *Server) handleNewLesson(w http.ResponseWriter, r *http.Request) {
	data, err := s.lessonFormPage(r, services.CreateLessonRequest{LanguageID: formInt64(r, "language")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/lesson_form.html", data)
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, r, err)
		return
	}
	form := services.CreateLessonRequest{
		LanguageID:  formInt64(r, "language"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		WordIDs:     formIDs(r, "words"),
	}

	lesson, err := s.LessonService.Create(r.Context(), form)
	if err != nil {
		data, formErr := s.lessonFormPage(r, form)
		if formErr != nil {
			handleError(w, r, formErr)
			return
		}
		s.renderForm(w, r, "pages/lesson_form.html", data, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/lessons/%d", lesson.ID), http.StatusSeeOther)
}

func (s *Server) handleLessonDetail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.LessonService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/lesson_detail.html", pageData{"lesson": lesson})
}
