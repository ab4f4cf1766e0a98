package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) practiceFormPage(r *http.Request, form services.StartPracticeRequest) (pageData, error) {
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonService.List(r.Context(), 0)
	if err != nil {
		return nil, err
	}

	var lessonID int64
	if form.LessonID != nil {
		lessonID = *form.LessonID
	}
	return pageData{
		"languages":      languages,
		"lessons":        lessons,
		"form":           form,
		"selectedLesson": lessonID,
		"maxQuestions":   s.MaxQuestions,
	}, nil
}

func practiceForm(r *http.Request, defaultCount int) services.StartPracticeRequest {
	form := services.StartPracticeRequest{
		LanguageID:     formInt64(r, "language"),
		QuestionCount:  formInt(r, "question_count"),
		MultipleChoice: formBool(r, "multiple_choice"),
	}
	if id := formInt64(r, "lesson"); id > 0 {
		form.LessonID = &id
	}
	if r.Method == http.MethodGet && form.QuestionCount == 0 {
		form.QuestionCount = defaultCount
	}
	return form
}

func (s *Server) handlePracticeStartForm(w http.ResponseWriter, r *http.Request) {
	data, err := s.practiceFormPage(r, practiceForm(r, s.DefaultQuestions))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/practice_start.html", data)
}

func (s *Server) handlePracticeStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	form := practiceForm(r, s.DefaultQuestions)

	session, err := s.PracticeService.Start(r.Context(), form)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNoWords) {
			log.Info("practice start rejected: no words")
			noWords := errors.NewValidationError("language", "No words available for this selection. Add words or pick another lesson.")
			noWords.Status = http.StatusUnprocessableEntity
			err = noWords
		}
		data, formErr := s.practiceFormPage(r, form)
		if formErr != nil {
			handleError(w, r, formErr)
			return
		}
		s.renderForm(w, r, "pages/practice_start.html", data, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/practice/%s/run", session.ID), http.StatusSeeOther)
}

func (s *Server) runPage(state *models.PracticeState, r *http.Request) pageData {
	return pageData{
		"state":    state,
		"prev":     r.URL.Query().Get("prev"),
		"expected": r.URL.Query().Get("expected"),
	}
}

func (s *Server) handlePracticeRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := s.PracticeService.Current(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if state.Complete {
		http.Redirect(w, r, fmt.Sprintf("/practice/%s/result", id), http.StatusSeeOther)
		return
	}

	s.render(w, r, "pages/practice_run.html", s.runPage(state, r))
}

func (s *Server) handlePracticeAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	outcome, err := s.PracticeService.Answer(r.Context(), id, r.FormValue("answer"))
	switch {
	case errors.IsCode(err, errors.ErrCodeConflict):
		log.Info("answer conflict, showing current state: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/practice/%s/run", id), http.StatusSeeOther)
		return
	case errors.IsCode(err, errors.ErrCodeValidation):
		state, stateErr := s.PracticeService.Current(r.Context(), id)
		if stateErr != nil {
			handleError(w, r, stateErr)
			return
		}
		s.renderForm(w, r, "pages/practice_run.html", s.runPage(state, r), err)
		return
	case err != nil:
		handleError(w, r, err)
		return
	}

	if outcome.State.Complete {
		http.Redirect(w, r, fmt.Sprintf("/practice/%s/result", id), http.StatusSeeOther)
		return
	}

	q := url.Values{}
	if outcome.Correct {
		q.Set("prev", "correct")
	} else {
		q.Set("prev", "wrong")
		q.Set("expected", outcome.Expected)
	}
	http.Redirect(w, r, fmt.Sprintf("/practice/%s/run?%s", id, q.Encode()), http.StatusSeeOther)
}

func (s *Server) handlePracticeResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := s.PracticeService.Result(r.Context(), id)
	if errors.IsCode(err, errors.ErrCodeConflict) {
		http.Redirect(w, r, fmt.Sprintf("/practice/%s/run", id), http.StatusSeeOther)
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/practice_result.html", pageData{"result": result})
}
