package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/go-chi/chi/v5"
)

const maxJSONBody = 64 << 10

// questionView is a question as shown to the learner, without its answer.
type questionView struct {
	Position int                 `json:"position"`
	Kind     models.QuestionKind `json:"kind"`
	Prompt   string              `json:"prompt"`
	Options  []string            `json:"options,omitempty"`
}

type stateView struct {
	SessionID   string        `json:"session_id"`
	Language    string        `json:"language"`
	Lesson      string        `json:"lesson,omitempty"`
	Answered    int           `json:"answered"`
	Total       int           `json:"total"`
	ProgressPct int           `json:"progress_pct"`
	Complete    bool          `json:"complete"`
	Question    *questionView `json:"question,omitempty"`
}

type answerView struct {
	Correct  bool      `json:"correct"`
	Expected string    `json:"expected"`
	State    stateView `json:"state"`
}

func newStateView(state models.PracticeState) stateView {
	v := stateView{
		SessionID:   state.Session.ID,
		Language:    state.Session.LanguageName,
		Lesson:      state.Session.LessonTitle,
		Answered:    state.Answered,
		Total:       state.Total,
		ProgressPct: state.ProgressPct,
		Complete:    state.Complete,
	}
	if q := state.Question; q != nil {
		v.Question = &questionView{
			Position: q.Position,
			Kind:     q.Kind,
			Prompt:   q.Prompt(),
			Options:  q.Options,
		}
	}
	return v
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

func (s *Server) handleAPIStartPractice(w http.ResponseWriter, r *http.Request) {
	var req services.StartPracticeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.PracticeService.Start(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.PracticeService.Current(r.Context(), session.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/practice/"+session.ID)
	writeJSON(w, r, http.StatusCreated, newStateView(*state))
}

func (s *Server) handleAPIPracticeState(w http.ResponseWriter, r *http.Request) {
	state, err := s.PracticeService.Current(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newStateView(*state))
}

func (s *Server) handleAPIAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	outcome, err := s.PracticeService.Answer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, answerView{
		Correct:  outcome.Correct,
		Expected: outcome.Expected,
		State:    newStateView(outcome.State),
	})
}

func (s *Server) handleAPIPracticeResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.PracticeService.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
