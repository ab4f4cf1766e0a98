package api

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
)

const wordsPerPage = 50

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	page := formInt(r, "page")
	if page < 1 {
		page = 1
	}
	filter := models.WordFilter{
		LanguageID: formInt64(r, "language"),
		Query:      strings.TrimSpace(r.FormValue("q")),
		Limit:      wordsPerPage,
		Offset:     (page - 1) * wordsPerPage,
	}
	log.Debug("listing words: page=%d", page)

	words, total, err := s.WordService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	totalPages := (total + wordsPerPage - 1) / wordsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	s.render(w, r, "pages/words.html", pageData{
		"words":      words,
		"total":      total,
		"languages":  languages,
		"filter":     filter,
		"page":       page,
		"totalPages": totalPages,
		"pageQuery":  template.URL(wordsQuery(filter)),
	})
}

// wordsQuery keeps the active filter when paging.
func wordsQuery(filter models.WordFilter) string {
	v := url.Values{}
	if filter.LanguageID > 0 {
		v.Set("language", fmt.Sprint(filter.LanguageID))
	}
	if filter.Query != "" {
		v.Set("q", filter.Query)
	}
	return v.Encode()
}

func (s *Server) wordFormPage(r *http.Request, form services.CreateWordRequest) (pageData, error) {
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		return nil, err
	}
	return pageData{
		"languages": languages,
		"parts":     models.PartsOfSpeech,
		"form":      form,
	}, nil
}

func (s *Server) handleNewWord(w http.ResponseWriter, r *http.Request) {
	data, err := s.wordFormPage(r, services.CreateWordRequest{
		LanguageID:   formInt64(r, "language"),
		PartOfSpeech: models.PartOther,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/word_form.html", data)
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	form := services.CreateWordRequest{
		LanguageID:   formInt64(r, "language"),
		Term:         r.FormValue("term"),
		Translation:  r.FormValue("translation"),
		PartOfSpeech: models.PartOfSpeech(r.FormValue("part_of_speech")),
		Example:      r.FormValue("example"),
	}

	word, err := s.WordService.Create(r.Context(), form)
	if err != nil {
		data, formErr := s.wordFormPage(r, form)
		if formErr != nil {
			handleError(w, r, formErr)
			return
		}
		s.renderForm(w, r, "pages/word_form.html", data, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/words?language=%d", word.LanguageID), http.StatusSeeOther)
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.WordService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	target := "/words"
	if next := r.FormValue("next"); strings.HasPrefix(next, "/words") {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
