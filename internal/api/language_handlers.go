package api

import (
	"net/http"

	"github.com/VA-creat/eassylang/internal/services"
)

func (s *Server) languagesPage(r *http.Request, form services.CreateLanguageRequest) (pageData, error) {
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		return nil, err
	}
	return pageData{"languages": languages, "form": form}, nil
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	data, err := s.languagesPage(r, services.CreateLanguageRequest{})
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/languages.html", data)
}

func (s *Server) handleCreateLanguage(w http.ResponseWriter, r *http.Request) {
	form := services.CreateLanguageRequest{
		Name: r.FormValue("name"),
		Code: r.FormValue("code"),
	}

	if _, err := s.LanguageService.Create(r.Context(), form); err != nil {
		data, listErr := s.languagesPage(r, form)
		if listErr != nil {
			handleError(w, r, listErr)
			return
		}
		s.renderForm(w, r, "pages/languages.html", data, err)
		return
	}

	http.Redirect(w, r, "/languages", http.StatusSeeOther)
}
