package api

import (
	"net/http"

	"github.com/VA-creat/eassylang/internal/logger"
)

const recentSessions = 5

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	dash, err := s.DashboardService.Summary(r.Context(), recentSessions)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/home.html", pageData{
		"counts": dash.Counts,
		"recent": dash.Recent,
	})
}
