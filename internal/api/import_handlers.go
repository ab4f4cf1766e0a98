package api

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/importer"
	"github.com/VA-creat/eassylang/internal/logger"
)

// multipartOverhead leaves room for form fields and part headers around the file.
const multipartOverhead = 64 << 10

func (s *Server) importFormPage(r *http.Request, languageID int64) (pageData, error) {
	languages, err := s.LanguageService.List(r.Context())
	if err != nil {
		return nil, err
	}
	return pageData{
		"languages":        languages,
		"selectedLanguage": languageID,
		"maxKB":            s.ImportMaxBytes / 1024,
		"extensions":       importer.SupportedExtensions,
	}, nil
}

func (s *Server) handleImportForm(w http.ResponseWriter, r *http.Request) {
	data, err := s.importFormPage(r, formInt64(r, "language"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.render(w, r, "pages/import.html", data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.ImportMaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.ImportMaxBytes + multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			s.importFormError(w, r, 0, errors.NewValidationError("file",
				fmt.Sprintf("File is too large (limit %d KB).", s.ImportMaxBytes/1024)))
			return
		}
		log.Warn("failed to parse upload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid upload"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	languageID := formInt64(r, "language")
	file, header, err := r.FormFile("file")
	if err != nil {
		s.importFormError(w, r, languageID, errors.NewValidationError("file", "This field is required."))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.ImportMaxBytes+1))
	if err != nil {
		log.Error("failed to read uploaded file: %v", err)
		handleError(w, r, errors.NewBadRequestError("could not read uploaded file"))
		return
	}

	run, err := s.ImportService.Enqueue(r.Context(), languageID, filepath.Base(header.Filename), data)
	if err != nil {
		s.importFormError(w, r, languageID, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/import/%d", run.ID), http.StatusSeeOther)
}

func (s *Server) importFormError(w http.ResponseWriter, r *http.Request, languageID int64, err error) {
	data, formErr := s.importFormPage(r, languageID)
	if formErr != nil {
		handleError(w, r, formErr)
		return
	}
	s.renderForm(w, r, "pages/import.html", data, err)
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	run, err := s.ImportService.GetRun(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, r, http.StatusOK, run)
		return
	}
	data := pageData{"run": run, "title": "Import"}
	if !run.Finished() {
		data["refresh"] = 2
	}
	s.render(w, r, "pages/import_status.html", data)
}
