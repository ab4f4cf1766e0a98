package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/go-chi/chi/v5"
)

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}

// formInt64 reads an optional integer form or query value, returning 0 when absent or malformed.
func formInt64(r *http.Request, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func formInt(r *http.Request, key string) int {
	return int(formInt64(r, key))
}

// formIDs reads every value of a repeated form field as ids, skipping malformed ones.
func formIDs(r *http.Request, key string) []int64 {
	var ids []int64
	for _, raw := range r.Form[key] {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.FormValue(key)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}
