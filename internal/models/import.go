package models

import "time"

const (
	ImportStatusPending = "pending"
	ImportStatusRunning = "running"
	ImportStatusDone    = "done"
	ImportStatusFailed  = "failed"
)

type ImportRun struct {
	ID           int64      `json:"id"`
	LanguageID   int64      `json:"language_id"`
	LanguageName string     `json:"language_name,omitempty"`
	Filename     string     `json:"filename"`
	Status       string     `json:"status"`
	Added        int        `json:"added"`
	Skipped      int        `json:"skipped"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Finished reports whether the run reached a terminal status.
func (r ImportRun) Finished() bool {
	return r.Status == ImportStatusDone || r.Status == ImportStatusFailed
}

// ImportRow is one raw record read from an uploaded word list.
type ImportRow struct {
	Line        int
	Term        string
	Translation string
	Part        string
	Example     string
}

// Blank reports whether every cell of the row is empty.
func (r ImportRow) Blank() bool {
	return r.Term == "" && r.Translation == "" && r.Part == "" && r.Example == ""
}

// ImportSummary counts the outcome of an import.
type ImportSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
