package worker

import "context"

// ImportRequest describes one uploaded word list waiting to be imported.
type ImportRequest struct {
	RunID      int64
	LanguageID int64
	Filename   string
	Data       []byte
}

// ImportRunner executes an import request.
// This avoids import cycles by not importing the services package
type ImportRunner interface {
	RunImport(ctx context.Context, req ImportRequest) error
}
