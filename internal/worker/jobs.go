package worker

import (
	"context"
	"fmt"
)

// ImportWordsJob imports one uploaded word list and records the outcome on its import run.
type ImportWordsJob struct {
	Runner  ImportRunner
	Request ImportRequest
}

func (j *ImportWordsJob) Name() string {
	return fmt.Sprintf("import_words:%d", j.Request.RunID)
}

func (j *ImportWordsJob) Run(ctx context.Context) error {
	return j.Runner.RunImport(ctx, j.Request)
}
