package jobs

import "github.com/VA-creat/eassylang/internal/worker"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(job *worker.ImportWordsJob) error
}
