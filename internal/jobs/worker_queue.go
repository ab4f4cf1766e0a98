package jobs

import (
	"github.com/VA-creat/eassylang/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool) JobQueue {
	return &WorkerQueue{importPool: importPool}
}

func (q *WorkerQueue) EnqueueImport(job *worker.ImportWordsJob) error {
	return q.importPool.Submit(job)
}
