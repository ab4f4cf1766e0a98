package mocks

import (
	"github.com/VA-creat/eassylang/internal/worker"
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(job *worker.ImportWordsJob) error {
	args := m.Called(job)
	return args.Error(0)
}
