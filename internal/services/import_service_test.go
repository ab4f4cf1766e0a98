package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/testutil/mocks"
	"github.com/VA-creat/eassylang/internal/worker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ImportServiceSuite struct {
	suite.Suite
	words     *mocks.MockWordRepository
	languages *mocks.MockLanguageRepository
	runs      *mocks.MockImportRunRepository
	queue     *mocks.MockJobQueue
	svc       services.ImportService
	ctx       context.Context
}

func (s *ImportServiceSuite) SetupTest() {
	s.words = new(mocks.MockWordRepository)
	s.languages = new(mocks.MockLanguageRepository)
	s.runs = new(mocks.MockImportRunRepository)
	s.queue = new(mocks.MockJobQueue)
	s.svc = services.NewImportService(s.words, s.languages, s.runs, s.queue, 64)
	s.ctx = context.Background()

	s.languages.On("Get", mock.Anything, int64(1)).Return(&models.Language{ID: 1, Name: "Spanish"}, nil)
	s.languages.On("Get", mock.Anything, int64(2)).Return(nil, nil)
}

func (s *ImportServiceSuite) TestImport_CountsInvalidRowsAsSkipped() {
	s.words.On("InsertBatch", mock.Anything, mock.MatchedBy(func(ws []models.Word) bool {
		return len(ws) == 2 && ws[0].Term == "gato" && ws[1].PartOfSpeech == models.PartVerb
	})).Return(models.ImportSummary{Added: 1, Skipped: 1}, nil)

	summary, err := s.svc.Import(s.ctx, 1, "words.csv", strings.NewReader("gato,cat\n\nsolo\ncorrer,run,verb\n"))

	s.Require().NoError(err)
	s.Assert().Equal(models.ImportSummary{Added: 1, Skipped: 2}, summary)
}

func (s *ImportServiceSuite) TestImport_TooLarge() {
	_, err := s.svc.Import(s.ctx, 1, "words.csv", strings.NewReader(strings.Repeat("a,b\n", 40)))

	appErr, ok := errors.AsAppError(err)
	s.Require().True(ok)
	s.Assert().Contains(appErr.Fields["file"], "too large")
	s.words.AssertNotCalled(s.T(), "InsertBatch", mock.Anything, mock.Anything)
}

func (s *ImportServiceSuite) TestImport_UnsupportedFileAndUnknownLanguage() {
	_, err := s.svc.Import(s.ctx, 2, "words.pdf", strings.NewReader("x"))

	appErr, ok := errors.AsAppError(err)
	s.Require().True(ok)
	s.Assert().Equal("Select a valid choice.", appErr.Fields["language"])
	s.Assert().Contains(appErr.Fields["file"], "Unsupported file type")
}

func (s *ImportServiceSuite) TestEnqueue_RecordsRunAndQueuesJob() {
	s.runs.On("Insert", mock.Anything, mock.MatchedBy(func(r models.ImportRun) bool {
		return r.Status == models.ImportStatusPending && r.Filename == "words.csv"
	})).Return(int64(7), nil)
	s.queue.On("EnqueueImport", mock.MatchedBy(func(job *worker.ImportWordsJob) bool {
		return job.Request.RunID == 7 && job.Request.LanguageID == 1 && string(job.Request.Data) == "a,b"
	})).Return(nil)

	run, err := s.svc.Enqueue(s.ctx, 1, "words.csv", []byte("a,b"))

	s.Require().NoError(err)
	s.Assert().Equal(int64(7), run.ID)
	s.Assert().Equal("Spanish", run.LanguageName)
	s.queue.AssertExpectations(s.T())
}

func (s *ImportServiceSuite) TestEnqueue_QueueFullFailsRun() {
	s.runs.On("Insert", mock.Anything, mock.Anything).Return(int64(7), nil)
	s.queue.On("EnqueueImport", mock.Anything).Return(worker.ErrQueueFull)
	s.runs.On("Finish", mock.Anything, int64(7), models.ImportSummary{}, worker.ErrQueueFull).Return(nil)

	run, err := s.svc.Enqueue(s.ctx, 1, "words.csv", []byte("a,b"))

	s.Assert().Nil(run)
	s.Assert().True(errors.IsCode(err, errors.ErrCodeConflict))
	s.runs.AssertExpectations(s.T())
}

func (s *ImportServiceSuite) TestEnqueue_RejectsOversizedData() {
	_, err := s.svc.Enqueue(s.ctx, 1, "words.csv", make([]byte, 65))

	s.Assert().True(errors.IsCode(err, errors.ErrCodeValidation))
	s.runs.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *ImportServiceSuite) TestRunImport_Success() {
	s.runs.On("MarkRunning", mock.Anything, int64(3)).Return(nil)
	s.words.On("InsertBatch", mock.Anything, mock.Anything).Return(models.ImportSummary{Added: 1}, nil)
	s.runs.On("Finish", mock.Anything, int64(3), models.ImportSummary{Added: 1}, nil).Return(nil)

	err := s.svc.RunImport(s.ctx, worker.ImportRequest{RunID: 3, LanguageID: 1, Filename: "w.csv", Data: []byte("gato,cat\n")})

	s.Require().NoError(err)
	s.runs.AssertExpectations(s.T())
}

func (s *ImportServiceSuite) TestRunImport_FailureIsRecorded() {
	s.runs.On("MarkRunning", mock.Anything, int64(4)).Return(nil)
	s.runs.On("Finish", mock.Anything, int64(4), models.ImportSummary{}, mock.MatchedBy(func(err error) bool {
		return err != nil && err.Error() == "Select a valid choice."
	})).Return(nil)

	err := s.svc.RunImport(s.ctx, worker.ImportRequest{RunID: 4, LanguageID: 2, Filename: "w.csv"})

	s.Assert().True(errors.IsCode(err, errors.ErrCodeValidation))
	s.runs.AssertExpectations(s.T())
}

func (s *ImportServiceSuite) TestGetRun_NotFound() {
	s.runs.On("Get", mock.Anything, int64(5)).Return(nil, nil)

	_, err := s.svc.GetRun(s.ctx, 5)

	s.Assert().True(errors.IsNotFound(err))
}

func (s *ImportServiceSuite) TestRecoverUnfinished() {
	s.runs.On("FailUnfinished", mock.Anything, mock.AnythingOfType("string")).Return(2, nil)

	n, err := s.svc.RecoverUnfinished(s.ctx)

	s.Require().NoError(err)
	s.Assert().Equal(2, n)
}

func TestImportServiceSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceSuite))
}
