package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
	"github.com/VA-creat/eassylang/internal/repository/sqlite"
	"github.com/VA-creat/eassylang/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ImportRunRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.ImportRunRepository
	language int64
}

func (s *ImportRunRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewImportRunRepository(s.db)
	s.language = testutil.SeedLanguage(s.T(), s.db, "English", "en")
}

func (s *ImportRunRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ImportRunRepositorySuite) TestLifecycle() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.ImportRun{LanguageID: s.language, Filename: "words.csv"})
	s.Require().NoError(err)

	run, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(run)
	s.Assert().Equal(models.ImportStatusPending, run.Status)
	s.Assert().Equal("English", run.LanguageName)
	s.Assert().False(run.Finished())

	s.Require().NoError(s.repo.MarkRunning(ctx, id))
	run, err = s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.ImportStatusRunning, run.Status)

	s.Require().NoError(s.repo.Finish(ctx, id, models.ImportSummary{Added: 5, Skipped: 2}, nil))
	run, err = s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.ImportStatusDone, run.Status)
	s.Assert().Equal(5, run.Added)
	s.Assert().Equal(2, run.Skipped)
	s.Assert().NotNil(run.FinishedAt)
	s.Assert().True(run.Finished())
}

func (s *ImportRunRepositorySuite) TestFinishWithFailure() {
	ctx := context.Background()
	id, err := s.repo.Insert(ctx, models.ImportRun{LanguageID: s.language, Filename: "broken.xlsx"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Finish(ctx, id, models.ImportSummary{}, errors.New("unreadable workbook")))

	run, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.ImportStatusFailed, run.Status)
	s.Assert().Equal("unreadable workbook", run.Error)
}

func (s *ImportRunRepositorySuite) TestGet_NotFound() {
	run, err := s.repo.Get(context.Background(), 7)
	s.Require().NoError(err)
	s.Assert().Nil(run)
}

func (s *ImportRunRepositorySuite) TestFailUnfinished() {
	ctx := context.Background()
	pending, err := s.repo.Insert(ctx, models.ImportRun{LanguageID: s.language, Filename: "a.csv"})
	s.Require().NoError(err)
	running, err := s.repo.Insert(ctx, models.ImportRun{LanguageID: s.language, Filename: "b.csv"})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.MarkRunning(ctx, running))
	done, err := s.repo.Insert(ctx, models.ImportRun{LanguageID: s.language, Filename: "c.csv"})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Finish(ctx, done, models.ImportSummary{Added: 1}, nil))

	n, err := s.repo.FailUnfinished(ctx, "interrupted by restart")
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	for _, id := range []int64{pending, running} {
		run, err := s.repo.Get(ctx, id)
		s.Require().NoError(err)
		s.Assert().Equal(models.ImportStatusFailed, run.Status)
		s.Assert().Equal("interrupted by restart", run.Error)
	}
	run, err := s.repo.Get(ctx, done)
	s.Require().NoError(err)
	s.Assert().Equal(models.ImportStatusDone, run.Status)
}

func TestImportRunRepositorySuite(t *testing.T) {
	suite.Run(t, new(ImportRunRepositorySuite))
}
