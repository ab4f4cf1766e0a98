package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

type importRunRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewImportRunRepository creates a new ImportRunRepository implementation
func NewImportRunRepository(db *sql.DB) repository.ImportRunRepository {
	return &importRunRepository{db: db, now: time.Now}
}

func (r *importRunRepository) Insert(ctx context.Context, run models.ImportRun) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("import_repo")
	log.Debug("inserting import run: language_id=%d, filename=%s", run.LanguageID, run.Filename)

	status := run.Status
	if status == "" {
		status = models.ImportStatusPending
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO import_runs (language_id, filename, status) VALUES (?, ?, ?)
`, run.LanguageID, run.Filename, status)
	if err != nil {
		log.Error("failed to insert import run: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *importRunRepository) Get(ctx context.Context, id int64) (*models.ImportRun, error) {
	log := logger.FromContext(ctx).WithPrefix("import_repo")
	log.Debug("getting import run: id=%d", id)

	var (
		run      models.ImportRun
		finished sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
SELECT i.id, i.language_id, l.name, i.filename, i.status, i.added, i.skipped, i.error, i.created_at, i.finished_at
FROM import_runs i
JOIN languages l ON l.id = i.language_id
WHERE i.id = ?
`, id).Scan(&run.ID, &run.LanguageID, &run.LanguageName, &run.Filename, &run.Status, &run.Added, &run.Skipped, &run.Error, &run.CreatedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get import run: %v", err)
		return nil, err
	}
	run.FinishedAt = timePtr(finished)
	return &run, nil
}

func (r *importRunRepository) MarkRunning(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE import_runs SET status = ? WHERE id = ?`, models.ImportStatusRunning, id)
	return err
}

func (r *importRunRepository) Finish(ctx context.Context, id int64, summary models.ImportSummary, failure error) error {
	log := logger.FromContext(ctx).WithPrefix("import_repo")

	status, message := models.ImportStatusDone, ""
	if failure != nil {
		status, message = models.ImportStatusFailed, failure.Error()
	}
	log.Debug("finishing import run: id=%d, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `
UPDATE import_runs SET status = ?, added = ?, skipped = ?, error = ?, finished_at = ?
WHERE id = ?
`, status, summary.Added, summary.Skipped, message, r.now(), id)
	if err != nil {
		log.Error("failed to finish import run: %v", err)
	}
	return err
}

// FailUnfinished marks runs left pending or running by a previous process as failed.
func (r *importRunRepository) FailUnfinished(ctx context.Context, reason string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("import_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE import_runs SET status = ?, error = ?, finished_at = ?
WHERE status IN (?, ?)
`, models.ImportStatusFailed, reason, r.now(), models.ImportStatusPending, models.ImportStatusRunning)
	if err != nil {
		log.Error("failed to fail unfinished import runs: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Warn("marked %d unfinished import runs as failed", n)
	}
	return int(n), nil
}
