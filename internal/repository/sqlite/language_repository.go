package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

type languageRepository struct {
	db *sql.DB
}

// NewLanguageRepository creates a new LanguageRepository implementation
func NewLanguageRepository(db *sql.DB) repository.LanguageRepository {
	return &languageRepository{db: db}
}

const languageColumns = `l.id, l.name, l.code, l.created_at,
       (SELECT COUNT(*) FROM words w WHERE w.language_id = l.id) AS word_count`

func (r *languageRepository) Get(ctx context.Context, id int64) (*models.Language, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")
	log.Debug("getting language: id=%d", id)

	return r.getOne(ctx, log, `SELECT `+languageColumns+` FROM languages l WHERE l.id = ?`, id)
}

func (r *languageRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")
	log.Debug("getting language: code=%s", code)

	return r.getOne(ctx, log, `SELECT `+languageColumns+` FROM languages l WHERE l.code = ?`, code)
}

func (r *languageRepository) getOne(ctx context.Context, log *logger.Logger, query string, arg any) (*models.Language, error) {
	var l models.Language
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&l.ID, &l.Name, &l.Code, &l.CreatedAt, &l.WordCount)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("language not found: %v", arg)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *languageRepository) List(ctx context.Context) ([]models.Language, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")
	log.Debug("listing languages")

	rows, err := r.db.QueryContext(ctx, `SELECT `+languageColumns+` FROM languages l ORDER BY l.name, l.code`)
	if err != nil {
		log.Error("failed to list languages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var languages []models.Language
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Code, &l.CreatedAt, &l.WordCount); err != nil {
			log.Error("failed to scan language row: %v", err)
			return nil, err
		}
		languages = append(languages, l)
	}
	log.Debug("found %d languages", len(languages))
	return languages, rows.Err()
}

func (r *languageRepository) Insert(ctx context.Context, l models.Language) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")
	log.Debug("inserting language: code=%s", l.Code)

	res, err := r.db.ExecContext(ctx, `INSERT INTO languages (name, code) VALUES (?, ?)`, l.Name, l.Code)
	if err != nil {
		log.Error("failed to insert language: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get language id: %v", err)
		return 0, err
	}
	log.Debug("language inserted: id=%d", id)
	return id, nil
}

func (r *languageRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM languages`).Scan(&n)
	return n, err
}
