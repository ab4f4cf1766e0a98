package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

var wordColumns = []string{
	"w.id", "w.language_id", "l.name", "w.term", "w.translation", "w.part_of_speech", "w.example", "w.created_at",
}

func scanWord(scan func(dest ...any) error) (models.Word, error) {
	var w models.Word
	err := scan(&w.ID, &w.LanguageID, &w.LanguageName, &w.Term, &w.Translation, &w.PartOfSpeech, &w.Example, &w.CreatedAt)
	return w, err
}

func selectWords() squirrel.SelectBuilder {
	return sqlBuilder.Select(wordColumns...).From("words w").Join("languages l ON l.id = w.language_id")
}

func applyWordFilter(query squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.LanguageID != 0 {
		query = query.Where(squirrel.Eq{"w.language_id": filter.LanguageID})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"LOWER(w.term)": pattern},
			squirrel.Like{"LOWER(w.translation)": pattern},
		})
	}
	return query
}

func (r *wordRepository) queryWords(ctx context.Context, log *logger.Logger, query squirrel.SelectBuilder) ([]models.Word, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows.Scan)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	sqlStr, args, err := selectWords().Where(squirrel.Eq{"w.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	w, err := scanWord(r.db.QueryRowContext(ctx, sqlStr, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words with filter: language_id=%d, query=%q", filter.LanguageID, filter.Query)

	query := applyWordFilter(selectWords(), filter).OrderBy("l.name", "w.term", "w.id")

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	return r.queryWords(ctx, log, query)
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := applyWordFilter(sqlBuilder.Select("COUNT(*)").From("words w"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *wordRepository) ByLanguage(ctx context.Context, languageID int64) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("loading words for language: language_id=%d", languageID)

	query := selectWords().Where(squirrel.Eq{"w.language_id": languageID}).OrderBy("w.id")
	return r.queryWords(ctx, log, query)
}

func (r *wordRepository) ByIDs(ctx context.Context, ids []int64) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	if len(ids) == 0 {
		return nil, nil
	}
	log.Debug("loading %d words by id", len(ids))

	query := selectWords().Where(squirrel.Eq{"w.id": ids}).OrderBy("w.id")
	return r.queryWords(ctx, log, query)
}

func (r *wordRepository) Exists(ctx context.Context, languageID int64, term, translation string) (bool, error) {
	return wordExists(ctx, r.db, languageID, term, translation)
}

func wordExists(ctx context.Context, q queryer, languageID int64, term, translation string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `
SELECT 1 FROM words WHERE language_id = ? AND term = ? AND translation = ?
`, languageID, term, translation).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func insertWord(ctx context.Context, q queryer, w models.Word) (int64, error) {
	part := w.PartOfSpeech
	if !part.Valid() {
		part = models.PartOther
	}
	res, err := q.ExecContext(ctx, `
INSERT INTO words (language_id, term, translation, part_of_speech, example)
VALUES (?, ?, ?, ?, ?)
`, w.LanguageID, w.Term, w.Translation, part, w.Example)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: language_id=%d, term=%s", w.LanguageID, w.Term)

	id, err := insertWord(ctx, r.db, w)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

// InsertBatch inserts words in one transaction, skipping rows whose
// (language, term, translation) already exists, including earlier rows of the same batch.
func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) (models.ImportSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting batch of %d words", len(words))

	var summary models.ImportSummary
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		summary = models.ImportSummary{}
		for _, w := range words {
			exists, err := wordExists(ctx, t, w.LanguageID, w.Term, w.Translation)
			if err != nil {
				return err
			}
			if exists {
				summary.Skipped++
				continue
			}
			if _, err := insertWord(ctx, t, w); err != nil {
				return err
			}
			summary.Added++
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert word batch: %v", err)
		return models.ImportSummary{}, err
	}
	log.Debug("batch inserted: added=%d, skipped=%d", summary.Added, summary.Skipped)
	return summary, nil
}

func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("deleting word: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete word: %v", err)
	}
	return err
}
