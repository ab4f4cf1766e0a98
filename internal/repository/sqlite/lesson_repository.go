package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func selectLessons() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"s.id", "s.language_id", "l.name", "s.title", "s.description", "s.created_at",
		"(SELECT COUNT(*) FROM lesson_words lw WHERE lw.lesson_id = s.id) AS word_count",
	).From("lessons s").Join("languages l ON l.id = s.language_id")
}

func scanLesson(scan func(dest ...any) error) (models.Lesson, error) {
	var s models.Lesson
	err := scan(&s.ID, &s.LanguageID, &s.LanguageName, &s.Title, &s.Description, &s.CreatedAt, &s.WordCount)
	return s, err
}

func (r *lessonRepository) Get(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%d", id)

	sqlStr, args, err := selectLessons().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	lesson, err := scanLesson(r.db.QueryRowContext(ctx, sqlStr, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}

	words, err := r.Words(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.LessonWithWords{Lesson: lesson, Words: words}, nil
}

func (r *lessonRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")

	sqlStr, args, err := query.OrderBy("l.name", "s.title").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		s, err := scanLesson(rows.Scan)
		if err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, s)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	return r.list(ctx, selectLessons())
}

func (r *lessonRepository) ListByLanguage(ctx context.Context, languageID int64) ([]models.Lesson, error) {
	return r.list(ctx, selectLessons().Where(squirrel.Eq{"s.language_id": languageID}))
}

func (r *lessonRepository) TitleExists(ctx context.Context, languageID int64, title string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lessons WHERE language_id = ? AND title = ?`, languageID, title).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *lessonRepository) Insert(ctx context.Context, lesson models.Lesson, wordIDs []int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("inserting lesson: language_id=%d, title=%s, words=%d", lesson.LanguageID, lesson.Title, len(wordIDs))

	var id int64
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `
INSERT INTO lessons (language_id, title, description) VALUES (?, ?, ?)
`, lesson.LanguageID, lesson.Title, lesson.Description)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := t.PrepareContext(ctx, `INSERT OR IGNORE INTO lesson_words (lesson_id, word_id) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, wordID := range wordIDs {
			if _, err := stmt.ExecContext(ctx, id, wordID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert lesson: %v", err)
		return 0, err
	}
	log.Debug("lesson inserted: id=%d", id)
	return id, nil
}

func (r *lessonRepository) Words(ctx context.Context, lessonID int64) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("loading lesson words: lesson_id=%d", lessonID)

	sqlStr, args, err := selectWords().
		Join("lesson_words lw ON lw.word_id = w.id").
		Where(squirrel.Eq{"lw.lesson_id": lessonID}).
		OrderBy("w.term", "w.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query lesson words: %v", err)
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
	return words, rows.Err()
}

func (r *lessonRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n)
	return n, err
}
