package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/VA-creat/eassylang/internal/logger"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/repository"
)

type sessionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db, now: time.Now}
}

func selectSessions() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"s.id", "s.language_id", "l.name", "s.lesson_id", "COALESCE(ls.title, '')",
		"s.question_count", "s.correct_count", "s.next_position", "s.created_at", "s.completed_at",
	).From("practice_sessions s").
		Join("languages l ON l.id = s.language_id").
		LeftJoin("lessons ls ON ls.id = s.lesson_id")
}

func scanSession(scan func(dest ...any) error) (models.PracticeSession, error) {
	var (
		s         models.PracticeSession
		lessonID  sql.NullInt64
		completed sql.NullTime
	)
	err := scan(&s.ID, &s.LanguageID, &s.LanguageName, &lessonID, &s.LessonTitle,
		&s.QuestionCount, &s.CorrectCount, &s.Cursor, &s.CreatedAt, &completed)
	s.LessonID = int64Ptr(lessonID)
	s.CompletedAt = timePtr(completed)
	return s, err
}

func getSession(ctx context.Context, q queryer, id string) (*models.PracticeSession, error) {
	sqlStr, args, err := selectSessions().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	s, err := scanSession(q.QueryRowContext(ctx, sqlStr, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// selectQuestions reads term and translation from the question row so a
// question outlives the deletion of its word.
func selectQuestions() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"q.id", "q.session_id", "q.position", "q.kind", "q.options", "q.user_answer", "q.is_correct", "q.answered_at",
		"q.word_id", "s.language_id", "l.name", "q.term", "q.translation", "w.part_of_speech", "w.example", "w.created_at",
	).
		From("practice_questions q").
		Join("practice_sessions s ON s.id = q.session_id").
		Join("languages l ON l.id = s.language_id").
		LeftJoin("words w ON w.id = q.word_id")
}

func scanQuestion(scan func(dest ...any) error) (models.PracticeQuestion, error) {
	var (
		q         models.PracticeQuestion
		options   string
		answered  sql.NullTime
		wordID    sql.NullInt64
		part      sql.NullString
		example   sql.NullString
		wordAdded sql.NullTime
	)
	w := &q.Word
	err := scan(&q.ID, &q.SessionID, &q.Position, &q.Kind, &options, &q.UserAnswer, &q.IsCorrect, &answered,
		&wordID, &w.LanguageID, &w.LanguageName, &w.Term, &w.Translation, &part, &example, &wordAdded)
	if err != nil {
		return q, err
	}

	w.ID = wordID.Int64
	w.PartOfSpeech = models.PartOther
	if part.Valid {
		w.PartOfSpeech = models.PartOfSpeech(part.String)
	}
	w.Example = example.String
	w.CreatedAt = wordAdded.Time
	q.AnsweredAt = timePtr(answered)
	q.Options, err = models.DecodeOptions(options)
	return q, err
}

func (r *sessionRepository) Create(ctx context.Context, session models.PracticeSession, questions []models.PracticeQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: id=%s, questions=%d", session.ID, len(questions))

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	err := tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `
INSERT INTO practice_sessions (id, language_id, lesson_id, question_count, created_at)
VALUES (?, ?, ?, ?, ?)
`, session.ID, session.LanguageID, nullInt64(session.LessonID), session.QuestionCount, createdAt); err != nil {
			return err
		}

		stmt, err := t.PrepareContext(ctx, `
INSERT INTO practice_questions (session_id, position, word_id, term, translation, kind, options)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range questions {
			options, err := models.EncodeOptions(q.Options)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, session.ID, q.Position, q.Word.ID, q.Word.Term, q.Word.Translation, q.Kind, options); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create session: %v", err)
		return err
	}
	log.Debug("session created: id=%s", session.ID)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	s, err := getSession(ctx, r.db, id)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	if s == nil {
		log.Debug("session not found: id=%s", id)
	}
	return s, nil
}

func (r *sessionRepository) QuestionAt(ctx context.Context, sessionID string, position int) (*models.PracticeQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting question: session_id=%s, position=%d", sessionID, position)

	sqlStr, args, err := selectQuestions().
		Where(squirrel.Eq{"q.session_id": sessionID, "q.position": position}).
		ToSql()
	if err != nil {
		return nil, err
	}
	q, err := scanQuestion(r.db.QueryRowContext(ctx, sqlStr, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *sessionRepository) Questions(ctx context.Context, sessionID string) ([]models.PracticeQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing questions: session_id=%s", sessionID)

	sqlStr, args, err := selectQuestions().
		Where(squirrel.Eq{"q.session_id": sessionID}).
		OrderBy("q.position").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.PracticeQuestion
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// RecordAnswer stores the answer for the question at position and advances the
// session cursor. The write only happens if position is still the cursor; otherwise
// ErrStaleCursor is returned. Answering the last question finalizes correct_count.
func (r *sessionRepository) RecordAnswer(ctx context.Context, sessionID string, position int, answer string, correct bool) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording answer: session_id=%s, position=%d, correct=%t", sessionID, position, correct)

	now := r.now()
	var updated *models.PracticeSession
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `
UPDATE practice_sessions SET next_position = next_position + 1
WHERE id = ? AND next_position = ? AND next_position < question_count
`, sessionID, position)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return repository.ErrStaleCursor
		}

		res, err = t.ExecContext(ctx, `
UPDATE practice_questions SET user_answer = ?, is_correct = ?, answered_at = ?
WHERE session_id = ? AND position = ? AND user_answer = ''
`, answer, correct, now, sessionID, position)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return repository.ErrStaleCursor
		}

		if _, err := t.ExecContext(ctx, `
UPDATE practice_sessions
SET correct_count = (SELECT COUNT(*) FROM practice_questions WHERE session_id = ? AND is_correct = 1),
    completed_at = ?
WHERE id = ? AND next_position >= question_count
`, sessionID, now, sessionID); err != nil {
			return err
		}

		updated, err = getSession(ctx, t, sessionID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleCursor) {
			log.Warn("stale cursor for session %s at position %d", sessionID, position)
		} else {
			log.Error("failed to record answer: %v", err)
		}
		return nil, err
	}
	return updated, nil
}

func (r *sessionRepository) Recent(ctx context.Context, limit int) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	if limit <= 0 {
		limit = 5
	}
	log.Debug("listing recent sessions: limit=%d", limit)

	sqlStr, args, err := selectSessions().
		OrderBy("s.created_at DESC", "s.rowid DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PracticeSession
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
