package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/VA-creat/eassylang/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eassylang.db")

	database, err := db.Open(path)
	require.NoError(t, err)
	require.NoError(t, database.Ping(context.Background()))

	var applied int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
	require.NoError(t, database.Close())

	reopened, err := db.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestOpen_CreatesVocabularyTables(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "tables.db"))
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"languages", "words", "lessons", "lesson_words", "practice_sessions", "practice_questions", "import_runs"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestOpen_EnforcesWordUniqueness(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "unique.db"))
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO languages (name, code) VALUES ('English', 'en')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO words (language_id, term, translation) VALUES (1, 'apple', 'яблоко')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO words (language_id, term, translation) VALUES (1, 'apple', 'яблоко')`)
	assert.Error(t, err)
}
