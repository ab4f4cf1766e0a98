package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/VA-creat/eassylang/internal/db"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection is kept open so every query sees the same in-memory schema.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// Fixture owns a migrated in-memory database closed at test cleanup.
type Fixture struct {
	DB *sql.DB
}

// NewFixture opens a test database and registers its cleanup.
func NewFixture(t *testing.T) *Fixture {
	sqlDB := NewTestDB(t)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &Fixture{DB: sqlDB}
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedLanguage inserts a language and returns its id.
func SeedLanguage(t *testing.T, sqlDB *sql.DB, name, code string) int64 {
	res, err := sqlDB.Exec(`INSERT INTO languages (name, code) VALUES (?, ?)`, name, code)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedWord inserts a word and returns its id.
func SeedWord(t *testing.T, sqlDB *sql.DB, languageID int64, term, translation string) int64 {
	res, err := sqlDB.Exec(`INSERT INTO words (language_id, term, translation) VALUES (?, ?, ?)`, languageID, term, translation)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
