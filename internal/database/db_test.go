package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesAndReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.db")

	db, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, path, db.Path())

	// The connection is live: a trivial statement round-trips.
	_, err = db.Exec("CREATE TABLE smoke (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}
