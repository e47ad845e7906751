// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

// New returns a fresh database in t's temp directory with the full schema
// applied. It is closed when the test ends.
func New(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "bookshelf_test.db"),
		AutoMigrate: true,
		LogLevel:    "silent",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}
