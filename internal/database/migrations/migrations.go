// Package migrations applies the versioned SQL schema with golang-migrate.
//
// Each dialect has its own directory of ordered, reversible scripts
// (NNNNNN_name.up.sql / NNNNNN_name.down.sql) embedded into the binary.
//
// # Usage
//
//	m, err := migrations.New(config.DriverSQLite, dsn)
//	if err != nil { ... }
//	defer m.Close()
//	err = m.Up()
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/bookshelf/internal/config"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Migrator runs migrations over a dedicated connection that it owns and
// closes.
type Migrator struct {
	m *migrate.Migrate
}

// New opens a connection for driver/dsn and prepares the embedded scripts
// for that dialect.
func New(driver config.DatabaseDriver, dsn string) (*Migrator, error) {
	dir, sqlDriver, err := dialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect for migrations: %w", err)
	}

	var instance migratedb.Driver
	switch driver {
	case config.DriverPostgres:
		instance, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(files, dir)
	if err != nil {
		instance.Close()
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(driver), instance)
	if err != nil {
		source.Close()
		instance.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	m.logVersion("migrations applied")
	return nil
}

// Down rolls back steps migrations, or all of them when steps <= 0.
func (m *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = m.m.Steps(-steps)
	} else {
		err = m.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	m.logVersion("migrations rolled back")
	return nil
}

// Version returns the current schema version. ok is false when no
// migration has been applied yet.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, true, nil
}

// Close releases the source and the migration connection.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, ok, err := m.Version()
	if err != nil {
		slog.Warn(msg, "error", err)
		return
	}
	if !ok {
		slog.Info(msg, "version", "none")
		return
	}
	slog.Info(msg, "version", version, "dirty", dirty)
}

// dialect returns the embedded directory and database/sql driver name.
func dialect(driver config.DatabaseDriver) (dir, sqlDriver string, err error) {
	switch driver {
	case config.DriverSQLite, "":
		return "sqlite", "sqlite3", nil
	case config.DriverPostgres:
		return "postgres", "pgx", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
