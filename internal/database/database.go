package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/migrations"
)

// sqliteParams enables foreign keys (needed for ON DELETE CASCADE), WAL so
// readers do not block the writer, and immediate transactions so concurrent
// writers wait on the busy timeout instead of failing on lock upgrade.
const sqliteParams = "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

type Database struct {
	DB     *gorm.DB
	Driver config.DatabaseDriver
}

// NewDatabase applies pending migrations when cfg.AutoMigrate is set and
// opens the gorm connection for the configured dialect.
func NewDatabase(cfg config.Database) (*Database, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(cfg); err != nil {
			return nil, err
		}
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(ParseLogLevel(cfg.LogLevel)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	slog.Info("database initialized", "driver", driverName(cfg.Driver), "target", target(cfg))

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

// Migrate runs every pending migration over a dedicated connection.
func Migrate(cfg config.Database) error {
	dsn, err := DSN(cfg)
	if err != nil {
		return err
	}
	m, err := migrations.New(cfg.Driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}

// DSN builds the driver connection string from the configuration.
func DSN(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return "", fmt.Errorf("database path is not set")
		}
		sep := "?"
		if strings.Contains(cfg.Path, "?") {
			sep = "&"
		}
		return cfg.Path + sep + sqliteParams, nil
	case config.DriverPostgres:
		if cfg.URL == "" {
			return "", fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		return cfg.URL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ParseLogLevel maps a level name to the gorm logger level. Unknown names
// fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func driverName(d config.DatabaseDriver) string {
	if d == "" {
		return string(config.DriverSQLite)
	}
	return string(d)
}

// target is a loggable description of the database that never includes
// credentials.
func target(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres {
		return "postgres"
	}
	return cfg.Path
}
