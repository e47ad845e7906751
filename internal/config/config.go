package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // PostgreSQL via DATABASE_URL
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		CORS
		RateLimit
	}

	HTTP struct {
		Port     int32
		Host     string
		BasePath string // Prefix for all API routes, e.g. "/api/v1"
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		Environment              string
	}
	Database struct {
		Driver       DatabaseDriver
		Path         string // SQLite file path
		URL          string // PostgreSQL connection string
		AutoMigrate  bool   // Apply pending migrations on serve
		LogLevel     string // gorm logger: silent, error, warn, info
		MaxOpenConns int
	}
	Log struct {
		Level  string
		Format string // pretty or json; empty picks by environment
	}
	CORS struct {
		AllowedOrigins []string // Empty disables CORS handling
	}
	RateLimit struct {
		RequestsPerSecond float64 // 0 disables rate limiting
		Burst             int
	}
)

// NewConfig builds the configuration from the environment. A .env file in
// the working directory is loaded first when present.
func NewConfig() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_base_path", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("environment", "development")

	// Database defaults
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("database_auto_migrate", true)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("database_max_open_conns", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")

	v.SetDefault("cors_allowed_origins", "")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			BasePath: normalizeBasePath(v.GetString("HTTP_BASE_PATH")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Environment:              v.GetString("ENVIRONMENT"),
		},
		Database: Database{
			Driver:       DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:         v.GetString("DATABASE_PATH"),
			URL:          v.GetString("DATABASE_URL"),
			AutoMigrate:  v.GetBool("DATABASE_AUTO_MIGRATE"),
			LogLevel:     v.GetString("DATABASE_LOG_LEVEL"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimit{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
