package http

import (
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books    BookService
	Reviews  ReviewService
	Tags     TagService
	Database *database.Database

	// Prefix for the API routes; /health and /ping stay at the root.
	BasePath string

	// Optional per-client admission control. Nil disables it.
	RateLimiter *RateLimiter

	// Application info
	Title   string
	Version string
}

// NewRateLimiterFromConfig returns nil when rate limiting is disabled.
func NewRateLimiterFromConfig(cfg config.RateLimit) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	return NewRateLimiter(RateLimitConfig{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
}
