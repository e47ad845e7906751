package http

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/errors"
)

const defaultAPITitle = "Bookshelf API"

// NewRouter creates and configures the HTTP router with all endpoints.
// The API operations are registered through huma, which also serves the
// OpenAPI document and the docs page under the base path.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimitMiddleware())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, errors.NotFound("route not found"))
	})

	api := NewAPI(router, cfg)
	NewBooksController(cfg.Books).Register(api)
	NewReviewsController(cfg.Reviews).Register(api)
	NewTagsController(cfg.Tags).Register(api)

	return router
}

// NewAPI mounts a huma API on the router under cfg.BasePath.
func NewAPI(router *gin.Engine, cfg RouterConfig) huma.API {
	humaConfig := newHumaConfig(cfg)

	RegisterErrorHandler()

	if cfg.BasePath == "" {
		return humagin.New(router, humaConfig)
	}
	return humagin.NewWithGroup(router, router.Group(cfg.BasePath), humaConfig)
}

func newHumaConfig(cfg RouterConfig) huma.Config {
	title := cfg.Title
	if title == "" {
		title = defaultAPITitle
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	humaConfig := huma.DefaultConfig(title, version)
	humaConfig.Info.Description = "Books, their reviews and tags."
	// Response bodies carry no $schema link.
	humaConfig.CreateHooks = nil
	if cfg.BasePath != "" {
		humaConfig.Servers = []*huma.Server{{URL: cfg.BasePath}}
	}
	return humaConfig
}
