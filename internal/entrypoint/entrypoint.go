package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/tags"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logger"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// ShutdownFunc is called once the server has stopped to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout. onShutdown runs on every exit path,
// including a failure to listen.
func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "base_path", cfg.HTTP.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		release(context.Background(), onShutdown)
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	slog.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := srv.Shutdown(ctx)

	// Close dependencies only after in-flight requests finished
	release(ctx, onShutdown)

	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}
	slog.Info("server exiting")
	return nil
}

func release(ctx context.Context, onShutdown ShutdownFunc) {
	if onShutdown != nil {
		onShutdown(ctx)
	}
}

// SetupLogger installs the process-wide logger from configuration.
func SetupLogger(cfg *config.Config) *logger.Logger {
	log := logger.New(logger.Config{
		Format:      cfg.Log.Format,
		Environment: cfg.Global.Environment,
		Level:       logger.ParseLevel(cfg.Log.Level),
	})
	slog.SetDefault(log.Logger)
	return log
}

// NewHandler wires repositories, services and the router on top of db. The
// returned cleanup stops background workers owned by the handler.
func NewHandler(cfg *config.Config, db *database.Database, version string) (http.Handler, func()) {
	if cfg.Global.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	v := validation.New()
	rateLimiter := http_controllers.NewRateLimiterFromConfig(cfg.RateLimit)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:       services.NewBookService(books.NewRepository(db.DB), v, services.SystemClock),
		Reviews:     services.NewReviewService(reviews.NewRepository(db.DB), v, services.SystemClock),
		Tags:        services.NewTagService(tags.NewRepository(db.DB), v, services.SystemClock),
		Database:    db,
		BasePath:    cfg.HTTP.BasePath,
		RateLimiter: rateLimiter,
		Version:     version,
	})

	cleanup := func() {
		if rateLimiter != nil {
			rateLimiter.Stop()
		}
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		return router, cleanup
	}

	slog.Info("CORS enabled", "origins", cfg.CORS.AllowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(router), cleanup
}

// Run opens the database, builds the HTTP stack and serves until a
// termination signal arrives.
func Run(cfg *config.Config, version string) {
	log := SetupLogger(cfg)
	log.Info("starting bookshelf", "version", version, "environment", cfg.Global.Environment)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	handler, cleanup := NewHandler(cfg, db, version)

	err = Serve(handler, cfg, func(ctx context.Context) {
		cleanup()
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	})
	if err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
