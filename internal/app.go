package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/middleware"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/repository"
	"github.com/lk16/flippy/versus/internal/routes"
	"github.com/lk16/flippy/versus/internal/services"
)

const (
	defaultConcurrency = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 5 * time.Second
	defaultBodyLimit   = 64 * 1024
)

// SetupApp loads the configuration, connects to the configured services and builds the app.
// The returned cleanup function closes the service connections.
func SetupApp() (*fiber.App, *config.ServerConfig, func()) {
	cfg := config.LoadServerConfig()

	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	repos, err := repository.New(services, cfg.SessionTTL)
	if err != nil {
		slog.Error("Failed to initialize repositories", "error", err)
		os.Exit(1)
	}

	cleanup := func() {
		if err := services.Close(); err != nil {
			slog.Error("Failed to close services", "error", err)
		}
	}

	return BuildApp(cfg, repos), cfg, cleanup
}

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, repos *repository.Repositories) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:     cfg.Prefork,
		Concurrency: defaultConcurrency,
		ReadTimeout: defaultReadTimeout,
		// Responses may wait for an AI search.
		WriteTimeout: cfg.SearchTimeout + defaultReadTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	controller := game.NewController(othello.NewEngine(cfg.Rules))

	// Setup config, repositories and the game controller in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("repositories", repos)
		c.Locals("controller", controller)
		return c.Next()
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logging())
	app.Use(middleware.Recover())

	routes.SetupRoutes(app)

	slog.Info("App ready", "rules", cfg.Rules.String(), "session_ttl", cfg.SessionTTL, "search_timeout", cfg.SearchTimeout)

	return app
}
