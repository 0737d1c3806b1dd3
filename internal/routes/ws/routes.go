package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/middleware"
	"github.com/lk16/flippy/versus/internal/repository"
	"github.com/lk16/flippy/versus/internal/ws"
)

func handleWs(c *websocket.Conn) {
	cfg := c.Locals("config").(*config.ServerConfig)             //nolint: errcheck
	controller := c.Locals("controller").(*game.Controller)      //nolint: errcheck
	repos := c.Locals("repositories").(*repository.Repositories) //nolint: errcheck

	h := ws.NewHandler(c, controller, repos, cfg.SearchTimeout)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.AuthOrToken(), upgradeOnly, websocket.New(handleWs))
}
