package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/routes/api"
	"github.com/lk16/flippy/versus/internal/routes/version"
	"github.com/lk16/flippy/versus/internal/routes/ws"
)

func rootHandler(c *fiber.Ctx) error {
	return c.Redirect("/version")
}

func SetupRoutes(app *fiber.App) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve realtime play
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)

	// Serve root page
	app.Get("/", rootHandler)
}
