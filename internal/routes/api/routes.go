package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Post("/games/:id/moves", PlayMove)
	apiGroup.Get("/games/:id/hint", GetHint)

	// Result routes
	apiGroup.Get("/stats", GetStats)
}
