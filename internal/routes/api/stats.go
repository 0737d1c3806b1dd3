package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/lk16/flippy/versus/internal/repository"
)

// GetStats returns the results of finished games per difficulty.
func GetStats(c *fiber.Ctx) error {
	stats, err := repository.FromCtx(c).Results.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewStatsResponse(stats))
}
