package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/repository"
)

// StatusCode maps errors of the game layer to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, othello.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
