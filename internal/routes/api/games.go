package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/lk16/flippy/versus/internal/repository"
)

func controllerFromCtx(c *fiber.Ctx) *game.Controller {
	return c.Locals("controller").(*game.Controller) //nolint: errcheck
}

// searchContext limits the time the AI may spend on a single request.
func searchContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck
	return context.WithTimeout(c.UserContext(), cfg.SearchTimeout)
}

func loadGame(c *fiber.Ctx) (*game.Session, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrGameNotFound
	}

	return repository.FromCtx(c).Games.Load(c.Context(), id)
}

// CreateGame starts a new game. An empty body starts a medium game with the human playing black.
func CreateGame(c *fiber.Ctx) error {
	var payload models.NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	difficulty, human, err := payload.Parse()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	ctx, cancel := searchContext(c)
	defer cancel()

	controller := controllerFromCtx(c)
	s, err := controller.NewSession(ctx, uuid.NewString(), difficulty, human)
	if err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	if err = repository.FromCtx(c).Games.Save(c.Context(), s); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, err)
	}

	slog.Info("Game created", "game_id", s.ID, "difficulty", s.Difficulty, "human", s.Human)

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(s, controller.Engine()))
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	s, err := loadGame(c)
	if err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(s, controllerFromCtx(c).Engine()))
}

// DeleteGame abandons a game. Abandoned games are not recorded as results.
func DeleteGame(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return errorResponse(c, fiber.StatusNotFound, repository.ErrGameNotFound)
	}

	if err := repository.FromCtx(c).Games.Delete(c.Context(), id); err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PlayMove plays a move of the human and returns the game after the AI replied.
func PlayMove(c *fiber.Ctx) error {
	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	move, err := payload.Move()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	s, err := loadGame(c)
	if err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	ctx, cancel := searchContext(c)
	defer cancel()

	controller := controllerFromCtx(c)
	if err = controller.Play(ctx, s, move); err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	repos := repository.FromCtx(c)
	if err = repos.Games.Save(c.Context(), s); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, err)
	}

	if s.IsFinished() {
		repos.RecordResult(c.Context(), controller.Result(s))
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(s, controller.Engine()))
}

// GetHint suggests a move for the human. The depth query parameter is optional.
func GetHint(c *fiber.Ctx) error {
	depth := config.DefaultHintDepth
	if query := c.Query("depth"); query != "" {
		var err error
		if depth, err = strconv.Atoi(query); err != nil || depth < 1 || depth > config.MaxHintDepth {
			return errorResponse(c, fiber.StatusBadRequest, fmt.Errorf("depth must be between 1 and %d", config.MaxHintDepth))
		}
	}

	s, err := loadGame(c)
	if err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	ctx, cancel := searchContext(c)
	defer cancel()

	move, found, err := controllerFromCtx(c).Hint(ctx, s, depth)
	if err != nil {
		return errorResponse(c, StatusCode(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewHintResponse(move, found))
}
