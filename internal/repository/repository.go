package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/services"
)

var ErrGameNotFound = errors.New("game not found")

// Repositories bundles the stores used by the routes.
type Repositories struct {
	Games   GameRepository
	Results ResultRepository
}

// New picks a store implementation for every repository based on the available services.
func New(services *services.Services, sessionTTL time.Duration) (*Repositories, error) {
	repos := &Repositories{}

	if services.Redis != nil {
		repos.Games = NewRedisGameRepository(services.Redis, sessionTTL)
	} else {
		repos.Games = NewMemoryGameRepository(sessionTTL)
	}

	switch {
	case services.Postgres != nil:
		results, err := NewPostgresResultRepository(services.Postgres)
		if err != nil {
			return nil, err
		}
		repos.Results = results
	case services.Redis != nil:
		repos.Results = NewRedisResultRepository(services.Redis)
	default:
		repos.Results = NewMemoryResultRepository()
	}

	return repos, nil
}

// NewMemory creates repositories that keep everything in memory.
func NewMemory(sessionTTL time.Duration) *Repositories {
	return &Repositories{
		Games:   NewMemoryGameRepository(sessionTTL),
		Results: NewMemoryResultRepository(),
	}
}

// FromCtx returns the repositories stored in the fiber context.
func FromCtx(c *fiber.Ctx) *Repositories {
	return c.Locals("repositories").(*Repositories) //nolint: errcheck
}

// RecordResult stores the result of a finished game. Failures are only logged,
// since the game itself has already been saved.
func (r *Repositories) RecordResult(ctx context.Context, result game.Result) {
	if err := r.Results.Record(ctx, result); err != nil {
		slog.Error("Failed to record result", "game_id", result.SessionID, "error", err)
		return
	}

	slog.Info("Result recorded", "game_id", result.SessionID, "outcome", result.HumanOutcome())
}
