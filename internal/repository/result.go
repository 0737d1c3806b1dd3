package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/redis/go-redis/v9"
)

const resultStatsKey = "result_stats"

// ResultRepository records finished games.
type ResultRepository interface {
	Record(ctx context.Context, result game.Result) error
	Stats(ctx context.Context) ([]models.DifficultyStats, error)
}

// PostgresResultRepository stores every finished game as a row.
type PostgresResultRepository struct {
	db *sqlx.DB
}

const createResultsTable = `
	CREATE TABLE IF NOT EXISTS game_results (
		id          TEXT PRIMARY KEY,
		difficulty  TEXT NOT NULL,
		human       TEXT NOT NULL,
		white_count INTEGER NOT NULL,
		black_count INTEGER NOT NULL,
		winner      TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		moves       TEXT[] NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)
`

// NewPostgresResultRepository creates the results table if needed and returns the repository.
func NewPostgresResultRepository(db *sqlx.DB) (*PostgresResultRepository, error) {
	if _, err := db.Exec(createResultsTable); err != nil {
		return nil, fmt.Errorf("error creating results table: %w", err)
	}

	return &PostgresResultRepository{db: db}, nil
}

// Record stores a result. Recording the same game twice is a no-op.
func (repo *PostgresResultRepository) Record(ctx context.Context, result game.Result) error {
	query := `
		INSERT INTO game_results (id, difficulty, human, white_count, black_count, winner, outcome, moves, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := repo.db.ExecContext(
		ctx,
		query,
		result.SessionID,
		string(result.Difficulty),
		result.Human.String(),
		result.White,
		result.Black,
		result.Winner.String(),
		result.HumanOutcome(),
		pq.StringArray(result.Moves),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting result: %w", err)
	}

	return nil
}

// Stats returns the number of wins, losses and draws of the human per difficulty.
func (repo *PostgresResultRepository) Stats(ctx context.Context) ([]models.DifficultyStats, error) {
	query := `
		SELECT
			difficulty,
			COUNT(*) AS games,
			COUNT(*) FILTER (WHERE outcome = 'win') AS wins,
			COUNT(*) FILTER (WHERE outcome = 'loss') AS losses,
			COUNT(*) FILTER (WHERE outcome = 'draw') AS draws
		FROM game_results
		GROUP BY difficulty
		ORDER BY difficulty
	`

	stats := make([]models.DifficultyStats, 0)
	if err := repo.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("error querying result stats: %w", err)
	}

	return stats, nil
}

// RedisResultRepository only keeps counters in a Redis hash, with fields "<difficulty>:<outcome>".
type RedisResultRepository struct {
	redis *redis.Client
}

// NewRedisResultRepository creates a new RedisResultRepository.
func NewRedisResultRepository(client *redis.Client) *RedisResultRepository {
	return &RedisResultRepository{redis: client}
}

// Record increments the counter of the outcome of the result.
func (repo *RedisResultRepository) Record(ctx context.Context, result game.Result) error {
	field := string(result.Difficulty) + ":" + result.HumanOutcome()

	if err := repo.redis.HIncrBy(ctx, resultStatsKey, field, 1).Err(); err != nil {
		return fmt.Errorf("error updating Redis stats: %w", err)
	}

	return nil
}

// Stats converts the counters to per-difficulty stats.
func (repo *RedisResultRepository) Stats(ctx context.Context) ([]models.DifficultyStats, error) {
	counters, err := repo.redis.HGetAll(ctx, resultStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting result stats from Redis: %w", err)
	}

	stats := newStatsBuilder()
	for field, value := range counters {
		difficulty, outcome, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("invalid result stats field: %s", field)
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid result stats count %s: %w", value, err)
		}

		stats.add(difficulty, outcome, count)
	}

	return stats.build(), nil
}

// MemoryResultRepository keeps results in a map keyed by session ID.
type MemoryResultRepository struct {
	// results holds the recorded results
	results map[string]game.Result

	// resultsMutex protects results
	resultsMutex sync.Mutex
}

// NewMemoryResultRepository creates a new MemoryResultRepository.
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		results: make(map[string]game.Result),
	}
}

// Record stores a result. Recording the same game twice is a no-op.
func (repo *MemoryResultRepository) Record(_ context.Context, result game.Result) error {
	repo.resultsMutex.Lock()
	defer repo.resultsMutex.Unlock()

	if _, ok := repo.results[result.SessionID]; !ok {
		repo.results[result.SessionID] = result
	}

	return nil
}

// Stats returns the number of wins, losses and draws of the human per difficulty.
func (repo *MemoryResultRepository) Stats(_ context.Context) ([]models.DifficultyStats, error) {
	repo.resultsMutex.Lock()
	defer repo.resultsMutex.Unlock()

	stats := newStatsBuilder()
	for _, result := range repo.results {
		stats.add(string(result.Difficulty), result.HumanOutcome(), 1)
	}

	return stats.build(), nil
}

type statsBuilder struct {
	byDifficulty map[string]*models.DifficultyStats
}

func newStatsBuilder() *statsBuilder {
	return &statsBuilder{byDifficulty: make(map[string]*models.DifficultyStats)}
}

func (b *statsBuilder) add(difficulty, outcome string, count int) {
	stats, ok := b.byDifficulty[difficulty]
	if !ok {
		stats = &models.DifficultyStats{Difficulty: difficulty}
		b.byDifficulty[difficulty] = stats
	}

	switch outcome {
	case "win":
		stats.Wins += count
	case "loss":
		stats.Losses += count
	case "draw":
		stats.Draws += count
	default:
		return
	}

	stats.Games += count
}

// build returns the stats sorted by difficulty name, like the SQL query does.
func (b *statsBuilder) build() []models.DifficultyStats {
	stats := make([]models.DifficultyStats, 0, len(b.byDifficulty))
	for _, s := range b.byDifficulty {
		stats = append(stats, *s)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Difficulty < stats[j].Difficulty
	})

	return stats
}
