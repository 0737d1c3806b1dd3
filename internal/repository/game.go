package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lk16/flippy/versus/internal/game"
	"github.com/redis/go-redis/v9"
)

const gameKeyPrefix = "games:"

// GameRepository stores sessions that are being played.
type GameRepository interface {
	Save(ctx context.Context, s *game.Session) error
	Load(ctx context.Context, id string) (*game.Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisGameRepository stores sessions as JSON strings that expire after a period of inactivity.
type RedisGameRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisGameRepository creates a new RedisGameRepository.
func NewRedisGameRepository(client *redis.Client, ttl time.Duration) *RedisGameRepository {
	return &RedisGameRepository{
		redis: client,
		ttl:   ttl,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// Save stores a session and resets its TTL.
func (repo *RedisGameRepository) Save(ctx context.Context, s *game.Session) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	if err = repo.redis.Set(ctx, gameKey(s.ID), jsonData, repo.ttl).Err(); err != nil {
		return fmt.Errorf("error storing game: %w", err)
	}

	return nil
}

// Load retrieves a session.
func (repo *RedisGameRepository) Load(ctx context.Context, id string) (*game.Session, error) {
	jsonData, err := repo.redis.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error getting game: %w", err)
	}

	var s game.Session
	if err = json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("error unmarshaling game: %w", err)
	}

	return &s, nil
}

// Delete removes a session.
func (repo *RedisGameRepository) Delete(ctx context.Context, id string) error {
	deleted, err := repo.redis.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

type memoryGame struct {
	data      []byte
	expiresAt time.Time
}

// MemoryGameRepository keeps sessions in a map. Sessions are stored as JSON,
// so callers never share a session with the repository.
type MemoryGameRepository struct {
	// data maps session IDs to sessions
	data map[string]memoryGame

	// dataMutex protects data
	dataMutex sync.Mutex

	ttl time.Duration
	now func() time.Time
}

// NewMemoryGameRepository creates a new MemoryGameRepository.
func NewMemoryGameRepository(ttl time.Duration) *MemoryGameRepository {
	return &MemoryGameRepository{
		data: make(map[string]memoryGame),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Save stores a session and resets its TTL.
func (repo *MemoryGameRepository) Save(_ context.Context, s *game.Session) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	repo.dataMutex.Lock()
	defer repo.dataMutex.Unlock()

	repo.evictExpired()
	repo.data[s.ID] = memoryGame{
		data:      jsonData,
		expiresAt: repo.now().Add(repo.ttl),
	}

	return nil
}

// Load retrieves a session.
func (repo *MemoryGameRepository) Load(_ context.Context, id string) (*game.Session, error) {
	repo.dataMutex.Lock()
	defer repo.dataMutex.Unlock()

	repo.evictExpired()
	found, ok := repo.data[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	var s game.Session
	if err := json.Unmarshal(found.data, &s); err != nil {
		return nil, fmt.Errorf("error unmarshaling game: %w", err)
	}

	return &s, nil
}

// Delete removes a session.
func (repo *MemoryGameRepository) Delete(_ context.Context, id string) error {
	repo.dataMutex.Lock()
	defer repo.dataMutex.Unlock()

	repo.evictExpired()
	if _, ok := repo.data[id]; !ok {
		return ErrGameNotFound
	}

	delete(repo.data, id)
	return nil
}

// evictExpired removes expired sessions. It assumes dataMutex is locked.
func (repo *MemoryGameRepository) evictExpired() {
	now := repo.now()
	for id, entry := range repo.data {
		if !now.Before(entry.expiresAt) {
			delete(repo.data, id)
		}
	}
}
