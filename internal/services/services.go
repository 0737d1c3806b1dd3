package services

import (
	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
// Each connection is nil when the service is not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to the services that are configured in cfg.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
	}

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return err
		}
	}

	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			return err
		}
	}

	return nil
}
