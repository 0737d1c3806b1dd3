package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lk16/flippy/versus/internal/othello"
)

const (
	DefaultSessionTTL    = time.Hour
	DefaultSearchTimeout = 10 * time.Second
	DefaultHintDepth     = 3
	MaxHintDepth         = 7
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	SessionTTL        time.Duration
	SearchTimeout     time.Duration
	Rules             othello.Rules
}

// LoadDotEnv loads a .env file from the working directory if there is one.
// Variables that are already set take precedence.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

// LoadServerConfig loads configuration from environment variables.
// Redis and Postgres are optional: without them the server keeps everything in memory.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvDefault("FLIPPY_SERVER_HOST", "localhost"),
		ServerPort:        getEnvDefault("FLIPPY_SERVER_PORT", "3000"),
		RedisURL:          os.Getenv("FLIPPY_REDIS_URL"),
		PostgresURL:       os.Getenv("FLIPPY_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("FLIPPY_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("FLIPPY_BASIC_AUTH_PASS"),
		Token:             getEnvMust("FLIPPY_SERVER_TOKEN"),
		Prefork:           getEnvBoolDefault("FLIPPY_SERVER_PREFORK", false),
		SessionTTL:        getEnvDurationDefault("FLIPPY_SESSION_TTL", DefaultSessionTTL),
		SearchTimeout:     getEnvDurationDefault("FLIPPY_SEARCH_TIMEOUT", DefaultSearchTimeout),
		Rules:             LoadRules(),
	}
}

// LoadRules returns the rules named by FLIPPY_RULES, defaulting to orthogonal rules.
func LoadRules() othello.Rules {
	name := getEnvDefault("FLIPPY_RULES", othello.OrthogonalRules.String())

	rules, err := othello.ParseRules(name)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", "FLIPPY_RULES", "error", err)
		os.Exit(1)
	}

	return rules
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBoolDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvDurationDefault accepts Go durations ("90s", "2h") or a plain number of seconds.
func getEnvDurationDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
