package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends for save games.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

type Config struct {
	Environment  string
	LogLevel     slog.Level
	LogFile      string
	Storage      string
	RedisURL     string
	RedisRetries int
	SaveDir      string
	SaveTTL      time.Duration
	GameSeed     int64 // 0 seeds from the clock
	Difficulty   string
	WorldFile    string // empty uses the built-in world
	PlayerName   string
}

func Load() *Config {
	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:      getEnv("LOG_FILE", "the-deep.log"),
		Storage:      strings.ToLower(getEnv("STORAGE", StorageFile)),
		RedisURL:     getEnv("REDIS_URL", "localhost:6379"),
		RedisRetries: getEnvInt("REDIS_RETRIES", 30),
		SaveDir:      getEnv("SAVE_DIR", "./saves"),
		SaveTTL:      getEnvDuration("SAVE_TTL", 0),
		GameSeed:     int64(getEnvInt("GAME_SEED", 0)),
		Difficulty:   strings.ToLower(getEnv("DIFFICULTY", "normal")),
		WorldFile:    getEnv("WORLD_FILE", ""),
		PlayerName:   getEnv("PLAYER_NAME", "Diver"),
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageFile, StorageRedis:
	default:
		return fmt.Errorf("STORAGE must be one of memory, file, redis; got %q", c.Storage)
	}
	if c.SaveTTL < 0 {
		return fmt.Errorf("SAVE_TTL must not be negative")
	}
	if c.RedisRetries < 1 {
		return fmt.Errorf("REDIS_RETRIES must be at least 1")
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}
