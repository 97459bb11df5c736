package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/the-deep/internal/config"
	"github.com/jwebster45206/the-deep/pkg/storage"
)

// Open builds the save backend named by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return storage.NewMockStorage(), nil
	case config.StorageFile:
		return NewFileStorage(cfg.SaveDir, logger)
	case config.StorageRedis:
		r, err := NewRedisStorage(cfg.RedisURL, cfg.SaveTTL, logger)
		if err != nil {
			return nil, err
		}
		if err := r.WaitForConnection(ctx, cfg.RedisRetries, 2*time.Second); err != nil {
			r.Close()
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
