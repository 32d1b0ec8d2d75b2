package storage

import (
	"context"
	"fmt"

	"github.com/foodhub-app/client-core/pkg/config"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/redis"
)

// Open builds the Store selected by configuration.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return NewMemory(), nil
	case config.StorageBackendSQLite:
		return NewSQLite(cfg.Storage.SQLitePath)
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		return NewRedis(client)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
