package repo

import (
	"context"
	"fmt"

	"github.com/labelforge/labelforge/engine/infra/cache"
	"github.com/labelforge/labelforge/engine/infra/postgres"
	"github.com/labelforge/labelforge/engine/infra/sqlite"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
)

// NewStore opens the document store selected by cfg.Driver, wraps it with
// metrics and, when cfg.CacheSize is positive, an LRU read cache. It returns
// interfaces rather than driver specific types.
func NewStore(ctx context.Context, cfg *config.StorageConfig) (resources.Store, error) {
	base, err := openDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := resources.NewCachedStore(resources.Instrument(base, cfg.Driver), cfg.CacheSize)
	if err != nil {
		base.Close()
		return nil, fmt.Errorf("create store cache: %w", err)
	}
	logger.FromContext(ctx).Debug("Document store opened", "driver", cfg.Driver, "cache_size", cfg.CacheSize)
	return store, nil
}

func openDriver(ctx context.Context, cfg *config.StorageConfig) (resources.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return resources.NewMemoryStore(), nil
	case config.DriverFile, "":
		return resources.NewOSFileStore(cfg.DataDir), nil
	case config.DriverRedis:
		client, err := cache.NewRedis(ctx, &cache.Config{URL: cfg.RedisURL.Value()})
		if err != nil {
			return nil, err
		}
		return resources.NewRedisStore(client, resources.WithPrefix(cfg.RedisPrefix)), nil
	case config.DriverSQLite:
		return sqlite.NewStore(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		return postgres.Connect(ctx, cfg.PostgresDSN.Value())
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
