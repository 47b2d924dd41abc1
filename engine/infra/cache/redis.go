package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisInterface is the subset of the client used by the Redis document
// store. Both *redis.Client and *Redis satisfy it.
type RedisInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// Config holds Redis connection settings. Zero values fall back to the
// options encoded in URL, then to the client defaults.
type Config struct {
	URL         string
	PingTimeout time.Duration
	PoolSize    int
}

const defaultPingTimeout = 10 * time.Second

// Redis is a verified connection whose Close is idempotent.
type Redis struct {
	*redis.Client
	once sync.Once
	log  logger.Logger
}

var _ RedisInterface = (*Redis)(nil)

// NewRedis connects to the server at cfg.URL and verifies it answers PING.
func NewRedis(ctx context.Context, cfg *Config) (*Redis, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging Redis server (timeout=%s): %w", timeout, err)
	}
	log := logger.FromContext(ctx).With("component", "infra_redis")
	log.Info("Redis connection established", "addr", opt.Addr, "db", opt.DB)
	return &Redis{Client: client, log: log}, nil
}

// Close shuts down the connection; repeated calls are no-ops.
func (r *Redis) Close() error {
	var err error
	r.once.Do(func() {
		if err = r.Client.Close(); err != nil {
			r.log.Error("Redis connection close failed", "error", err)
			return
		}
		r.log.Debug("Redis connection closed")
	})
	return err
}
