package resources

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/labelforge/labelforge/engine/infra/cache"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// RedisStore keeps documents as plain string values under "<prefix>:<key>".
type RedisStore struct {
	r      cache.RedisInterface
	prefix string
	closed atomic.Bool
}

// RedisStoreOption configures RedisStore.
type RedisStoreOption func(*RedisStore)

// WithPrefix sets the key namespace (default "labelforge").
func WithPrefix(p string) RedisStoreOption {
	return func(s *RedisStore) {
		if p != "" {
			s.prefix = p
		}
	}
}

// NewRedisStore creates a Redis-backed Store.
func NewRedisStore(client cache.RedisInterface, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{r: client, prefix: "labelforge"}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *RedisStore) keyFor(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	n, err := s.r.Exists(ctx, s.keyFor(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	if err := s.r.Set(ctx, s.keyFor(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	bs, err := s.r.Get(ctx, s.keyFor(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return bs, nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	match := escapeGlob(s.keyFor(prefix)) + "*"
	strip := s.prefix + ":"
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		keys, next, err := s.r.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan %q: %w", prefix, err)
		}
		for _, k := range keys {
			seen[strings.TrimPrefix(k, strip)] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	slices.Sort(out)
	return out, nil
}

// Close marks the store closed and closes the client.
func (s *RedisStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.r.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
