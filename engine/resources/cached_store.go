package resources

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore keeps recently loaded documents in memory in front of another
// Store. Writes go through to the backend and refresh the cache.
type CachedStore struct {
	Store
	cache *lru.Cache[string, []byte]
}

// NewCachedStore wraps next with an LRU of size entries. A size below one
// returns next unchanged.
func NewCachedStore(next Store, size int) (Store, error) {
	if size < 1 {
		return next, nil
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{Store: next, cache: c}, nil
}

func (s *CachedStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.cache.Contains(key) {
		return true, nil
	}
	return s.Store.Exists(ctx, key)
}

func (s *CachedStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.Store.Save(ctx, key, value); err != nil {
		s.cache.Remove(key)
		return err
	}
	s.cache.Add(key, slices.Clone(value))
	return nil
}

func (s *CachedStore) Load(ctx context.Context, key string) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v), nil
	}
	v, err := s.Store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, slices.Clone(v))
	return v, nil
}

func (s *CachedStore) Close() error {
	s.cache.Purge()
	return s.Store.Close()
}
