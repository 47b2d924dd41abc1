package resources

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file":   func() Store { return NewFileStore(afero.NewMemMapFs(), "/data") },
		"os":     func() Store { return NewOSFileStore(t.TempDir()) },
		"redis": func() Store {
			mr := miniredis.RunT(t)
			return NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), WithPrefix("test"))
		},
		"cached": func() Store {
			s, err := NewCachedStore(NewMemoryStore(), 4)
			require.NoError(t, err)
			return s
		},
		"instrumented": func() Store { return Instrument(NewMemoryStore(), "memory") },
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			t.Run("Should save and load documents", func(t *testing.T) {
				s := factory()
				defer s.Close()
				require.NoError(t, s.Save(ctx, "demo/project", []byte(`{"a":1}`)))
				got, err := s.Load(ctx, "demo/project")
				require.NoError(t, err)
				assert.JSONEq(t, `{"a":1}`, string(got))
				ok, err := s.Exists(ctx, "demo/project")
				require.NoError(t, err)
				assert.True(t, ok)
			})
			t.Run("Should overwrite existing documents", func(t *testing.T) {
				s := factory()
				defer s.Close()
				require.NoError(t, s.Save(ctx, "demo/project", []byte(`1`)))
				require.NoError(t, s.Save(ctx, "demo/project", []byte(`2`)))
				got, err := s.Load(ctx, "demo/project")
				require.NoError(t, err)
				assert.Equal(t, "2", string(got))
			})
			t.Run("Should report missing documents", func(t *testing.T) {
				s := factory()
				defer s.Close()
				_, err := s.Load(ctx, "missing/project")
				assert.ErrorIs(t, err, ErrNotFound)
				ok, err := s.Exists(ctx, "missing/project")
				require.NoError(t, err)
				assert.False(t, ok)
			})
			t.Run("Should list keys by prefix in order", func(t *testing.T) {
				s := factory()
				defer s.Close()
				for _, k := range []string{"p/tasks/000001", "p/tasks/000000", "p/project", "q/project"} {
					require.NoError(t, s.Save(ctx, k, []byte(`{}`)))
				}
				keys, err := s.List(ctx, "p/tasks/")
				require.NoError(t, err)
				assert.Equal(t, []string{"p/tasks/000000", "p/tasks/000001"}, keys)
				keys, err = s.List(ctx, "none/")
				require.NoError(t, err)
				assert.Empty(t, keys)
			})
			t.Run("Should reject invalid keys", func(t *testing.T) {
				s := factory()
				defer s.Close()
				for _, k := range []string{"", "/abs", "a/../b", "trailing/", "a//b"} {
					assert.ErrorIs(t, s.Save(ctx, k, []byte(`{}`)), ErrInvalidKey, k)
				}
			})
			t.Run("Should handle concurrent saves", func(t *testing.T) {
				s := factory()
				defer s.Close()
				var wg sync.WaitGroup
				for i := range 16 {
					wg.Add(1)
					go func() {
						defer wg.Done()
						assert.NoError(t, s.Save(ctx, fmt.Sprintf("c/tasks/%06d", i), []byte(`{}`)))
					}()
				}
				wg.Wait()
				keys, err := s.List(ctx, "c/tasks/")
				require.NoError(t, err)
				assert.Len(t, keys, 16)
			})
			t.Run("Should honor canceled contexts", func(t *testing.T) {
				s := factory()
				defer s.Close()
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				assert.Error(t, s.Save(cctx, "x/project", []byte(`{}`)))
			})
		})
	}
}

func TestMemoryStore_Close(t *testing.T) {
	t.Run("Should fail after close", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Close())
		assert.ErrorIs(t, s.Save(context.Background(), "a/b", nil), ErrClosed)
		_, err := s.Load(context.Background(), "a/b")
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestFileStore_Layout(t *testing.T) {
	t.Run("Should write one JSON file per key", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		s := NewFileStore(fs, "/data")
		require.NoError(t, s.Save(context.Background(), "demo/tasks/000000", []byte(`{}`)))
		ok, err := afero.Exists(fs, "/data/demo/tasks/000000.json")
		require.NoError(t, err)
		assert.True(t, ok)
		tmp, err := afero.Exists(fs, "/data/demo/tasks/000000.json.tmp")
		require.NoError(t, err)
		assert.False(t, tmp)
	})
	t.Run("Should serialize concurrent writers on the host filesystem", func(t *testing.T) {
		dir := t.TempDir()
		s := NewOSFileStore(dir)
		ctx := context.Background()
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Save(ctx, "demo/project", []byte(fmt.Sprintf(`{"n":%d}`, i))))
			}()
		}
		wg.Wait()
		got, err := s.Load(ctx, "demo/project")
		require.NoError(t, err)
		assert.Contains(t, string(got), `"n":`)
		keys, err := s.List(ctx, "demo/")
		require.NoError(t, err)
		assert.Equal(t, []string{"demo/project"}, keys)
	})
	t.Run("Should list nothing when the root is missing", func(t *testing.T) {
		s := NewFileStore(afero.NewMemMapFs(), "/nowhere")
		keys, err := s.List(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

type countingStore struct {
	*MemoryStore
	loads int
}

func (c *countingStore) Load(ctx context.Context, key string) ([]byte, error) {
	c.loads++
	return c.MemoryStore.Load(ctx, key)
}

type failingSaveStore struct {
	*MemoryStore
}

func (f *failingSaveStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	t.Run("Should serve repeated loads from cache", func(t *testing.T) {
		backend := &countingStore{MemoryStore: NewMemoryStore()}
		require.NoError(t, backend.MemoryStore.Save(ctx, "a/project", []byte(`1`)))
		s, err := NewCachedStore(backend, 2)
		require.NoError(t, err)
		for range 3 {
			got, err := s.Load(ctx, "a/project")
			require.NoError(t, err)
			assert.Equal(t, "1", string(got))
		}
		assert.Equal(t, 1, backend.loads)
	})
	t.Run("Should not cache failed writes", func(t *testing.T) {
		s, err := NewCachedStore(&failingSaveStore{MemoryStore: NewMemoryStore()}, 2)
		require.NoError(t, err)
		assert.Error(t, s.Save(ctx, "a/project", []byte(`1`)))
		_, err = s.Load(ctx, "a/project")
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("Should return the backend when disabled", func(t *testing.T) {
		backend := NewMemoryStore()
		s, err := NewCachedStore(backend, 0)
		require.NoError(t, err)
		assert.Same(t, backend, s)
	})
}

func TestEscapeGlob(t *testing.T) {
	t.Run("Should escape pattern characters", func(t *testing.T) {
		assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
	})
}
