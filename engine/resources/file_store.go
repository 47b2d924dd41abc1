package resources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	documentExt  = ".json"
	lockExt      = ".lock"
	lockInterval = 5 * time.Millisecond
)

// FileStore keeps each document as a JSON file below a root directory.
// Key "a/b" is stored at "<root>/a/b.json".
type FileStore struct {
	fs     afero.Fs
	root   string
	closed atomic.Bool
	// locking guards each write with an advisory lock file. Only meaningful
	// on the host filesystem.
	locking bool
}

// NewFileStore creates a FileStore rooted at dir on fs.
func NewFileStore(fsys afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fsys, root: filepath.Clean(dir)}
}

// NewOSFileStore creates a FileStore on the host filesystem.
func NewOSFileStore(dir string) *FileStore {
	s := NewFileStore(afero.NewOsFs(), dir)
	s.locking = true
	return s
}

func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key)+documentExt)
}

func (s *FileStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	if ValidateKey(key) != nil {
		return false, nil
	}
	ok, err := afero.Exists(s.fs, s.pathFor(key))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	return ok, nil
}

// Save writes to a temporary sibling and renames it into place so readers
// never observe a partial document.
func (s *FileStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	target := s.pathFor(key)
	if err := s.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}
	if s.locking {
		unlock, err := lockPath(ctx, target+lockExt)
		if err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}
		defer unlock()
	}
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// lockPath takes an exclusive advisory lock on path, waiting until ctx is
// done. Separate processes writing the same data dir serialize per document.
func lockPath(ctx context.Context, path string) (func(), error) {
	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockInterval)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.New("lock not acquired")
	}
	return func() { _ = fl.Unlock() }, nil
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if ValidateKey(key) != nil {
		return nil, ErrNotFound
	}
	data, err := afero.ReadFile(s.fs, s.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	keys := make([]string, 0)
	ok, err := afero.DirExists(s.fs, s.root)
	if err != nil || !ok {
		return keys, err
	}
	err = afero.Walk(s.fs, s.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(p, documentExt) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), documentExt)
		if strings.HasPrefix(key, prefix) && path.Clean(key) == key {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *FileStore) Close() error {
	s.closed.Store(true)
	return nil
}
