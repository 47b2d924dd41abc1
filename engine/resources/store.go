package resources

import (
	"context"
	"errors"
	"strings"
)

// Store persists serialized project documents under slash separated keys.
// Implementations must be safe for concurrent use.
type Store interface {
	// Exists reports whether a document is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Save inserts or replaces the document at key.
	Save(ctx context.Context, key string, value []byte) error
	// Load returns the document at key or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// List returns the keys starting with prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Close releases underlying resources.
	Close() error
}

var (
	// ErrNotFound is returned by Load when a key does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store is closed")
	// ErrInvalidKey rejects empty keys and keys that escape the namespace.
	ErrInvalidKey = errors.New("invalid storage key")
)

// ValidateKey rejects keys that are empty, absolute, or contain empty or
// dot segments.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
