package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/pkg/logger"
)

const (
	table       = "documents"
	memoryPath  = ":memory:"
	busyTimeout = 5000
)

// Store implements resources.Store on a SQLite database.
type Store struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// buildDSN adds the pragmas every connection needs. In-memory databases use
// a shared cache so all pooled connections see the same data.
func buildDSN(path string) string {
	pragmas := fmt.Sprintf(
		"_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(%d)",
		busyTimeout,
	)
	if path == memoryPath || path == "" {
		return "file::memory:?cache=shared&" + pragmas
	}
	return "file:" + path + "?" + pragmas
}

// NewStore opens the database at path, creating parent directories, and
// applies migrations.
func NewStore(ctx context.Context, path string) (*Store, error) {
	inMemory := path == memoryPath || path == ""
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	if inMemory {
		// the shared in-memory database is dropped with its last connection
		db.SetMaxIdleConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.FromContext(ctx).Info("SQLite store ready", "store_driver", "sqlite", "path", path)
	return &Store{db: db, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
}

// DB exposes the handle for tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	query, args, err := s.sb.Select("1").From(table).Where(squirrel.Eq{"key": key}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("sqlite: build exists query: %w", err)
	}
	var one int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: exists %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := resources.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	query, args, err := s.sb.Insert(table).
		Columns("key", "body").
		Values(key, string(value)).
		Suffix("ON CONFLICT(key) DO UPDATE SET body = excluded.body").
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.sb.Select("body").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build load query: %w", err)
	}
	var body string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resources.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: load %s: %w", key, err)
	}
	return []byte(body), nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := s.sb.Select("key").
		From(table).
		Where("substr(key, 1, length(?)) = ?", prefix, prefix).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build list query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %q: %w", prefix, err)
	}
	defer rows.Close()
	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite: scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iter keys: %w", err)
	}
	return keys, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
