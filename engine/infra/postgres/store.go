package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/pkg/logger"
)

const (
	table              = "documents"
	defaultPingTimeout = 3 * time.Second
)

// DBInterface is the subset of pgxpool.Pool used by Store.
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements resources.Store on PostgreSQL.
type Store struct {
	db    DBInterface
	close func()
	sb    squirrel.StatementBuilderType
}

// NewStore wraps an existing connection. Close is a no-op for stores built
// this way.
func NewStore(db DBInterface) *Store {
	return &Store{
		db:    db,
		close: func() {},
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Connect applies migrations, opens a pool for dsn and verifies it.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: dsn is required")
	}
	if err := ApplyMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	logger.FromContext(ctx).Info("Postgres store ready", "store_driver", "postgres")
	s := NewStore(pool)
	s.close = pool.Close
	return s, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	query, args, err := s.sb.Select("1").From(table).Where(squirrel.Eq{"key": key}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("building exists query: %w", err)
	}
	var one int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", key, err)
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
		Suffix("ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert query: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.sb.Select("body::text").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building load query: %w", err)
	}
	var body string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resources.ErrNotFound
		}
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return []byte(body), nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := s.sb.Select("key").
		From(table).
		Where("left(key, length(?::text)) = ?", prefix, prefix).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", prefix, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Close releases the pool when the store owns it.
func (s *Store) Close() error {
	s.close()
	return nil
}
