package resources

import (
	"context"
	"errors"
	"time"

	"github.com/labelforge/labelforge/engine/resources/metrics"
)

type instrumentedStore struct {
	next   Store
	driver string
}

// Instrument records latency and outcome of every call on next under the
// given driver name.
func Instrument(next Store, driver string) Store {
	return &instrumentedStore{next: next, driver: driver}
}

func (s *instrumentedStore) record(ctx context.Context, op string, start time.Time, err error) {
	outcome := metrics.Outcome(err)
	if errors.Is(err, ErrNotFound) {
		outcome = metrics.OutcomeSuccess
	}
	metrics.RecordOperation(ctx, op, s.driver, outcome, time.Since(start))
}

func (s *instrumentedStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := s.next.Exists(ctx, key)
	s.record(ctx, "exists", start, err)
	return ok, err
}

func (s *instrumentedStore) Save(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Save(ctx, key, value)
	s.record(ctx, "save", start, err)
	return err
}

func (s *instrumentedStore) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := s.next.Load(ctx, key)
	s.record(ctx, "load", start, err)
	return v, err
}

func (s *instrumentedStore) List(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.next.List(ctx, prefix)
	s.record(ctx, "list", start, err)
	return keys, err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
