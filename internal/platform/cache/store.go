// Package cache is a best-effort, session-scoped result cache. Entries are
// stored as JSON envelopes carrying their creation time; expiry is decided at
// read time against a caller-supplied max age, so different operation classes
// (volatile odds vs slow-changing comparisons) share one store with
// independent TTLs. Failures never propagate: caching is an optimization,
// not a correctness requirement.
package cache

import (
	"context"
	"encoding/json"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/resilience"
)

// BlobStore is the underlying string-keyed storage surface. Implementations
// may fail; the Store degrades every failure to a cache miss or a dropped
// write.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type envelope struct {
	Data     json.RawMessage `json:"data"`
	CachedAt int64           `json:"cached_at"`
}

type Store struct {
	blobs  BlobStore
	logger *logging.Logger
	now    func() time.Time
	flight resilience.SingleFlight
}

func NewStore(blobs BlobStore, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		blobs:  blobs,
		logger: logger,
		now:    time.Now,
	}
}

// Get decodes the entry under key into out when it exists and is younger
// than maxAge. Expired or unreadable entries are lazily deleted and read as
// absent. maxAge <= 0 disables expiry for the read.
func (s *Store) Get(ctx context.Context, key string, maxAge time.Duration, out any) bool {
	if key == "" || out == nil {
		return false
	}

	blob, ok, err := s.blobs.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var env envelope
	if err := sonic.Unmarshal([]byte(blob), &env); err != nil {
		s.evict(ctx, key)
		return false
	}

	if maxAge > 0 {
		age := s.now().Sub(time.UnixMilli(env.CachedAt))
		if age >= maxAge {
			s.evict(ctx, key)
			return false
		}
	}

	if err := sonic.Unmarshal(env.Data, out); err != nil {
		s.evict(ctx, key)
		return false
	}
	return true
}

// Set overwrites key unconditionally with a fresh timestamp. Serialization
// and storage failures are swallowed.
func (s *Store) Set(ctx context.Context, key string, value any) {
	if key == "" {
		return
	}

	data, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache entry not serializable", "key", key, "error", err)
		return
	}

	blob, err := sonic.Marshal(envelope{Data: data, CachedAt: s.now().UnixMilli()})
	if err != nil {
		return
	}

	if err := s.blobs.Set(ctx, key, string(blob)); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// GetOrLoad returns the cached entry under key when fresh, otherwise runs
// loader, caches its result and decodes it into out. Concurrent calls for the
// same key share one loader execution. Loader errors propagate and leave the
// cache untouched.
func (s *Store) GetOrLoad(ctx context.Context, key string, maxAge time.Duration, out any, loader func(context.Context) (any, error)) error {
	if s.Get(ctx, key, maxAge, out) {
		return nil
	}

	val, err, _ := s.flight.Do(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, value)
		return value, nil
	})
	if err != nil {
		return err
	}

	// Late arrivals share the loader's value; round-trip through the codec so
	// every caller decodes into its own copy.
	data, err := sonic.Marshal(val)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, out)
}

func (s *Store) evict(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "cache evict failed", "key", key, "error", err)
	}
}
