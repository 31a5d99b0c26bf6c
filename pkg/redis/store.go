package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// Store implements session.Store on Redis hashes. Each record is one hash;
// fields map to hash fields and the record TTL is the key's expiry.
type Store struct {
	db      redis.UniversalClient
	timeout time.Duration
}

var _ session.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTimeout bounds every store call. Zero disables the bound.
func WithTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// NewStore wraps an existing client. The caller owns the client's lifecycle.
func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{db: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig applies cfg.CommandTimeout to a Store around client.
func NewStoreFromConfig(client redis.UniversalClient, cfg Config, opts ...StoreOption) *Store {
	return NewStore(client, append([]StoreOption{WithTimeout(cfg.CommandTimeout)}, opts...)...)
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, session.ErrInvalidKey
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	n, err := s.db.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Join(ErrCommandFailed, err)
	}
	return n > 0, nil
}

// Expire sets the key's expiry. Redis ignores EXPIRE on a missing key; the
// requested ttl is returned either way.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (time.Duration, error) {
	if key == "" {
		return 0, session.ErrInvalidKey
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.db.Expire(ctx, key, ttl).Err(); err != nil {
		return 0, errors.Join(ErrCommandFailed, err)
	}
	return ttl, nil
}

// GetSingle returns the session.DefaultField value of key, nil when absent.
func (s *Store) GetSingle(ctx context.Context, key string) (*string, error) {
	if key == "" {
		return nil, session.ErrInvalidKey
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	val, err := s.db.HGet(ctx, key, session.DefaultField).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return &val, nil
}

// SetSingle writes the session.DefaultField value of key.
func (s *Store) SetSingle(ctx context.Context, key, value string) error {
	if key == "" {
		return session.ErrInvalidKey
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.db.HSet(ctx, key, session.DefaultField, value).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// GetMultiple returns the values of fields in order, nil where absent.
func (s *Store) GetMultiple(ctx context.Context, key string, fields ...string) ([]*string, error) {
	if key == "" {
		return nil, session.ErrInvalidKey
	}
	if len(fields) == 0 {
		return []*string{}, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	vals, err := s.db.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}

	out := make([]*string, len(vals))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[i] = &str
		}
	}
	return out, nil
}

// SetMultiple upserts field/value pairs into the hash at key.
func (s *Store) SetMultiple(ctx context.Context, key string, pairs ...string) error {
	if key == "" {
		return session.ErrInvalidKey
	}
	if err := session.ValidatePairs(pairs); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	args := make([]any, len(pairs))
	for i, p := range pairs {
		args[i] = p
	}
	if err := s.db.HSet(ctx, key, args...).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
