package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config defines a token bucket.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"RATELIMIT_CAPACITY" envDefault:"20"`
	// RefillRate is the number of tokens added per RefillInterval.
	RefillRate     int           `env:"RATELIMIT_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

// Validate rejects non-positive fields.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the bucket state after a take.
type Result struct {
	Limit     int
	Remaining int // negative when the take was denied
	ResetAt   time.Time
}

func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long until the next refill, measured from now.
// Zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Bucket is a token bucket limiter keyed by an arbitrary string.
type Bucket struct {
	store  Store
	config Config
	now    func() time.Time
}

// BucketOption configures a Bucket.
type BucketOption func(*Bucket)

// WithBucketClock replaces time.Now when computing retry delays.
func WithBucketClock(now func() time.Time) BucketOption {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBucket validates config and returns a limiter over store.
func NewBucket(store Store, config Config, opts ...BucketOption) (*Bucket, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	b := &Bucket{store: store, config: config, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Allow takes one token.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens. Denied takes still drain the bucket.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.take(ctx, key, n)
}

// Status reports the bucket without taking tokens.
func (b *Bucket) Status(ctx context.Context, key string) (Result, error) {
	return b.take(ctx, key, 0)
}

// Permit implements session.Limiter.
func (b *Bucket) Permit(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := b.Allow(ctx, key)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed(), res.RetryAfter(b.now()), nil
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) take(ctx context.Context, key string, n int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: b.config.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}
