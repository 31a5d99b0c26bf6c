package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

const (
	// MinTokenSize is the smallest accepted token size in bytes.
	MinTokenSize = 128

	// FaviconPath is never subject to session resolution.
	FaviconPath = "/favicon.ico"
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "session.id")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session.id"`

	// ExpireIn is the session lifetime, armed once at creation and never
	// extended on access. Whole seconds; at least one second.
	ExpireIn time.Duration `env:"SESSION_EXPIRE_IN" envDefault:"24h"`

	// TokenSize is the number of random bytes per session token.
	TokenSize int `env:"SESSION_TOKEN_SIZE" envDefault:"128"`

	// Partitioned adds the Partitioned attribute to the session cookie
	Partitioned bool `env:"SESSION_PARTITIONED" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName: "session.id",
		ExpireIn:   24 * time.Hour,
		TokenSize:  MinTokenSize,
	}
}

// Validate reports every invalid field, joined.
func (c Config) Validate() error {
	var errs []error

	if !cookie.ValidName(c.CookieName) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCookieName, c.CookieName))
	}
	if c.ExpireIn < time.Second {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTTL, c.ExpireIn))
	}
	if c.TokenSize < MinTokenSize {
		errs = append(errs, fmt.Errorf("%w: got %d bytes, need at least %d", ErrTokenTooShort, c.TokenSize, MinTokenSize))
	}

	return errors.Join(errs...)
}

// ttlSeconds is the lifetime as whole seconds, the granularity of both the
// cookie Max-Age attribute and store expiry.
func (c Config) ttlSeconds() int {
	return int(c.ExpireIn / time.Second)
}

// NewFromConfig creates a Middleware from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) (*Middleware, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
