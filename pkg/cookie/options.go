package cookie

import (
	"net/http"
	"time"
)

// Priority is the non-standard Priority cookie attribute understood by
// Chromium based browsers.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type Options struct {
	Path        string
	Domain      string
	MaxAge      int
	Expires     time.Time
	Secure      bool
	HttpOnly    bool
	Partitioned bool
	SameSite    http.SameSite
	Priority    Priority
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets Max-Age in seconds. Zero omits the attribute.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithPartitioned requests CHIPS partitioned storage. Requires Secure.
func WithPartitioned(partitioned bool) Option {
	return func(o *Options) {
		o.Partitioned = partitioned
	}
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

func WithPriority(p Priority) Option {
	return func(o *Options) {
		o.Priority = p
	}
}

// applyOptions returns a copy of base with opts applied; base is not modified.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}
