package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Option configures the request id middleware.
type Option func(*options)

type options struct {
	header   string
	generate func() string
	trust    bool
}

// WithHeader overrides the header the id is read from and echoed to.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithGenerator replaces the uuid v4 generator.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// WithoutTrust ignores ids supplied by clients.
func WithoutTrust() Option {
	return func(o *options) { o.trust = false }
}

// New returns a middleware that attaches a request id to the context and the
// response headers. Incoming ids are reused when they are short and made of
// URL-safe characters.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := &options{header: Header, generate: uuid.NewString, trust: true}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if o.trust {
				id = r.Header.Get(o.header)
			}
			if !valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
