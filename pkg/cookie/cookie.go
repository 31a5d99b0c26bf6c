package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const headerSetCookie = "Set-Cookie"

// Manager writes and reads cookies sharing a set of default attributes.
// It is immutable after construction and safe for concurrent use.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are Path=/ and HttpOnly, overridable by opts.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Set appends a Set-Cookie header for name=value.
// Returns ErrInvalidCookie when the name, value or attributes are not valid.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	header, err := Serialize(&http.Cookie{
		Name:        name,
		Value:       value,
		Path:        options.Path,
		Domain:      options.Domain,
		MaxAge:      options.MaxAge,
		Expires:     options.Expires,
		Secure:      options.Secure,
		HttpOnly:    options.HttpOnly,
		Partitioned: options.Partitioned,
		SameSite:    options.SameSite,
	}, options.Priority)
	if err != nil {
		return err
	}

	w.Header().Add(headerSetCookie, header)
	return nil
}

// Get returns the value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the named cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	_ = m.Set(w, name, "", WithMaxAge(-1), WithExpires(time.Unix(0, 0)))
}

// Serialize renders c as a Set-Cookie header value and appends the Priority
// attribute, which net/http does not model.
func Serialize(c *http.Cookie, p Priority) (string, error) {
	if err := c.Valid(); err != nil {
		return "", errors.Join(ErrInvalidCookie, err)
	}

	s := c.String()
	if p != "" {
		s = fmt.Sprintf("%s; Priority=%s", s, p)
	}
	return s, nil
}

// ValidName reports whether name can be used as a cookie name.
func ValidName(name string) bool {
	return name != "" && (&http.Cookie{Name: name}).Valid() == nil
}
