package clientip

import "net/http"

// Middleware resolves the client IP once per request using headers (none
// means RemoteAddr only) and stores it in the request context.
func Middleware(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), FromRequest(r, headers...))))
		})
	}
}

// KeyFunc reads the IP stored by Middleware, falling back to RemoteAddr.
// It fits session.WithEstablishLimiter.
func KeyFunc(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return FromRequest(r)
}
