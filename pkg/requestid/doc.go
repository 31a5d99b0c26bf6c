// Package requestid assigns every HTTP request an identifier, echoes it in the
// X-Request-ID response header and exposes it to handlers and loggers through
// the request context.
package requestid
