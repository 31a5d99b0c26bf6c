package logger

import (
	"log/slog"
	"time"
)

// sessionRefLen is how much of a session id ends up in logs. The full id is a
// bearer credential.
const sessionRefLen = 8

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SessionRef records a short prefix of a session id under "session_ref".
func SessionRef(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	if len(id) > sessionRefLen {
		id = id[:sessionRefLen]
	}
	return slog.String("session_ref", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Outcome records a session resolution outcome under the key "outcome".
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Status records an HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
