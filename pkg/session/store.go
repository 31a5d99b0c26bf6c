package session

import (
	"context"
	"time"
)

const (
	// KeyPrefix namespaces every session record in the store.
	KeyPrefix = "session:"

	// FieldIdentity holds the JSON-encoded identity of the session owner.
	FieldIdentity = "identity"

	// FieldCreated holds the creation time as a base-10 millisecond timestamp.
	FieldCreated = "created"

	// DefaultField is the implicit field used by GetSingle and SetSingle.
	DefaultField = "default"
)

// Key derives the store key of the session identified by id.
func Key(id string) string {
	return KeyPrefix + id
}

// Store is a field-addressable key/value store with per-key expiry.
// Implementations must be safe for concurrent use. No method is atomic with
// respect to another: an Exists followed by a SetMultiple may interleave with
// other callers.
type Store interface {
	// Exists reports whether key holds a live record.
	// Returns ErrInvalidKey for an empty key.
	Exists(ctx context.Context, key string) (bool, error)

	// Expire arms the key's TTL counted from now and returns ttl.
	Expire(ctx context.Context, key string, ttl time.Duration) (time.Duration, error)

	// GetSingle returns the DefaultField value, or nil if absent.
	GetSingle(ctx context.Context, key string) (*string, error)

	// SetSingle writes the DefaultField value, creating the record if needed.
	SetSingle(ctx context.Context, key, value string) error

	// GetMultiple returns one entry per field in the same order; missing
	// fields and missing records yield nil entries.
	GetMultiple(ctx context.Context, key string, fields ...string) ([]*string, error)

	// SetMultiple upserts alternating field, value pairs.
	// Returns ErrInvalidCount for an odd number of elements and
	// ErrFieldRequired for an empty field name; nothing is written then.
	SetMultiple(ctx context.Context, key string, pairs ...string) error
}

// ValidatePairs checks a flat field/value list the way SetMultiple requires.
func ValidatePairs(pairs []string) error {
	if len(pairs)%2 != 0 {
		return ErrInvalidCount
	}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i] == "" {
			return ErrFieldRequired
		}
	}
	return nil
}
