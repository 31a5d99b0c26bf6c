package session

import "errors"

var (
	// ErrInvalidConfig wraps every configuration failure reported by New.
	ErrInvalidConfig = errors.New("session.invalid_config")

	// ErrInvalidCookieName indicates an empty or malformed cookie name
	ErrInvalidCookieName = errors.New("session.invalid_cookie_name")

	// ErrInvalidTTL indicates a session lifetime shorter than one second
	ErrInvalidTTL = errors.New("session.invalid_ttl")

	// ErrTokenTooShort indicates a token size below MinTokenSize
	ErrTokenTooShort = errors.New("session.token_too_short")

	// ErrNoStore indicates no store is configured
	ErrNoStore = errors.New("session.no_store")

	// ErrNoEncoder indicates no token encoder is configured
	ErrNoEncoder = errors.New("session.no_encoder")

	// ErrNoGenerator indicates no token generator is configured
	ErrNoGenerator = errors.New("session.no_generator")

	// ErrInvalidKey indicates an empty store key was passed to a Store method
	ErrInvalidKey = errors.New("session.invalid_key")

	// ErrInvalidCount indicates a field/value list with an odd number of elements
	ErrInvalidCount = errors.New("session.invalid_count")

	// ErrFieldRequired indicates an empty field name in a field/value list
	ErrFieldRequired = errors.New("session.key_required")

	// ErrTokenGeneration indicates the generator returned fewer bytes than requested
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrSessionNotFound indicates no live session exists for the given id
	ErrSessionNotFound = errors.New("session.not_found")
)
