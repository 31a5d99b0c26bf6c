package session

import (
	"encoding/json"
	"strconv"
	"time"
)

// Session is the request-scoped view of a stored session record.
type Session struct {
	// ID is the encoded token carried by the session cookie.
	ID string `json:"id"`

	// Identity is the decoded identity field; nil until something assigns one
	// or when the stored payload is not valid JSON.
	Identity any `json:"identity"`

	// Created is the creation time in milliseconds since the epoch, exactly
	// as stored.
	Created string `json:"created"`
}

// CreatedAt parses Created.
func (s *Session) CreatedAt() (time.Time, error) {
	ms, err := strconv.ParseInt(s.Created, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// DecodeIdentity re-decodes Identity into v.
func (s *Session) DecodeIdentity(v any) error {
	raw, err := json.Marshal(s.Identity)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func decodeIdentity(raw *string) (any, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var identity any
	if err := json.Unmarshal([]byte(*raw), &identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
