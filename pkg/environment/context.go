package environment

import (
	"context"
	"fmt"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps a name or its short alias (dev, stage, prod) to an Environment.
func Parse(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development, nil
	case "staging", "stage":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// UnmarshalText lets config loaders decode Environment fields directly.
func (e *Environment) UnmarshalText(text []byte) error {
	env, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = env
	return nil
}

func (e Environment) String() string { return string(e) }

type contextKey struct{}

// WithContext adds environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context. Empty when unset.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

func IsProduction(ctx context.Context) bool  { return FromContext(ctx) == Production }
func IsDevelopment(ctx context.Context) bool { return FromContext(ctx) == Development }
func IsStaging(ctx context.Context) bool     { return FromContext(ctx) == Staging }
