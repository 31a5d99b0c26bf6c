package environment_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]environment.Environment{
		"development": environment.Development,
		"dev":         environment.Development,
		"STAGE":       environment.Staging,
		" prod ":      environment.Production,
		"production":  environment.Production,
	}
	for in, want := range cases {
		got, err := environment.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := environment.Parse("qa")
	assert.ErrorIs(t, err, environment.ErrUnknown)
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var env environment.Environment
	require.NoError(t, env.UnmarshalText([]byte("stage")))
	assert.Equal(t, environment.Staging, env)
	assert.Error(t, env.UnmarshalText([]byte("nope")))
	assert.Equal(t, environment.Staging, env)
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, environment.FromContext(context.Background()))
	assert.Empty(t, environment.FromContext(nil)) //nolint:staticcheck // nil context is handled

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.True(t, environment.IsProduction(ctx))
	assert.False(t, environment.IsDevelopment(ctx))
	assert.False(t, environment.IsStaging(ctx))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := environment.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(environment.WithContext(context.Background(), environment.Staging))
	require.True(t, ok)
	assert.True(t, attr.Equal(slog.String("env", "staging")))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got environment.Environment
	h := environment.Middleware(environment.Development)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Development, got)
}
