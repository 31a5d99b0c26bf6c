package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("error", func(t *testing.T) {
		err := errors.New("boom")
		a := logger.Error(err)
		assert.Equal(t, "error", a.Key)
		assert.Equal(t, err, a.Value.Any())
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})

	t.Run("session ref truncates", func(t *testing.T) {
		a := logger.SessionRef("abcdefghijklmnop")
		assert.Equal(t, "session_ref", a.Key)
		assert.Equal(t, "abcdefgh", a.Value.String())
		assert.Equal(t, "abc", logger.SessionRef("abc").Value.String())
		assert.True(t, logger.SessionRef("").Equal(slog.Attr{}))
	})

	t.Run("simple keys", func(t *testing.T) {
		assert.Equal(t, "component", logger.Component("session").Key)
		assert.Equal(t, "request_id", logger.RequestID("r1").Key)
		assert.Equal(t, "resumed", logger.Outcome("resumed").Value.String())
		assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
		assert.Equal(t, int64(201), logger.Status(201).Value.Int64())
	})
}
