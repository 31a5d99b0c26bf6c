package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// fakeClock is a manually advanced clock shared by stores and middleware.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func strPtr(s string) *string { return &s }

func TestMemoryStoreExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore()

	ok, err := store.Exists(ctx, "session:a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetSingle(ctx, "session:a", "v"))
	ok, err = store.Exists(ctx, "session:a")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Exists(ctx, "")
	assert.ErrorIs(t, err, session.ErrInvalidKey)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	store := session.NewMemoryStore(session.WithStoreClock(clock.Now))

	require.NoError(t, store.SetMultiple(ctx, "session:a", "identity", "null"))
	ttl, err := store.Expire(ctx, "session:a", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, ttl)

	clock.Advance(10 * time.Second)
	ok, err := store.Exists(ctx, "session:a")
	require.NoError(t, err)
	assert.True(t, ok, "live at exactly the deadline")

	clock.Advance(time.Millisecond)
	vals, err := store.GetMultiple(ctx, "session:a", "identity")
	require.NoError(t, err)
	assert.Equal(t, []*string{nil}, vals, "expired record reads as absent")
	assert.Equal(t, 0, store.Len())

	ok, err = store.Exists(ctx, "session:a")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("writing an expired key recreates it without ttl", func(t *testing.T) {
		require.NoError(t, store.SetMultiple(ctx, "session:b", "f", "1"))
		_, err := store.Expire(ctx, "session:b", time.Second)
		require.NoError(t, err)
		clock.Advance(2 * time.Second)

		require.NoError(t, store.SetMultiple(ctx, "session:b", "g", "2"))
		vals, err := store.GetMultiple(ctx, "session:b", "f", "g")
		require.NoError(t, err)
		assert.Equal(t, []*string{nil, strPtr("2")}, vals)

		clock.Advance(time.Hour)
		ok, err := store.Exists(ctx, "session:b")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stale expiry on a missing key does not apply to a later write", func(t *testing.T) {
		_, err := store.Expire(ctx, "session:d", time.Second)
		require.NoError(t, err)
		clock.Advance(5 * time.Second)

		require.NoError(t, store.SetSingle(ctx, "session:d", "v"))
		ok, err := store.Exists(ctx, "session:d")
		require.NoError(t, err)
		assert.True(t, ok)

		v, err := store.GetSingle(ctx, "session:d")
		require.NoError(t, err)
		assert.Equal(t, strPtr("v"), v)

		clock.Advance(time.Hour)
		ok, err = store.Exists(ctx, "session:d")
		require.NoError(t, err)
		assert.True(t, ok, "no ttl carried over")
	})

	t.Run("expire re-arms from call time", func(t *testing.T) {
		require.NoError(t, store.SetSingle(ctx, "session:c", "v"))
		_, _ = store.Expire(ctx, "session:c", 5*time.Second)
		clock.Advance(4 * time.Second)
		_, _ = store.Expire(ctx, "session:c", 5*time.Second)
		clock.Advance(4 * time.Second)

		ok, err := store.Exists(ctx, "session:c")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expire on a missing key creates nothing", func(t *testing.T) {
		ttl, err := store.Expire(ctx, "session:ghost", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, ttl)

		ok, err := store.Exists(ctx, "session:ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMemoryStoreSingle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore()

	v, err := store.GetSingle(ctx, "session:a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, store.SetSingle(ctx, "session:a", "one"))
	require.NoError(t, store.SetSingle(ctx, "session:a", "two"))
	v, err = store.GetSingle(ctx, "session:a")
	require.NoError(t, err)
	assert.Equal(t, strPtr("two"), v)

	vals, err := store.GetMultiple(ctx, "session:a", session.DefaultField)
	require.NoError(t, err)
	assert.Equal(t, []*string{strPtr("two")}, vals)

	_, err = store.GetSingle(ctx, "")
	assert.ErrorIs(t, err, session.ErrInvalidKey)
	assert.ErrorIs(t, store.SetSingle(ctx, "", "x"), session.ErrInvalidKey)
}

func TestMemoryStoreMultiple(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore()

	t.Run("missing record yields nils and creates nothing", func(t *testing.T) {
		vals, err := store.GetMultiple(ctx, "session:none", "identity", "created")
		require.NoError(t, err)
		assert.Equal(t, []*string{nil, nil}, vals)

		ok, err := store.Exists(ctx, "session:none")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("order and missing fields", func(t *testing.T) {
		require.NoError(t, store.SetMultiple(ctx, "session:a", "identity", `{"n":1}`, "created", "17"))
		vals, err := store.GetMultiple(ctx, "session:a", "created", "missing", "identity")
		require.NoError(t, err)
		assert.Equal(t, []*string{strPtr("17"), nil, strPtr(`{"n":1}`)}, vals)
	})

	t.Run("upsert", func(t *testing.T) {
		require.NoError(t, store.SetMultiple(ctx, "session:a", "identity", `"x"`))
		vals, err := store.GetMultiple(ctx, "session:a", "identity", "created")
		require.NoError(t, err)
		assert.Equal(t, []*string{strPtr(`"x"`), strPtr("17")}, vals)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		vals, err := store.GetMultiple(ctx, "session:a", "created")
		require.NoError(t, err)
		*vals[0] = "mutated"

		vals, err = store.GetMultiple(ctx, "session:a", "created")
		require.NoError(t, err)
		assert.Equal(t, "17", *vals[0])
	})

	t.Run("odd count writes nothing", func(t *testing.T) {
		err := store.SetMultiple(ctx, "session:b", "identity", "null", "created")
		assert.ErrorIs(t, err, session.ErrInvalidCount)
		ok, _ := store.Exists(ctx, "session:b")
		assert.False(t, ok)
	})

	t.Run("empty field writes nothing", func(t *testing.T) {
		err := store.SetMultiple(ctx, "session:b", "identity", "null", "", "v")
		assert.ErrorIs(t, err, session.ErrFieldRequired)
		ok, _ := store.Exists(ctx, "session:b")
		assert.False(t, ok)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := store.GetMultiple(ctx, "", "f")
		assert.ErrorIs(t, err, session.ErrInvalidKey)
		assert.ErrorIs(t, store.SetMultiple(ctx, "", "f", "v"), session.ErrInvalidKey)
		_, err = store.Expire(ctx, "", time.Second)
		assert.ErrorIs(t, err, session.ErrInvalidKey)
	})
}

func TestMemoryStoreSweep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	store := session.NewMemoryStore(
		session.WithStoreClock(clock.Now),
		session.WithSweepInterval(5*time.Millisecond),
	)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.SetSingle(ctx, "session:a", "v"))
	require.NoError(t, store.SetSingle(ctx, "session:b", "v"))
	_, _ = store.Expire(ctx, "session:a", time.Second)
	clock.Advance(2 * time.Second)

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	store := session.NewMemoryStore(session.WithStoreClock(clock.Now))

	for _, key := range []string{"session:a", "session:b", "session:c"} {
		require.NoError(t, store.SetSingle(ctx, key, "v"))
	}
	_, _ = store.Expire(ctx, "session:a", time.Second)
	_, _ = store.Expire(ctx, "session:b", time.Hour)
	clock.Advance(time.Minute)

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := session.NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := session.Key(string(rune('a' + i%5)))
			_ = store.SetMultiple(ctx, key, "identity", "null")
			_, _ = store.Expire(ctx, key, time.Minute)
			_, _ = store.Exists(ctx, key)
			_, _ = store.GetMultiple(ctx, key, "identity")
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, store.Len())
}
