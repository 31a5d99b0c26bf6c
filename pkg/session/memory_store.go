package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using process-local maps.
// Data does not survive a restart. Expiry is evaluated lazily on every read;
// an optional sweep loop evicts expired records in the background.
type MemoryStore struct {
	mu          sync.RWMutex
	records     map[string]map[string]string
	expirations map[string]time.Time
	now         func() time.Time
	ticker      *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithSweepInterval starts a background loop evicting expired records.
// Zero or negative disables it.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(m *MemoryStore) {
		if interval > 0 {
			m.ticker = time.NewTicker(interval)
		}
	}
}

// WithStoreClock replaces the wall clock used for expiry checks.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		records:     make(map[string]map[string]string),
		expirations: make(map[string]time.Time),
		now:         time.Now,
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	if store.ticker != nil {
		go store.sweepLoop()
	}

	return store
}

// Exists reports whether key holds a live record, deleting it if expired.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[key]; !ok {
		return false, nil
	}

	if m.expiredLocked(key) {
		m.evictLocked(key)
		return false, nil
	}

	return true, nil
}

// Expire records an expiry of now+ttl for key. The expiry is recorded even
// when no record exists yet and applies to one written afterwards.
func (m *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) (time.Duration, error) {
	if key == "" {
		return 0, ErrInvalidKey
	}

	m.mu.Lock()
	m.expirations[key] = m.now().Add(ttl)
	m.mu.Unlock()

	return ttl, nil
}

// GetSingle returns the DefaultField value of key.
func (m *MemoryStore) GetSingle(ctx context.Context, key string) (*string, error) {
	values, err := m.GetMultiple(ctx, key, DefaultField)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// SetSingle writes the DefaultField value of key.
func (m *MemoryStore) SetSingle(ctx context.Context, key, value string) error {
	return m.SetMultiple(ctx, key, DefaultField, value)
}

// GetMultiple returns the values of fields in order, nil where absent.
// Reading never creates a record.
func (m *MemoryStore) GetMultiple(ctx context.Context, key string, fields ...string) ([]*string, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	values := make([]*string, len(fields))

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[key]
	if !ok || m.expiredLocked(key) {
		return values, nil
	}

	for i, field := range fields {
		if v, ok := record[field]; ok {
			values[i] = &v
		}
	}

	return values, nil
}

// SetMultiple upserts field/value pairs into key, creating the record if
// needed. A record that has already expired is replaced by a fresh one
// without expiry, the same way a datastore would recreate an evicted key.
func (m *MemoryStore) SetMultiple(ctx context.Context, key string, pairs ...string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := ValidatePairs(pairs); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.expiredLocked(key) {
		m.evictLocked(key)
	}

	record, ok := m.records[key]
	if !ok {
		record = make(map[string]string, len(pairs)/2)
		m.records[key] = record
	}

	for i := 0; i < len(pairs); i += 2 {
		record[pairs[i]] = pairs[i+1]
	}

	return nil
}

// DeleteExpired removes all expired records
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.expirations {
		if m.expiredLocked(key) {
			m.evictLocked(key)
		}
	}

	return nil
}

// Len returns the number of live records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for key := range m.records {
		if !m.expiredLocked(key) {
			n++
		}
	}
	return n
}

// Close stops the sweep goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) sweepLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}

// expiredLocked must be called with mu held.
func (m *MemoryStore) expiredLocked(key string) bool {
	expires, ok := m.expirations[key]
	return ok && m.now().After(expires)
}

// evictLocked must be called with mu held for writing.
func (m *MemoryStore) evictLocked(key string) {
	delete(m.records, key)
	delete(m.expirations, key)
}
