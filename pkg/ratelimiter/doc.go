// Package ratelimiter implements a token bucket limiter with pluggable state
// storage.
//
// The session package uses it to cap how many anonymous sessions a single
// client may create:
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	mw := session.MustNew(session.WithEstablishLimiter(bucket, clientip.KeyFunc))
//
// A bucket starts full. Every interval adds RefillRate tokens up to Capacity.
// A take that would go below zero is denied and leaves the bucket empty.
package ratelimiter
