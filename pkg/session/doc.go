// Package session issues and resolves cookie-bound sessions as net/http
// middleware.
//
// On every request the Middleware checks whether the session cookie names a
// live record in the Store. If so, the session is attached to the request
// context and the request proceeds. If not, a GET request gets a fresh
// session: random token bytes from a TokenGenerator, encoded into a session id
// by a TokenEncoder, stored under "session:<id>" with an identity of null and
// a millisecond creation timestamp, and expired by the Store after the
// configured lifetime. The response sets the cookie and redirects (303) to
// the same URL so the client repeats the request carrying it. Any other
// method without a live session is answered with 405 and nothing is stored.
// Requests for /favicon.ico never touch the store.
//
// An optional Limiter (WithEstablishLimiter) is consulted before a new session
// is stored; a refusal is answered with 429 and Retry-After.
//
// # Architecture
//
//	┌────────┐  cookie  ┌─────────────────────────────┐
//	│ Client │ ───────► │ Middleware                  │
//	└────────┘          │  inject → resolve           │
//	     ▲              └─────────────────────────────┘
//	     │ 303 + cookie    │ Generate   │ Encode   │ Exists / GetMultiple
//	     │                 ▼            ▼          ▼ SetMultiple / Expire
//	     │         TokenGenerator  TokenEncoder  Store (memory, redis)
//
// All three collaborators are shared by every in-flight request and must be
// safe for concurrent use.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/session"
//
//	mw := session.MustNew(
//	    session.WithCookieName("sid"),
//	    session.WithExpireIn(2*time.Hour),
//	)
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    fmt.Fprintf(w, "session %s created %s", sess.ID, sess.Created)
//	})
//
//	http.ListenAndServe(":8080", mw.Handler(mux))
//
// A Redis-backed store lives in the redis package:
//
//	client, _ := redis.Connect(ctx, redisCfg)
//	mw := session.MustNew(session.WithStore(redis.NewStore(client)))
//
// # Configuration
//
// Config carries env tags for github.com/caarlos0/env and is turned into a
// Middleware by NewFromConfig. Validation runs once inside New and rejects an
// invalid cookie name, a lifetime under one second, a token size under
// MinTokenSize and missing collaborators. MustNew turns that into a panic so a
// misconfigured process never serves traffic.
//
// # Concurrency
//
// Session creation is not guarded by compare-and-set: two requests racing
// with the same stale cookie both create sessions and the client keeps
// whichever cookie arrives last. Expiry is armed only at creation and never
// refreshed on access.
//
// # Error Handling
//
// Store errors abort the request with 500 and no cookie. A stored identity
// that is not valid JSON is logged and resolved as nil. Store implementations
// return ErrInvalidKey, ErrInvalidCount and ErrFieldRequired for malformed
// calls.
package session
