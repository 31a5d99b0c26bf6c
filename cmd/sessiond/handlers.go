package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/metrics"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const maxIdentityBody = 64 << 10

type routerDeps struct {
	env      environment.Environment
	log      *slog.Logger
	sessions *session.Middleware
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	checks   []httpserver.Check
	trusted  []string // proxy headers carrying the client IP
}

// newRouter mounts probes and metrics outside the session group so they never
// create sessions.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(d.trusted...),
		environment.Middleware(d.env),
		d.metrics.Middleware,
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(d.log, d.checks...))
	r.Handle("/metrics", metrics.Handler(d.gatherer))

	r.Group(func(r chi.Router) {
		r.Use(d.sessions.Handler)
		r.Get("/", showSession())
		r.Post("/identity", setIdentity(d.sessions, d.log))
	})

	return r
}

// showSession echoes the resolved session as JSON.
func showSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

type identityRequest struct {
	Identity json.RawMessage `json:"identity"`
}

// setIdentity assigns the identity of the caller's session.
func setIdentity(sessions *session.Middleware, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, ok := session.IDFromContext(ctx)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		var req identityRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIdentityBody)).Decode(&req); err != nil || len(req.Identity) == 0 {
			http.Error(w, "body must be {\"identity\": <json>}", http.StatusBadRequest)
			return
		}

		if err := sessions.SetIdentity(ctx, id, req.Identity); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, session.ErrSessionNotFound) {
				status = http.StatusGone
			} else {
				log.ErrorContext(ctx, "Failed to set identity", logger.Component("api"), logger.SessionRef(id), logger.Error(err))
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
