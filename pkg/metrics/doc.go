// Package metrics exports Prometheus metrics for session resolution and HTTP
// latency.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg, "sessiond")
//	mw := session.MustNew(session.WithOutcomeHook(m.ObserveOutcome))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", metrics.Handler(reg))
package metrics
