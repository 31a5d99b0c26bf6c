// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown, and provides liveness and readiness probe handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled or the process receives SIGINT or SIGTERM,
// then drains in-flight requests for at most the shutdown timeout.
package httpserver
