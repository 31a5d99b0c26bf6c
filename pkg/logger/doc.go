// Package logger builds *slog.Logger instances with functional options,
// per-environment defaults and context-aware attribute injection.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// result in a ContextHandler that runs every registered ContextExtractor when a
// record is handled. Extractors are how request ids and the deployment
// environment reach log lines without threading them through call sites.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "sessiond"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "session established", logger.SessionRef(id))
//
// # Attributes
//
// The helpers in attr.go keep key names consistent across packages. SessionRef
// only ever records a short prefix of a session id.
package logger
