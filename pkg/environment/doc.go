// Package environment names the deployment environment and carries it through
// request contexts.
//
// Parse accepts full names and short aliases; Environment also implements
// encoding.TextUnmarshaler so it can be used directly in env-tagged config
// structs. Middleware stores the value in every request context, and
// LoggerExtractor exposes it to the logger package.
package environment
