// Package config loads env-tagged structs from the process environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. The
// default .env file is read once per process when present; additional files,
// a variable prefix, or an explicit variable map can be supplied per call.
//
//	type Config struct {
//		Store string        `env:"SESSION_STORE" envDefault:"memory"`
//		TTL   time.Duration `env:"SESSION_EXPIRE_IN" envDefault:"24h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Every failure wraps ErrParsingConfig or ErrEnvFile, so callers can match them
// with errors.Is.
package config
