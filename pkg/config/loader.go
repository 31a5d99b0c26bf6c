package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option tunes a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix  string
	files   []string
	environ map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "APP_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles loads the named dotenv files before parsing. Variables already
// present in the process environment win. Missing files are reported.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnviron parses from vars instead of the process environment.
// Dotenv files are then skipped.
func WithEnviron(vars map[string]string) Option {
	return func(o *loadOptions) { o.environ = vars }
}

// Load populates v from environment variables according to its env tags.
//
// The default .env in the working directory is read once per process if it
// exists.
//
//	var cfg session.Config
//	if err := config.Load(&cfg, config.WithPrefix("APP_")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	parseOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		parseOpts.Environment = o.environ
	} else {
		dotenvOnce.Do(func() {
			// .env is optional
			_ = godotenv.Load()
		})
		if len(o.files) > 0 {
			if err := godotenv.Load(o.files...); err != nil {
				return errors.Join(ErrEnvFile, err)
			}
		}
	}

	if err := env.ParseWithOptions(v, parseOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
