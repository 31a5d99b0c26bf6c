package redis

import "time"

// Config describes how to reach the Redis server backing the session store.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/db
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	CommandTimeout time.Duration `env:"REDIS_COMMAND_TIMEOUT" envDefault:"0s"` // per store call, 0 disables
}
