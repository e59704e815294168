package redis

import "time"

// Config holds Redis connection and credentials cache settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	CredentialsTTL time.Duration `env:"REDIS_CREDENTIALS_TTL" envDefault:"5m"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"objstore:credentials:"`
}
