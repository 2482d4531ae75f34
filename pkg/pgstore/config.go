package pgstore

import "time"

// Config controls the connection pool and session issuance. Fields are
// populated from the environment or filled in by the gate from its
// userspace section.
type Config struct {
	DSN               string        `env:"AUTHGATE_PG_DSN"`
	MaxOpenConns      int32         `env:"AUTHGATE_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"AUTHGATE_PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"AUTHGATE_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	RetryAttempts     int           `env:"AUTHGATE_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"AUTHGATE_PG_RETRY_INTERVAL" envDefault:"5s"`

	// SessionTTL is the lifetime of issued session keys.
	SessionTTL time.Duration `env:"AUTHGATE_PG_SESSION_TTL" envDefault:"24h"`
}
