package sqlite

import (
	"time"
)

type Config struct {
	DatabasePath    string        `envconfig:"AUDIT_DATABASE_PATH" default:"audit.db"`
	MaxOpenConns    int           `envconfig:"AUDIT_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"AUDIT_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"AUDIT_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"AUDIT_CONN_MAX_IDLE_TIME" default:"1m"`
	BusyTimeout     time.Duration `envconfig:"AUDIT_BUSY_TIMEOUT" default:"30s"` // Time to wait for lock acquisition
	EnableWAL       bool          `envconfig:"AUDIT_ENABLE_WAL" default:"true"`  // Allows concurrent reads while writing
}
