package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/wojciech-zurek/the-secret-project/internal/http"
	"github.com/wojciech-zurek/the-secret-project/internal/sqlite"
)

const (
	StrategyBasic   = "basic"
	StrategyWrapped = "wrapped"
)

const (
	AuditOff    = "off"
	AuditMemory = "memory"
	AuditSQLite = "sqlite"
)

type Config struct {
	LogLevel int `envconfig:"LOG_LEVEL" default:"0"`
	// Strategy picks the processor implementation: "basic" shares one set of
	// repositories, "wrapped" gives every client its own bundle.
	Strategy string `envconfig:"STRATEGY" default:"basic"`
	Workers  int    `envconfig:"WORKERS" default:"1"`
	// Audit selects where rejected records go: "off", "memory" (logged at the
	// end of the run) or "sqlite" (persisted to the audit database).
	Audit    string `envconfig:"AUDIT" default:"off"`
	Database sqlite.Config
	Admin    http.Config
}

func Load() (Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}

	if err = config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	switch c.Strategy {
	case StrategyBasic, StrategyWrapped:
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}

	switch c.Audit {
	case AuditOff, AuditMemory, AuditSQLite:
	default:
		return fmt.Errorf("unknown audit mode %q", c.Audit)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	// Sharding hands each worker a private processor; only the wrapped
	// strategy keeps its state per client, so only it can run sharded.
	if c.Workers > 1 && c.Strategy != StrategyWrapped {
		return fmt.Errorf("WORKERS > 1 requires the %q strategy", StrategyWrapped)
	}

	return nil
}
