package http

import (
	"time"
)

type Config struct {
	// Address enables the admin server when non-empty.
	Address string        `envconfig:"ADMIN_ADDRESS" default:""`
	Timeout time.Duration `envconfig:"ADMIN_TIMEOUT" default:"10s"`
}

func (c Config) Enabled() bool {
	return c.Address != ""
}
