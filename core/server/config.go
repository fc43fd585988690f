package server

import (
	"fmt"
	"strconv"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the JSON API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// SessionMinutes is how long an idle editor session is kept.
	SessionMinutes int `mapstructure:"session_minutes" default:"60"`
}

// Validate checks that the configured port is usable.
func (c Config) Validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Port)
	}
	if c.SessionMinutes <= 0 {
		return fmt.Errorf("session_minutes must be positive, got %d", c.SessionMinutes)
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}
