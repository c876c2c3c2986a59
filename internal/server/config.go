package server

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/coursemap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// Performance settings. A zero CacheTTL disables the response cache.
	CacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		CacheTTL:        constants.CacheTTL,
		ReadTimeout:     constants.ReadTimeout,
		WriteTimeout:    constants.WriteTimeout,
		IdleTimeout:     constants.IdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
