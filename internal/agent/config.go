package agent

import (
	"fmt"
	"time"
)

// DefaultBindAddr is the canonical fixture endpoint. It serves as both
// the local bind address and, when no destination is configured, the
// connect target.
const DefaultBindAddr = "127.0.0.1:9999"

// maxDatagramSize is the largest payload that fits a single IPv4 UDP
// datagram (65535 minus the IP and UDP headers).
const maxDatagramSize = 65507

// Config holds the send sequence configuration.
type Config struct {
	// BindAddr is the local address the socket binds to.
	BindAddr string

	// ConnectAddr is the destination the socket connects to. When empty
	// it defaults to BindAddr, so the socket sends to itself.
	ConnectAddr string

	// Payloads are transmitted in order, one datagram each.
	Payloads []string

	// Timeout bounds the whole send sequence. Zero disables it.
	Timeout time.Duration
}

// DefaultConfig returns a Config that reproduces the canonical fixture
// traffic: "test" then "testtest" to 127.0.0.1:9999, self-connected.
func DefaultConfig() Config {
	return Config{
		BindAddr: DefaultBindAddr,
		Payloads: []string{"test", "testtest"},
		Timeout:  5 * time.Second,
	}
}

// Validate checks the configuration and sets derived defaults.
func (c *Config) Validate() error {
	if c.BindAddr == "" {
		return fmt.Errorf("bind address is required")
	}
	if c.ConnectAddr == "" {
		c.ConnectAddr = c.BindAddr
	}
	if len(c.Payloads) == 0 {
		return fmt.Errorf("at least one payload is required")
	}
	for i, p := range c.Payloads {
		if len(p) == 0 {
			return fmt.Errorf("payload %d is empty", i)
		}
		if len(p) > maxDatagramSize {
			return fmt.Errorf("payload %d does not fit a single UDP datagram (%d > %d bytes)", i, len(p), maxDatagramSize)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
