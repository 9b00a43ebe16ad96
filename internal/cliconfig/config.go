package cliconfig

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBindAddr is the canonical fixture endpoint.
const DefaultBindAddr = "127.0.0.1:9999"

// Config holds CLI configuration for udpsend.
type Config struct {
	BindAddr    string
	ConnectAddr string
	Payloads    []string
	Timeout     time.Duration
}

// DefaultConfig returns a Config with default values. Running with the
// defaults reproduces the canonical fixture traffic exactly.
func DefaultConfig() Config {
	return Config{
		BindAddr: DefaultBindAddr,
		Payloads: []string{"test", "testtest"},
		Timeout:  5 * time.Second,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
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
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStringSlice sets a string slice if not empty and flag not changed.
func (s *configSetter) setStringSlice(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setStringSliceFromString splits a comma-separated string and sets the
// destination. Used for environment variables that come as strings.
func (s *configSetter) setStringSliceFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = strings.Split(value, ",")
}
