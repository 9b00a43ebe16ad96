package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (UDPSEND_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("bind", os.Getenv("UDPSEND_BIND_ADDR"), &cfg.BindAddr)
	s.setString("connect", os.Getenv("UDPSEND_CONNECT_ADDR"), &cfg.ConnectAddr)
	s.setStringSliceFromString("payload", os.Getenv("UDPSEND_PAYLOADS"), &cfg.Payloads)

	if err := s.setDuration("timeout", os.Getenv("UDPSEND_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	return nil
}
