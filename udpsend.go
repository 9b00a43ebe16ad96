// Package udpsend emits a deterministic sequence of UDP datagrams on
// loopback, as a fixture for packet-capture integration tests.
//
// Example usage:
//
//	cfg := udpsend.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := udpsend.Run(context.Background(), cfg, nil); err != nil {
//	    log.Fatal(err)
//	}
package udpsend

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/udpsend/internal/agent"
	"github.com/bft-labs/udpsend/internal/cliconfig"
	"github.com/bft-labs/udpsend/pkg/log"
)

// Config holds the send sequence configuration.
// Use DefaultConfig() to get a Config with the canonical fixture values.
type Config = agent.Config

// Run binds and connects one UDP socket, transmits each configured payload
// in order, and verifies the byte count reported for every send. It returns
// on the first failure without retrying. A nil logger discards output.
func Run(ctx context.Context, cfg Config, logger log.Logger) error {
	return agent.Run(ctx, cfg, logger)
}

// DefaultConfig returns a Config that reproduces the canonical fixture
// traffic: "test" then "testtest" to 127.0.0.1:9999, self-connected.
func DefaultConfig() Config {
	return agent.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the CLI.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}

// DefaultBindAddr is the canonical fixture endpoint.
const DefaultBindAddr = agent.DefaultBindAddr
