package agent

import (
	"context"
	"fmt"

	"github.com/bft-labs/udpsend/pkg/log"
	"github.com/bft-labs/udpsend/pkg/sender"
)

// Run executes the send sequence: bind and connect one UDP socket, then
// transmit each configured payload in order, verifying the byte count the
// socket reports for every send. The first failure aborts the sequence;
// nothing is retried. The socket is closed on every return path.
func Run(ctx context.Context, cfg Config, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	s, err := sender.Open(cfg.BindAddr, cfg.ConnectAddr, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	// Report the address actually bound, which differs from cfg.BindAddr
	// when an ephemeral port was requested.
	logger.Info("socket bound and connected",
		log.String("local", s.LocalAddr().String()),
		log.String("connect", cfg.ConnectAddr),
	)

	for i, p := range cfg.Payloads {
		n, err := s.Send(ctx, []byte(p))
		if err != nil {
			return fmt.Errorf("send %d/%d: %w", i+1, len(cfg.Payloads), err)
		}
		logger.Info("datagram sent",
			log.Int("seq", i+1),
			log.Int("bytes", n),
		)
	}

	return nil
}
