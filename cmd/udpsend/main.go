package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	udpsend "github.com/bft-labs/udpsend"
	"github.com/bft-labs/udpsend/internal/cliconfig"
	pkglog "github.com/bft-labs/udpsend/pkg/log"
)

const helpDescription = `
Send a fixed sequence of UDP datagrams on loopback for packet-capture tests.

udpsend binds a UDP socket to a local address, connects it back to that same
address (unless told otherwise), and transmits each payload as one datagram,
verifying the byte count the socket reports. With no arguments it emits the
canonical fixture traffic: "test" (4 bytes) then "testtest" (8 bytes) to
127.0.0.1:9999. Any bind, connect or short-write failure exits non-zero
without emitting further datagrams.
`

var exampleUsage = strings.TrimSpace(`
  udpsend
  udpsend --bind 127.0.0.1:9999
  udpsend --connect 127.0.0.1:5353 --payload ping --payload pong
  udpsend --config $HOME/.udpsend/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "udpsend",
		Short:   "Send a fixed sequence of UDP datagrams on loopback for packet-capture tests",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.udpsend/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (UDPSEND_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			// Convert cliconfig.Config to udpsend.Config
			libCfg := udpsend.Config{
				BindAddr:    cfg.BindAddr,
				ConnectAddr: cfg.ConnectAddr,
				Payloads:    cfg.Payloads,
				Timeout:     cfg.Timeout,
			}

			// Setup signal handling so an interrupt aborts the sequence
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-sigCh:
					cancel()
				case <-ctx.Done():
				}
			}()

			logger := pkglog.NewZerologAdapterWithLogger(log)
			if err := udpsend.Run(ctx, libCfg, logger); err != nil {
				return err
			}

			log.Info().Int("datagrams", len(cfg.Payloads)).Msg("all datagrams sent")
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.udpsend/config.toml)")
	root.Flags().StringVar(&cfg.BindAddr, "bind", cfg.BindAddr, "local address to bind the UDP socket to")
	root.Flags().StringVar(&cfg.ConnectAddr, "connect", cfg.ConnectAddr, "destination address (defaults to the bind address)")
	root.Flags().StringArrayVar(&cfg.Payloads, "payload", cfg.Payloads, "payload to send, one datagram each (repeatable)")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall send timeout")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("udpsend")
		os.Exit(1)
	}
}
