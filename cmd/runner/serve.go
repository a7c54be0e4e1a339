package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/matrix-runner/internal/platform/tui"
	"github.com/vovakirdan/matrix-runner/internal/platform/web"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxConns    int
	flagServeConfig string
	flagServeDiff   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the runner over SSH and WebSocket",
	Long: `Start an SSH server and/or a WebSocket bridge.

Each connection gets its own session. Scores are stored per server (all
players share the same high score and run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.matrix-runner/host_key

Pass an empty address to disable a listener.

Examples:
  runner serve                           # SSH on :23234, WebSocket on :8080
  runner serve --http ""                 # SSH only
  runner serve --ssh "" --http :9000     # WebSocket only

Players can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "WebSocket bridge address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxConns, "max-conns", 256, "Maximum concurrent WebSocket connections (0 = unlimited)")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom runner config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	logger := newLogger(os.Stderr, "runner-serve")

	game, preset, err := loadGame(flagServeConfig, flagServeDiff)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	} else {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS
		cfg.Mode = string(preset)

		sshServer, err := tui.NewSSHServer(cfg, game, store, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		cfg := web.DefaultServerConfig()
		cfg.Address = flagHTTPAddr
		cfg.TickRate = flagFPS
		cfg.MaxConnections = flagMaxConns
		cfg.Mode = string(preset)

		webServer := web.NewServer(cfg, game, store, logger.WithPrefix("web"))
		g.Go(func() error { return webServer.Serve(ctx) })
	}

	logger.Info("press Ctrl+C to stop")
	return g.Wait()
}
