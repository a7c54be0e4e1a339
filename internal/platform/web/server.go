package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

// ServerConfig holds configuration for the web bridge.
type ServerConfig struct {
	Address        string
	TickRate       int    // simulation frames per second
	SnapshotEvery  int    // send every n-th frame
	MaxConnections int    // 0 means unlimited
	Mode           string // difficulty preset runs are recorded under
}

// DefaultServerConfig returns 60 Hz simulation with 30 Hz snapshots.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:        ":8080",
		TickRate:       60,
		SnapshotEvery:  2,
		MaxConnections: 256,
		Mode:           string(config.DifficultyNormal),
	}
}

// Server upgrades /ws requests and runs one session per connection.
type Server struct {
	cfg      ServerConfig
	game     config.RunnerConfig
	store    *storage.Store // may be nil
	log      *log.Logger
	upgrader websocket.Upgrader
	base     context.Context
	active   atomic.Int64
	seeds    atomic.Int64
}

// NewServer creates a web bridge. A nil store keeps scores per connection.
func NewServer(cfg ServerConfig, game config.RunnerConfig, store *storage.Store, logger *log.Logger) *Server {
	s := &Server{
		cfg:   cfg,
		game:  game,
		store: store,
		log:   logger,
		base:  context.Background(),
	}
	s.seeds.Store(time.Now().UnixNano())
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     sameOrigin,
	}
	return s
}

// sameOrigin accepts non-browser clients and same-host browsers.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler returns the HTTP routes of the bridge.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok %d\n", s.active.Load())
	})
	return mux
}

// Active returns the number of open connections.
func (s *Server) Active() int {
	return int(s.active.Load())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if limit := s.cfg.MaxConnections; limit > 0 && s.active.Load() >= int64(limit) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	remote := extractIP(r)
	connLog := s.log.With("remote", remote)
	client := NewClient(conn, remote, connLog)
	sess := newSession(s.newDriver(connLog), client, connLog, s.cfg.TickRate, s.cfg.SnapshotEvery)

	s.active.Add(1)
	connLog.Info("client connected")

	g, ctx := errgroup.WithContext(s.base)
	g.Go(func() error { return client.ReadPump(ctx, sess.events) })
	g.Go(func() error { return client.WritePump(ctx) })
	g.Go(func() error { return sess.run(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		// Unblocks ReadPump.
		conn.Close()
		return nil
	})

	go func() {
		err := g.Wait()
		s.active.Add(-1)
		if errors.Is(err, errClientGone) || errors.Is(err, context.Canceled) {
			err = nil
		}
		connLog.Info("client disconnected", "err", err)
	}()
}

func (s *Server) newDriver(logger *log.Logger) *runner.Driver {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithSeed(s.seeds.Add(1)),
	}
	if s.store != nil {
		opts = append(opts,
			runner.WithGateway(s.store.HighScoreGateway(runner.HighScoreKey)),
			runner.WithResults(s.store.RunLog(s.cfg.Mode)),
		)
	}
	return runner.NewDriver(s.game, opts...)
}

// Serve listens until ctx is cancelled, then shuts down gracefully and
// closes every connection.
func (s *Server) Serve(ctx context.Context) error {
	s.base = ctx
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting web bridge", "address", s.cfg.Address)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down web bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
