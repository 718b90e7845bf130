package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/discovery"
	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/version"
)

// ShutdownTimeout bounds how long Run waits for connection handlers.
const ShutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host      string
	Port      int
	Path      string // WebSocket path, default discovery.DefaultPath
	Advertise bool   // announce the server over mDNS
	Instance  string // mDNS instance name, default "maskedit on <hostname>"
	Registry  *config.Registry
	WatchPath string // profiles file reloaded on change, empty disables
}

// Server hosts one session engine per WebSocket connection
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	http     *http.Server
	listener net.Listener

	regMu    sync.RWMutex
	registry *config.Registry

	wg          sync.WaitGroup
	mu          sync.Mutex
	closing     bool
	activeConns map[string]*websocket.Conn // keyed by connection ID
}

// New creates a new Server instance
func New(cfg *Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("server config has no profile registry")
	}
	if cfg.Path == "" {
		cfg.Path = discovery.DefaultPath
	}
	if cfg.Instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "localhost"
		}
		cfg.Instance = "maskedit on " + host
	}

	s := &Server{
		config:      cfg,
		registry:    cfg.Registry,
		activeConns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleWebSocket)
	mux.HandleFunc("/version", handleVersion)
	mux.HandleFunc("/profiles", s.handleProfiles)
	return mux
}

// Listen opens the TCP listener. It is called by Run when needed.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = l
	return nil
}

// Addr returns the listening address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run serves until ctx is cancelled or serving fails.
func (s *Server) Run(ctx context.Context) error {
	var watcher *profileWatcher
	if s.config.WatchPath != "" {
		w, err := newProfileWatcher(s.config.WatchPath)
		if err != nil {
			if s.listener != nil {
				_ = s.listener.Close()
			}
			return err
		}
		watcher = w
	}

	if s.listener == nil {
		if err := s.Listen(); err != nil {
			if watcher != nil {
				_ = watcher.close()
			}
			return err
		}
	}
	logging.Info("Starting maskedit server",
		zap.String("addr", s.listener.Addr().String()),
		zap.String("path", s.config.Path),
		zap.Bool("advertise", s.config.Advertise),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.run(ctx, s.SetRegistry)
		})
	}
	if s.config.Advertise {
		g.Go(func() error {
			port := s.listener.Addr().(*net.TCPAddr).Port
			txt := discovery.TXTRecords(version.Version, s.config.Path, s.Registry().ProfileNames())
			return discovery.Advertise(ctx, s.config.Instance, port, txt)
		})
	}
	return g.Wait()
}

// Shutdown stops accepting connections, closes open sessions and waits for
// their handlers.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)

	// hijacked connections are not closed by http.Server.Shutdown
	s.mu.Lock()
	s.closing = true
	for id, conn := range s.activeConns {
		logging.Debug("Closing active connection", zap.String("conn_id", id))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// GetActiveConnections returns the number of open sessions
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

// Registry returns the profiles new sessions are opened from.
func (s *Server) Registry() *config.Registry {
	s.regMu.RLock()
	defer s.regMu.RUnlock()
	return s.registry
}

// SetRegistry replaces the profiles. Open sessions keep their engines.
func (s *Server) SetRegistry(r *config.Registry) {
	s.regMu.Lock()
	s.registry = r
	s.regMu.Unlock()
}

// track registers an upgraded connection with the handler wait group. It
// reports false once Shutdown has started.
func (s *Server) track(id string, conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	s.activeConns[id] = conn
	return true
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	delete(s.activeConns, id)
	s.mu.Unlock()
}
