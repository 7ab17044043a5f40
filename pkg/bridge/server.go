package bridge

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mercmobily/routify/pkg/router"
)

// RouterFactory builds the per-session Router. Every connection gets its own
// router because every browser tab has its own location and history;
// implementations typically register the application's components against it.
type RouterFactory func(host router.Host) *router.Router

// Server is the WebSocket endpoint the thin client connects to. It upgrades
// connections, runs the handshake, and owns the live session set.
type Server struct {
	factory  RouterFactory
	config   *Config
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithConfig sets the bridge configuration. Defaults to DefaultConfig().
func WithConfig(config *Config) ServerOption {
	return func(srv *Server) {
		srv.config = config
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(srv *Server) {
		srv.logger = logger
	}
}

// NewServer creates a bridge server around the given router factory.
func NewServer(factory RouterFactory, opts ...ServerOption) *Server {
	srv := &Server{
		factory:  factory,
		config:   DefaultConfig(),
		logger:   slog.Default(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     srv.config.CheckOrigin,
	}
	return srv
}

// ServeHTTP implements http.Handler. It blocks for the lifetime of the
// connection.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s := newSession(conn, srv.factory, srv.config, srv.logger)

	srv.mu.Lock()
	srv.sessions[s.ID] = s
	srv.mu.Unlock()

	go s.writeLoop()
	s.readLoop()

	srv.mu.Lock()
	delete(srv.sessions, s.ID)
	srv.mu.Unlock()
}

// SessionCount returns the number of live sessions.
func (srv *Server) SessionCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return len(srv.sessions)
}

// Shutdown closes every live session.
func (srv *Server) Shutdown() {
	srv.mu.Lock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
