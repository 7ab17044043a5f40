package bridge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	errs "github.com/mercmobily/routify/internal/errors"
	"github.com/mercmobily/routify/pkg/pattern"
	"github.com/mercmobily/routify/pkg/protocol"
	"github.com/mercmobily/routify/pkg/router"
)

// Identified lets a component choose the identifier used in active patches
// sent to the client. Components without it are keyed by their Go type.
type Identified interface {
	RouteID() string
}

// Session is one connected thin client. It owns the per-connection Router,
// implements router.Host against the client's reported location, and
// translates between protocol frames and interceptor calls.
//
// Transitions into the active state are forwarded to the client as active
// patches; the thin client clears its previous selection on each patch.
type Session struct {
	// ID is the cryptographically random session identifier.
	ID string

	conn    *websocket.Conn
	config  *Config
	factory RouterFactory
	logger  *slog.Logger

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}

	mu     sync.Mutex
	origin string
	loc    pattern.Location

	router      *router.Router
	interceptor *router.Interceptor
}

// generateSessionID generates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession(conn *websocket.Conn, factory RouterFactory, config *Config, logger *slog.Logger) *Session {
	id := generateSessionID()
	return &Session{
		ID:      id,
		conn:    conn,
		config:  config,
		factory: factory,
		logger:  logger.With("session", id),
		done:    make(chan struct{}),
	}
}

// Router returns the per-session router, or nil before the handshake.
func (s *Session) Router() *router.Router {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router
}

// Location implements router.Host.
func (s *Session) Location() pattern.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Origin implements router.Host.
func (s *Session) Origin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// Push implements router.Host: the push happens in the client, driven by a
// patch frame. The session's location snapshot moves immediately so the
// reconciliation pass the interceptor queues next sees the new location.
func (s *Session) Push(loc pattern.Location) error {
	s.mu.Lock()
	s.loc = loc
	s.mu.Unlock()

	p := protocol.PushPatch{Path: loc.Path, Hash: loc.Hash}
	return s.send(protocol.FramePatch, p.Encode())
}

// readLoop reads and dispatches frames until the connection closes.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameHello:
			s.handleHello(frame.Payload)

		case protocol.FrameEvent:
			s.handleEvent(frame.Payload)

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// handleHello processes the handshake: it validates the announced origin,
// builds the per-session router, and installs the interceptor, which runs
// the initial activation pass.
func (s *Session) handleHello(payload []byte) {
	hello, err := protocol.DecodeHello(payload)
	if err != nil {
		s.logger.Error("hello decode error", "error", err)
		return
	}

	s.mu.Lock()
	if s.router != nil {
		s.mu.Unlock()
		s.logger.Warn("duplicate hello ignored")
		return
	}
	s.mu.Unlock()

	if !s.config.originAllowed(hello.Origin) {
		s.logger.Warn("origin rejected", "origin", hello.Origin)
		s.sendError("E302")
		s.Close()
		return
	}

	r := s.factory(s)
	r.OnActivate(func(c router.Routable) {
		p := protocol.ActivePatch{ComponentID: componentID(c), Active: true}
		if err := s.send(protocol.FramePatch, p.Encode()); err != nil {
			s.logger.Error("active patch write failed", "error", err)
		}
	})

	loc := pattern.Location{Path: hello.Path, Hash: hello.Hash}
	s.mu.Lock()
	s.origin = hello.Origin
	s.loc = loc
	s.router = r
	s.mu.Unlock()

	// Install runs the initial pass synchronously, which may call back into
	// Location and Push; the session mutex must not be held here.
	ic := r.Install(s)

	s.mu.Lock()
	s.interceptor = ic
	s.mu.Unlock()

	s.logger.Info("session established",
		"origin", hello.Origin,
		"location", loc.String())
}

// handleEvent dispatches a decoded navigation event to the interceptor.
func (s *Session) handleEvent(payload []byte) {
	s.mu.Lock()
	ic := s.interceptor
	s.mu.Unlock()
	if ic == nil {
		s.sendError("E301")
		return
	}

	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		return
	}

	switch e := ev.(type) {
	case *protocol.ClickEvent:
		ic.HandleClick(context.Background(), clickFromProtocol(e))

	case *protocol.HistoryPopEvent:
		s.mu.Lock()
		s.loc = pattern.Location{Path: e.Path, Hash: e.Hash}
		s.mu.Unlock()
		ic.HandleHistoryPop(context.Background())
	}
}

// clickFromProtocol converts a wire click into the interceptor's shape.
func clickFromProtocol(e *protocol.ClickEvent) router.Click {
	click := router.Click{
		Button:           int(e.Button),
		Ctrl:             e.Modifiers&protocol.ModCtrl != 0,
		Shift:            e.Modifiers&protocol.ModShift != 0,
		Alt:              e.Modifiers&protocol.ModAlt != 0,
		Meta:             e.Modifiers&protocol.ModMeta != 0,
		DefaultPrevented: e.Flags&protocol.ClickPrevented != 0,
	}
	if e.Flags&protocol.ClickHasAnchor != 0 {
		click.Anchor = &router.Anchor{
			Href:     e.Href,
			Target:   e.Target,
			Download: e.Flags&protocol.ClickDownload != 0,
			External: e.Flags&protocol.ClickExternal != 0,
		}
	}
	return click
}

// writeLoop pings the client until the session closes.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeMu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.writeMu.Unlock()
			if err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// send encodes and writes one frame.
func (s *Session) send(ft protocol.FrameType, payload []byte) error {
	if s.closed.Load() {
		return errors.New("session closed")
	}
	frame := protocol.Frame{Type: ft, Payload: payload}
	data, err := frame.Encode()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// sendError reports a registry error code to the client.
func (s *Session) sendError(code string) {
	e := errs.New(code)
	report := protocol.ErrorReport{Code: e.Code, Message: e.Message}
	if err := s.send(protocol.FrameError, report.Encode()); err != nil {
		s.logger.Error("error report write failed", "error", err)
	}
}

// Close terminates the session. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
	s.logger.Info("session closed")
}

// componentID derives the identifier used in active patches.
func componentID(c router.Routable) string {
	if id, ok := c.(Identified); ok {
		return id.RouteID()
	}
	return fmt.Sprintf("%T", c)
}
