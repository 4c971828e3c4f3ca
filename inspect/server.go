package inspect

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/padmenu/padmenu/render"
	"github.com/padmenu/padmenu/store"
)

const writeTimeout = 5 * time.Second

// Server fans frame snapshots out to WebSocket subscribers.
type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	last  []byte
}

// NewServer creates an inspector server logging through the given
// logger. Origins are not checked; the inspector is a local debug tool.
func NewServer(logger *slog.Logger) *Server {
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket and subscribes it to
// snapshot broadcasts. A newly connected client receives the last
// published snapshot right away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Inspector upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	s.logger.Debug("Inspector client connected.", "remote_addr", r.RemoteAddr)

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	last := s.last
	s.mu.Unlock()

	if last != nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, last); err != nil {
			s.drop(conn)
			return
		}
	}

	// Inbound frames are discarded; the read loop exists to notice the
	// peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.logger.Debug("Inspector client disconnected.", "remote_addr", r.RemoteAddr)
				s.drop(conn)
				return
			}
		}
	}()
}

// Publish captures a snapshot of the given frame and store and sends it
// to every subscriber. Marshal failures are logged and the frame is
// skipped; a slow or dead subscriber is dropped.
func (s *Server) Publish(screenName, focus string, f *render.Frame, st *store.Store) {
	snap, err := Capture(screenName, focus, f, st)
	if err != nil {
		s.logger.Warn("Snapshot capture failed.", "screen", screenName, "error", err)
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("Snapshot encoding failed.", "screen", screenName, "error", err)
		return
	}

	s.mu.Lock()
	s.last = data
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("Dropping inspector client.", "error", err)
			s.drop(conn)
		}
	}
}

// Start serves the inspector at /inspect on its own mux in the
// background.
func (s *Server) Start(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/inspect", s)

	go func() {
		s.logger.Info("🔍 Inspector server starting", "address", fmt.Sprintf("ws://localhost%s/inspect", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			s.logger.Error("Inspector server failed", "error", err)
		}
	}()
}

// Close disconnects every subscriber.
func (s *Server) Close() {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.conns = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, subscribed := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()

	if subscribed {
		conn.Close()
	}
}
