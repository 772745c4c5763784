package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"physio-backend/internal/appupdate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks one websocket connection per update session so the server
// can push commands (activate, reload) and release nudges to the page
// instead of being polled.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*connection
}

type connection struct {
	mu   sync.Mutex
	sock *websocket.Conn
}

func (c *connection) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteJSON(v)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*connection)}
}

// HandleConnection upgrades the request and keeps the connection
// registered until the peer goes away. The session id comes from the
// page; a reload opens a fresh connection under a fresh id.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	conn := &connection{sock: sock}
	h.mu.Lock()
	if old, ok := h.conns[sessionID]; ok {
		old.sock.Close()
	}
	h.conns[sessionID] = conn
	h.mu.Unlock()

	// Drain inbound frames until close; the page sends nothing we need
	// over this channel.
	for {
		if _, _, err := sock.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if h.conns[sessionID] == conn {
		delete(h.conns, sessionID)
	}
	h.mu.Unlock()
	sock.Close()
}

// Send delivers a command to one session's page. A missing or dead
// connection drops the command; the page's polling path still works.
func (h *Hub) Send(sessionID string, cmd appupdate.Command) {
	h.mu.Lock()
	conn, ok := h.conns[sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	if err := conn.writeJSON(cmd); err != nil {
		log.Printf("ws: failed to send %s to session %s: %v", cmd.Name, sessionID, err)
	}
}

// NotifyRelease nudges every open tab to ask its service worker for an
// update. The worker's own need-refresh notification then drives the
// prompt; the nudge carries no state.
func (h *Hub) NotifyRelease(version string) {
	h.mu.Lock()
	conns := make([]*connection, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	msg := struct {
		Command string `json:"command"`
		Version string `json:"version"`
	}{Command: "check-update", Version: version}

	for _, conn := range conns {
		if err := conn.writeJSON(msg); err != nil {
			log.Printf("ws: release nudge failed: %v", err)
		}
	}
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
