package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same trust model as the REST API: the frontend is local
	},
}

// wsMessage is the wire form of a store event. Status events carry the
// current save status so clients need no follow-up request.
type wsMessage struct {
	Type      core.EventType `json:"type"`
	ID        string         `json:"id,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty"`
	Status    *core.Status   `json:"status,omitempty"`
}

// handleWebSocket streams document and save-status events to one client.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	events, cancel := s.app.Store.Subscribe()
	defer cancel()
	defer conn.Close()

	// Drain client frames so pings and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for e := range events {
		msg := wsMessage{
			Type:      e.Type,
			ID:        e.ID,
			Timestamp: e.Timestamp,
		}
		if e.Type == core.EventStatus {
			status := s.app.Store.Status()
			msg.Status = &status
		}

		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
