package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"todoapi/internal/service/events"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Handler streams todo change events over a websocket.
type Handler struct {
	broadcaster *events.Broadcaster
	upgrader    websocket.Upgrader
}

// New creates the events handler.
func New(broadcaster *events.Broadcaster) *Handler {
	return &Handler{
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the change feed.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/todo/events", h.handleEvents)
}

// handleEvents upgrades the connection and forwards change events as
// JSON text messages until the client disconnects. There is no replay:
// a subscriber only sees changes made after it connected.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ch, cancel := h.broadcaster.Subscribe()
	defer cancel()

	// Read pump: the feed is write-only, but reading is required to
	// process control frames and notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("[events] failed to write event: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
