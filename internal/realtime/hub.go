// Package realtime fans object lifecycle events out to every connected
// WebSocket client.
package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/internal/lifecycle"
	"github.com/JaimeStill/live-gallery/internal/objects"
)

// Event is the wire envelope for broadcast messages.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maintains the set of connected clients and broadcasts events to
// all of them. A single run loop serializes registration and broadcast
// so every client observes events in publish order.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       <-chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		logger:     logger.With("system", "realtime"),
	}
}

// Start launches the hub loop and closes all connections on shutdown.
func (h *Hub) Start(lc *lifecycle.Coordinator) error {
	h.done = lc.Context().Done()
	go h.run(lc)

	return nil
}

func (h *Hub) run(lc *lifecycle.Coordinator) {
	done := lc.Context().Done()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Info("client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			h.drop(c)

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow consumer: drop it rather than stall the hub.
					h.drop(c)
				}
			}

		case <-done:
			for c := range h.clients {
				h.drop(c)
			}
			h.logger.Info("hub stopped")
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	delete(h.clients, c)
	close(c.send)
	h.logger.Info("client disconnected", "clients", len(h.clients))
}

// Broadcast queues an event for delivery to every connected client.
// Events raised after shutdown are discarded rather than left blocking
// on a stopped loop.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.logger.Error("event marshal failed", "event", event, "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

// ObjectCreated implements objects.Notifier.
func (h *Hub) ObjectCreated(obj objects.Object) {
	h.Broadcast(objects.EventObjectCreated, obj)
}

// ObjectDeleted implements objects.Notifier. The payload is the bare
// id string.
func (h *Hub) ObjectDeleted(id uuid.UUID) {
	h.Broadcast(objects.EventObjectDeleted, id.String())
}
