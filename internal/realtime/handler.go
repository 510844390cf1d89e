package realtime

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/JaimeStill/live-gallery/internal/routes"
)

// Handler upgrades HTTP requests to WebSocket connections on the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Broadcasts are public read-only data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("handler", "realtime"),
	}
}

// Routes returns the WebSocket endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/ws",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Serve},
		},
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	c := newClient(h.hub, conn)
	h.hub.register <- c

	go c.writePump()
	go c.readPump()
}
