package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Broadcast event names.
const (
	EventObjectCreated = "object:created"
	EventObjectDeleted = "object:deleted"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Event is a broadcast message from the server.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Socket subscribes to the server's event stream and keeps a Store in
// sync. On reconnect the store is marked stale, since events may have
// been missed while disconnected.
type Socket struct {
	url     string
	store   *Store
	logger  *slog.Logger
	onEvent func(Event)
}

// NewSocket creates a subscriber for the given WebSocket URL, e.g.
// "ws://localhost:8080/ws". onEvent may be nil.
func NewSocket(url string, store *Store, logger *slog.Logger, onEvent func(Event)) *Socket {
	return &Socket{
		url:     url,
		store:   store,
		logger:  logger,
		onEvent: onEvent,
	}
}

// Run connects and processes events until ctx is canceled, reconnecting
// with exponential backoff after failures.
func (s *Socket) Run(ctx context.Context) {
	backoff := reconnectMin
	connected := false

	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			s.logger.Warn("connect failed, retrying", "url", s.url, "backoff", backoff, "error", err)

			select {
			case <-time.After(backoff):
				backoff = min(backoff*2, reconnectMax)
				continue
			case <-ctx.Done():
				return
			}
		}

		if connected {
			// Reconnected after a drop; anything broadcast in between
			// was lost.
			s.store.MarkStale()
		}
		connected = true
		backoff = reconnectMin

		s.logger.Info("connected", "url", s.url)
		s.read(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Socket) read(ctx context.Context, conn *websocket.Conn) {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("connection lost", "error", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			s.logger.Warn("malformed event", "error", err)
			continue
		}

		s.apply(event)
	}
}

func (s *Socket) apply(event Event) {
	switch event.Event {
	case EventObjectCreated:
		var obj Object
		if err := json.Unmarshal(event.Data, &obj); err != nil {
			s.logger.Warn("malformed object payload", "error", err)
			return
		}
		s.store.ApplyCreated(obj)

	case EventObjectDeleted:
		var id string
		if err := json.Unmarshal(event.Data, &id); err != nil {
			s.logger.Warn("malformed delete payload", "error", err)
			return
		}
		s.store.ApplyDeleted(id)
	}

	if s.onEvent != nil {
		s.onEvent(event)
	}
}
