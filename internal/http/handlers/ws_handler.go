package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adverve/backend/internal/events"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// wsClient serialises writes to one connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub pushes workspace events to the browsers that opened each workspace.
type WSHub struct {
	registry    *workspace.Registry
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*wsClient
}

func NewWSHub(registry *workspace.Registry, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		registry:    registry,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*wsClient),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamWorkspace, h.dispatch)
}

func (h *WSHub) dispatch(event events.Event) {
	id := event.WorkspaceID()
	if id == "" {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("failed to encode ws event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := append([]*wsClient(nil), h.connections[id]...)
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.log.Debug("ws write failed", zap.String("workspace_id", id), zap.Error(err))
		}
	}
}

func (h *WSHub) Connections(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[workspaceID])
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	id, err := uuid.Parse(conn.Query("workspace"))
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing or invalid workspace"}`))
		conn.Close()
		return
	}
	ws, ok := h.registry.Get(id)
	if !ok {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"workspace not found"}`))
		conn.Close()
		return
	}

	key := id.String()
	client := &wsClient{conn: conn}

	h.mu.Lock()
	h.connections[key] = append(h.connections[key], client)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		clients := h.connections[key]
		for i, c := range clients {
			if c == client {
				h.connections[key] = append(clients[:i], clients[i+1:]...)
				break
			}
		}
		if len(h.connections[key]) == 0 {
			delete(h.connections, key)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Start the client from the current state.
	if view, err := ws.View(); err == nil {
		data, _ := json.Marshal(events.Event{
			Type:    events.EventWorkspaceUpdated,
			Payload: map[string]any{events.PayloadWorkspaceID: key, "view": view},
		})
		if err := client.write(data); err != nil {
			return
		}
	}

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
