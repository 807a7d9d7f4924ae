package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks one live websocket connection per user. A reconnect
// replaces the previous connection.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{connections: make(map[int64]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.connections[userID]; ok && old != nil {
		_ = old.Close()
	}
	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[userID]; ok && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

// SendToUser pushes a JSON message to the user's connection. Returns
// false when the user is offline or the write fails; a failed write
// also drops the connection.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok || conn == nil {
		return false
	}
	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.connections[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
