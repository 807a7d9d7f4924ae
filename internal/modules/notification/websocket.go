package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/linsok/housing-analyzer-sub000/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the web client's domains are fixed.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades notification stream connections.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	service    *Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, service *Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService, service: service}
}

type wsClientMessage struct {
	Type           string `json:"type"`
	NotificationID int64  `json:"notification_id"`
}

// HandleWebSocket serves GET /ws/notifications?token=JWT. Browsers
// cannot set headers on websocket dials, so the token rides the query.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(userID, conn)
	log.Printf("ws_connected user=%d online=%d", userID, h.hub.OnlineCount())

	defer func() {
		h.hub.Unregister(userID)
		log.Printf("ws_disconnected user=%d", userID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go h.pingLoop(conn)

	h.readLoop(conn, userID)
}

func (h *WSHandler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *WSHandler) readLoop(conn *websocket.Conn, userID int64) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws_error user=%d err=%v", userID, err)
			}
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "code": "INVALID_JSON"})
			continue
		}

		switch msg.Type {
		case "ping":
			_ = conn.WriteJSON(gin.H{"type": "pong"})
		case "mark_read":
			if msg.NotificationID > 0 {
				_ = h.service.MarkRead(context.Background(), userID, msg.NotificationID)
			}
		default:
			_ = conn.WriteJSON(gin.H{"type": "error", "code": "UNKNOWN_TYPE"})
		}
	}
}
