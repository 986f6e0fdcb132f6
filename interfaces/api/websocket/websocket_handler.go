package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"faceattend/pkg/logger"
)

type WebSocketHandler struct {
	hub *Hub
}

func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleAttendanceFeed streams check-in events to the client until it hangs
// up. Incoming messages are read only to detect disconnects.
func (h *WebSocketHandler) HandleAttendanceFeed(c *websocket.Conn) {
	h.hub.RegisterClient(c)

	defer func() {
		h.hub.UnregisterClient(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			logger.WebSocket("client_closed", "Feed client closed connection", nil)
			break
		}
	}
}
