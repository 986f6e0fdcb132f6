package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"faceattend/interfaces/api/middleware"
	websocketHandler "faceattend/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, hub *websocketHandler.Hub) {
	wsHandler := websocketHandler.NewWebSocketHandler(hub)

	// Live check-in feed with optional authentication (supports query token)
	app.Use("/ws/attendance", middleware.OptionalWithQueryToken(), wsHandler.WebSocketUpgrade)
	app.Get("/ws/attendance", websocket.New(wsHandler.HandleAttendanceFeed))
}
