package routes

import (
	"github.com/gofiber/fiber/v2"

	"faceattend/interfaces/api/handlers"
	"faceattend/interfaces/api/websocket"
	"faceattend/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, hub *websocket.Hub, cfg *config.Config) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	// API version group
	api := app.Group("/api/v1")

	// Setup all route groups
	SetupAuthRoutes(api, h, &cfg.RateLimit)
	SetupEmployeeRoutes(api, h)
	SetupAttendanceRoutes(api, h)
	SetupReportRoutes(api, h)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, hub)
}
