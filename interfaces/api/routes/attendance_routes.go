package routes

import (
	"github.com/gofiber/fiber/v2"

	"faceattend/interfaces/api/handlers"
	"faceattend/interfaces/api/middleware"
)

func SetupAttendanceRoutes(api fiber.Router, h *handlers.Handlers) {
	attendance := api.Group("/attendance")

	// Check-in comes from the kiosk camera and carries no operator token
	attendance.Post("/check-in", h.Attendance.CheckIn)

	// Everything else is operator-facing
	attendance.Use(middleware.Protected())
	attendance.Put("/:id/check-out", h.Attendance.CheckOut)
	attendance.Get("/", h.Attendance.List)
	attendance.Get("/:id", h.Attendance.Get)
	attendance.Put("/:id", h.Attendance.Update)
	attendance.Delete("/:id", h.Attendance.Delete)
}
