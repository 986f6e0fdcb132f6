package routes

import (
	"github.com/gofiber/fiber/v2"

	"faceattend/interfaces/api/handlers"
	"faceattend/interfaces/api/middleware"
)

func SetupReportRoutes(api fiber.Router, h *handlers.Handlers) {
	reports := api.Group("/reports", middleware.Protected())

	reports.Get("/daily/:year/:month/:day", h.Report.Daily)
	reports.Get("/weekly/:year/:week", h.Report.Weekly)
	reports.Get("/monthly/:year/:month", h.Report.Monthly)
}
