package routes

import (
	"github.com/gofiber/fiber/v2"

	"faceattend/interfaces/api/handlers"
	"faceattend/interfaces/api/middleware"
)

func SetupEmployeeRoutes(api fiber.Router, h *handlers.Handlers) {
	employees := api.Group("/employees", middleware.Protected())

	employees.Post("/", h.Employee.Enroll)
	employees.Get("/", h.Employee.List)
	employees.Get("/:id", h.Employee.Get)
	employees.Put("/:id", h.Employee.Update)
	employees.Delete("/:id", h.Employee.Delete)
}
