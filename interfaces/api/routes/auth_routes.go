package routes

import (
	"github.com/gofiber/fiber/v2"

	"faceattend/interfaces/api/handlers"
	"faceattend/interfaces/api/middleware"
	"faceattend/pkg/config"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, rateLimit *config.RateLimitConfig) {
	auth := api.Group("/auth")

	// Login and registration get the stricter limiter
	auth.Post("/register", middleware.AuthRateLimiter(rateLimit), h.Auth.Register)
	auth.Post("/login", middleware.AuthRateLimiter(rateLimit), h.Auth.Login)

	// Protected routes
	auth.Get("/me", middleware.Protected(), h.Auth.Me)

	// Operator account administration
	users := api.Group("/users", middleware.Protected())
	users.Get("/:id", h.Auth.GetUser)
	users.Put("/:id", h.Auth.UpdateUser)
	users.Delete("/:id", h.Auth.DeleteUser)
}
