package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"faceattend/pkg/config"
	"faceattend/pkg/utils"
)

func perIPLimiter(max, windowSeconds int, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(windowSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, message, nil)
		},
	})
}

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}

// RateLimiter throttles all API traffic per client IP.
func RateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return passthrough
	}
	return perIPLimiter(cfg.MaxRequests, cfg.WindowSeconds,
		"Too many requests. Please try again later.")
}

// AuthRateLimiter is the tighter limit on login and registration,
// slowing down credential guessing.
func AuthRateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return passthrough
	}
	return perIPLimiter(cfg.AuthMaxRequests, cfg.AuthWindowSeconds,
		"Too many authentication attempts. Please try again later.")
}
