package middleware

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"faceattend/pkg/utils"
)

func mustJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	return secret
}

// Protected rejects requests without a valid bearer token and stores the
// authenticated user in the request locals.
func Protected() fiber.Handler {
	jwtSecret := mustJWTSecret()

	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing or malformed authorization header")
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		c.Locals("user", userCtx)
		return c.Next()
	}
}

// OptionalWithQueryToken accepts a token from either the Authorization
// header or the "token" query parameter. WebSocket clients cannot set
// headers during the upgrade, so the query form is their only option.
// Requests without a valid token continue anonymously.
func OptionalWithQueryToken() fiber.Handler {
	jwtSecret := mustJWTSecret()

	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return c.Next()
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			return c.Next()
		}

		c.Locals("user", userCtx)
		return c.Next()
	}
}
