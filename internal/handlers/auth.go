package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/services"
)

// AuthMiddleware authenticates API requests with a bearer access token.
func AuthMiddleware(tokens *services.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if authHeader := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
		if token == "" {
			return services.Authentication("Missing token")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return err
		}

		c.Locals(localUserID, claims.UserID)
		return c.Next()
	}
}
