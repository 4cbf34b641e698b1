// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"kudi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the Bearer token and stores the claims in the request
// context. Everything behind it can trust c.Locals("claims").
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization format")
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return utils.Unauthorized(c, "invalid token")
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
