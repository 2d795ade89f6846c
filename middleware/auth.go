package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireServiceToken checks the bearer token on every request. Session
// issuance lives in the external auth service; this only rejects calls
// that do not carry the configured token, and the dashboard reacts to
// the 401 by redirecting to /api/login. An empty configured token
// disables the check, which is how local development runs.
func RequireServiceToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}
