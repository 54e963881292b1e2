package api

import (
	"strings"

	domain "github.com/example/recipe-share/domain/user"
	"github.com/example/recipe-share/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store the verified identity in the
	// Fiber context.
	UserContextKey = "user"
)

// AuthRequired creates a middleware that verifies the bearer token and
// attaches the recovered identity to the request context. A missing token
// is 401; an invalid or expired one is 403. Handlers downstream never
// re-verify the token.
func AuthRequired(authPort auth.Port) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access token required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access token required",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access token required",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// RequireRoles creates a middleware that rejects identities whose role is
// not in the allowed set. Must run after AuthRequired.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserContextKey).(domain.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access token required",
			})
		}
		for _, role := range allowed {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
			Message: "Insufficient permissions",
		})
	}
}
