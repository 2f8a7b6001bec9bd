package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets user id (subject) into c.Locals("userId").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Missing Authorization header.")
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if scheme, rest, ok := strings.Cut(tokenStr, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		}
		if tokenStr == "" {
			return unauthorized(c, "Empty token.")
		}
		claims, err := Parse(tokenStr, secretBytes, expectedIssuer)
		if err != nil {
			if errors.Is(err, ErrInvalidIssuer) {
				return unauthorized(c, "Invalid token issuer.")
			}
			return unauthorized(c, "Invalid or expired token.")
		}
		userID := claims.Subject
		if userID == "" {
			userID = claims.UserID
		}
		if userID == "" {
			return unauthorized(c, "Invalid token claims.")
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": message})
}
