package http

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CrossOriginIsolation sets the opener/embedder policies required by the
// Google Sign-In popup flow of the web client.
func CrossOriginIsolation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cross-Origin-Opener-Policy", "same-origin-allow-popups")
		c.Set("Cross-Origin-Embedder-Policy", "require-corp")
		return c.Next()
	}
}

// CORS allows browser calls from the given origins only and logs the rest.
// Requests without an Origin header are not affected.
func CORS(origins []string, log *slog.Logger) fiber.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))] = struct{}{}
	}
	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			if _, ok := allowed[origin]; ok {
				return true
			}
			log.Warn("blocked by CORS policy", "origin", origin)
			return false
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	})
}
