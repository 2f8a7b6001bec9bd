package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NandhiniKarvendhan/login-backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// authMW guards the routes that need a bearer token.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/", health.Root)
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	app.Post("/register", auth.Register)
	app.Post("/login", auth.Login)
	app.Post("/google-signin", auth.GoogleSignIn)

	app.Get("/me", authMW, auth.Me)
}
