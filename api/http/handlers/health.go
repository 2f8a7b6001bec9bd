package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NandhiniKarvendhan/login-backend/pkg/health"
)

const livenessText = "Login Backend is running!"

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc health.ReadinessUseCase
	log *slog.Logger
}

func NewHealthHandler(svc health.ReadinessUseCase, log *slog.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, log: log}
}

// Root: plain-text liveness string.
// @Summary Liveness string
// @Tags    health
// @Produce plain
// @Success 200 {string} string
// @Router  / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString(livenessText)
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Ready: readiness check with store ping.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		h.log.WarnContext(ctx, "readiness check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
