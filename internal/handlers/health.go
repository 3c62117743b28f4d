package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	cache HealthChecker
}

func NewHealthHandler(cache HealthChecker) *HealthHandler {
	return &HealthHandler{cache: cache}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}
	code := fiber.StatusOK

	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Context()); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(status)
}
