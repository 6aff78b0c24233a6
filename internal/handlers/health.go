package handlers

import (
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the server can reach its database.
type HealthHandler struct {
	logger *logging.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(logger *logging.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Check answers 200 "ok" when the database responds to a ping, 500 otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if !database.IsConnected(c.Context()) {
		h.logger.Warn("health check: database unreachable")
		return c.Status(fiber.StatusInternalServerError).SendString("database unavailable")
	}
	return c.SendString("ok")
}
