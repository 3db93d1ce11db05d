package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/pipeline"
)

type Handlers struct {
	runner *pipeline.Runner
}

func NewHandlers(runner *pipeline.Runner) *Handlers {
	return &Handlers{runner: runner}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// SourceStatus handles GET /api/v1/status
func (h *Handlers) SourceStatus(c *fiber.Ctx) error {
	statuses := h.runner.Status()
	return c.JSON(fiber.Map{
		"sources": statuses,
		"total":   len(statuses),
	})
}

// Items handles GET /api/v1/items, serving the latest completed run.
func (h *Handlers) Items(c *fiber.Ctx) error {
	items, lastRun := h.runner.Latest()
	return c.JSON(fiber.Map{
		"items":    items,
		"total":    len(items),
		"last_run": lastRun,
	})
}

// Refresh handles POST /api/v1/admin/refresh by running the pipeline now.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	meta, err := h.runner.Run(c.Context())
	if err != nil {
		logger.WithError(err).Msg("Manual refresh failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(meta)
}
