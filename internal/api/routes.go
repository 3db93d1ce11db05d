package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gridironhq/sportwire/internal/middleware"
	"github.com/gridironhq/sportwire/internal/pipeline"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, runner *pipeline.Runner) {
	handlers := NewHandlers(runner)

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/status", handlers.SourceStatus)
	api.Get("/items", handlers.Items)

	admin := api.Group("/admin")
	admin.Post("/refresh", handlers.Refresh)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
