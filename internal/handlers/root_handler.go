package handlers

import (
	"time"

	"fastzero/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RegisterRootRoutes registers the greeting and health check endpoints.
func RegisterRootRoutes(router fiber.Router, storage string) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(models.Message{Message: "Olá Mundo!"})
	})

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": storage,
		})
	})
}
