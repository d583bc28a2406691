package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
)

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	})
}
