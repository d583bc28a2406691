package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// ErrorHandler answers unhandled errors with the same {"erro": ...} body the
// upload endpoint uses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Erro interno do servidor."

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	} else {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("❌ Unhandled error")
	}

	return c.Status(code).JSON(models.ErrorResponse{Erro: msg})
}
