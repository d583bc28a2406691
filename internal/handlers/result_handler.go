package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

// HandleIndex lists every stored evaluation next to the upload form.
func (h *ResultHandler) HandleIndex(c *fiber.Ctx) error {
	evaluations, err := h.evalRepo.FindAll(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]models.EvaluationView, 0, len(evaluations))
	for i := range evaluations {
		views = append(views, models.NewEvaluationView(&evaluations[i]))
	}

	return c.Render("index", fiber.Map{
		"Avaliacoes": views,
	})
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	evaluation, err := h.evalRepo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Avaliação não encontrada")
		}
		return err
	}

	return c.Render("avaliacao", fiber.Map{
		"Avaliacao": models.NewEvaluationView(evaluation),
	})
}
