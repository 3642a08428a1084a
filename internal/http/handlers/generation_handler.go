package handlers

import (
	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/middleware"
	"github.com/adverve/backend/internal/models"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	log *zap.Logger
}

func NewGenerationHandler(log *zap.Logger) *GenerationHandler {
	return &GenerationHandler{log: log}
}

// Generate answers 202 once a request is in flight. The result arrives as a
// workspace_updated event or through a later GET of the workspace.
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).Generate()
	return h.respondTriggered(c, view, err)
}

func (h *GenerationHandler) Regenerate(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).Regenerate(c.Params("variantId"))
	return h.respondTriggered(c, view, err)
}

func (h *GenerationHandler) Copy(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).Copy(c.UserContext(), c.Params("variantId"))
	return respondView(c, h.log, view, err)
}

func (h *GenerationHandler) respondTriggered(c *fiber.Ctx, view workspace.View, err error) error {
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := fiber.StatusOK
	if view.Generation.State == models.GenerationPending {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(dto.SuccessResponse{OK: true, Data: view})
}
