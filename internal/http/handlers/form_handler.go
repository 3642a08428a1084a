package handlers

import (
	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FormHandler struct {
	log *zap.Logger
}

func NewFormHandler(log *zap.Logger) *FormHandler {
	return &FormHandler{log: log}
}

func (h *FormHandler) SetField(c *fiber.Ctx) error {
	var req dto.FieldRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	view, err := middleware.GetWorkspace(c).SetField(c.Params("name"), req.String())
	return respondView(c, h.log, view, err)
}

func (h *FormHandler) AddFeature(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).AddFeature()
	return respondView(c, h.log, view, err)
}

func (h *FormHandler) UpdateFeature(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid feature index"})
	}
	var req dto.FeatureRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	view, err := middleware.GetWorkspace(c).UpdateFeature(index, req.Value)
	return respondView(c, h.log, view, err)
}

func (h *FormHandler) RemoveFeature(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid feature index"})
	}

	view, err := middleware.GetWorkspace(c).RemoveFeature(index)
	return respondView(c, h.log, view, err)
}

func (h *FormHandler) TogglePlatform(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).TogglePlatform(c.Params("platform"))
	return respondView(c, h.log, view, err)
}
