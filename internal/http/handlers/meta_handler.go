package handlers

import (
	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

var (
	toneOptions     = options(models.AllTones)
	platformOptions = options(models.AllPlatforms)
)

func options[T ~string](values []T) []dto.MetaOption {
	out := make([]dto.MetaOption, len(values))
	for i, v := range values {
		out[i] = dto.MetaOption{ID: string(v), Label: string(v)}
	}
	return out
}

func (h *MetaHandler) GetTones(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: toneOptions})
}

// GetPlatforms also reports the character limit bounds the form accepts.
func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"platforms": platformOptions,
		"char_limit": fiber.Map{
			"min":     models.MinCharLimit,
			"max":     models.MaxCharLimit,
			"default": models.DefaultCharLimit,
		},
	}})
}
