package handlers

import (
	"context"

	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/middleware"
	"github.com/adverve/backend/internal/models"
	"github.com/adverve/backend/internal/repositories"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditReader interface {
	ListWorkspace(ctx context.Context, workspaceID uuid.UUID, f repositories.AuditFilter) ([]models.AuditLog, error)
}

type WorkspaceHandler struct {
	registry *workspace.Registry
	audit    AuditReader
	log      *zap.Logger
}

// NewWorkspaceHandler builds the handler. audit may be nil when no audit
// store is configured.
func NewWorkspaceHandler(registry *workspace.Registry, audit AuditReader, log *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{registry: registry, audit: audit, log: log}
}

func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	ws := h.registry.Create()
	view, err := ws.View()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).View()
	return respondView(c, h.log, view, err)
}

func (h *WorkspaceHandler) Delete(c *fiber.Ctx) error {
	h.registry.Delete(middleware.GetWorkspace(c).ID())
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *WorkspaceHandler) Activity(c *fiber.Ctx) error {
	if h.audit == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: "activity log is not configured"})
	}

	ws := middleware.GetWorkspace(c)
	view, err := ws.View()
	if err != nil {
		return respondError(c, h.log, err)
	}
	// Activity belongs to whoever is signed in; earlier users of the same
	// workspace stay private.
	if view.Session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:     "sign in to view activity",
			RequestID: middleware.GetRequestID(c),
		})
	}

	filter := repositories.AuditFilter{
		ActorEmail: view.Session.Email,
		Action:     c.Query("action"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}

	id := ws.ID()
	logs, err := h.audit.ListWorkspace(c.UserContext(), id, filter)
	if err != nil {
		h.log.Error("list activity failed", zap.String("workspace_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}
