package middleware

import (
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CtxWorkspace = "workspace"

// WorkspaceMiddleware resolves the :id route parameter to a live workspace.
func WorkspaceMiddleware(reg *workspace.Registry, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "workspace not found"})
		}

		ws, ok := reg.Get(id)
		if !ok {
			log.Debug("unknown workspace", zap.String("workspace_id", id.String()))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "workspace not found"})
		}

		c.Locals(CtxWorkspace, ws)
		return c.Next()
	}
}

func GetWorkspace(c *fiber.Ctx) *workspace.Workspace {
	ws, _ := c.Locals(CtxWorkspace).(*workspace.Workspace)
	return ws
}
