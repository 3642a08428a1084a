package handlers

import (
	"errors"

	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/middleware"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps workspace errors onto HTTP statuses.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	resp := dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)}

	var (
		ve *workspace.ValidationError
		ie *workspace.IndexError
		nf *workspace.NotFoundError
		ae *workspace.AuthenticationError
	)
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = fiber.StatusBadRequest
		resp.Error = ve.Message
		resp.Field = ve.Field
	case errors.As(err, &ie):
		status = fiber.StatusBadRequest
	case errors.As(err, &ae):
		status = fiber.StatusUnauthorized
	case errors.As(err, &nf):
		status = fiber.StatusNotFound
	case errors.Is(err, workspace.ErrGenerationInFlight):
		status = fiber.StatusConflict
	case errors.Is(err, workspace.ErrWorkspaceClosed):
		status = fiber.StatusGone
	default:
		log.Error("workspace operation failed", zap.String("request_id", resp.RequestID), zap.Error(err))
		resp.Error = "internal server error"
	}
	return c.Status(status).JSON(resp)
}

// parseBody decodes and validates a request body. It writes the 400 response
// itself and reports false when the body is unusable.
func parseBody(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body", RequestID: middleware.GetRequestID(c)})
	}
	if err := dto.Validate(req); err != nil {
		resp := dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)}
		var fe *dto.FieldError
		if errors.As(err, &fe) {
			resp.Error = fe.Message
			resp.Field = fe.Field
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return true, nil
}

// respondView answers with the workspace view, or the mapped error.
func respondView(c *fiber.Ctx, log *zap.Logger, view workspace.View, err error) error {
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}
