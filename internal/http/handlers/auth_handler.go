package handlers

import (
	"github.com/adverve/backend/internal/http/dto"
	"github.com/adverve/backend/internal/middleware"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

func (h *AuthHandler) OpenPrompt(c *fiber.Ctx) error {
	var req dto.AuthPromptRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
	}

	// An empty mode keeps the current one.
	mode, _ := workspace.ParseAuthMode(req.Mode)

	view, err := middleware.GetWorkspace(c).OpenAuthPrompt(mode)
	return respondView(c, h.log, view, err)
}

func (h *AuthHandler) ClosePrompt(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).CloseAuthPrompt()
	return respondView(c, h.log, view, err)
}

func (h *AuthHandler) SwitchMode(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).SwitchAuthMode()
	return respondView(c, h.log, view, err)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.authenticate(c, workspace.AuthModeLogin)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	return h.authenticate(c, workspace.AuthModeRegister)
}

func (h *AuthHandler) authenticate(c *fiber.Ctx, mode workspace.AuthMode) error {
	var req dto.CredentialsRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	view, err := middleware.GetWorkspace(c).Authenticate(c.UserContext(), mode, workspace.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	return respondView(c, h.log, view, err)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	view, err := middleware.GetWorkspace(c).Logout()
	return respondView(c, h.log, view, err)
}
