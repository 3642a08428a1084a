package workspace

import (
	"context"

	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
)

// Generator produces ad copy for a campaign snapshot. Variants come back in display order.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) ([]models.AdCopyVariant, error)
}

// Authenticator is the identity service. It is only called once the required
// fields are known to be present.
type Authenticator interface {
	Login(ctx context.Context, email, secret string) (*models.Session, error)
	Register(ctx context.Context, email, secret, name string) (*models.Session, error)
}

// Clipboard delivers plain text to the clipboard of the browser owning the workspace.
type Clipboard interface {
	WriteText(ctx context.Context, workspaceID uuid.UUID, text string) error
}

type Auditor interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

type nopAuditor struct{}

func (nopAuditor) Log(context.Context, models.AuditLog) error { return nil }
