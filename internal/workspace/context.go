package workspace

import (
	"context"

	"github.com/adverve/backend/internal/models"
)

type sessionKey struct{}

// ContextWithSession attaches the session a generation was dispatched for.
func ContextWithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*models.Session)
	return s, ok && s != nil
}
