package services

import (
	"fmt"
	"time"

	"github.com/adverve/backend/internal/auth"
	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
)

// SessionIssuer mints sessions with a signed token.
type SessionIssuer struct {
	secret string
	ttl    time.Duration
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{secret: secret, ttl: ttl}
}

func (i *SessionIssuer) Issue(email, name string) (*models.Session, error) {
	id := uuid.New()
	token, err := auth.GenerateJWT(i.secret, id, email, i.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &models.Session{
		ID:        id,
		Email:     email,
		Name:      name,
		Token:     token,
		CreatedAt: time.Now(),
	}, nil
}
