package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adverve/backend/internal/auth"
	"github.com/adverve/backend/internal/models"
	"github.com/adverve/backend/internal/repositories"
	"github.com/adverve/backend/internal/workspace"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LocalAuthenticator accepts any complete set of credentials and keeps nothing.
type LocalAuthenticator struct {
	issuer *SessionIssuer
	log    *zap.Logger
}

func NewLocalAuthenticator(issuer *SessionIssuer, log *zap.Logger) *LocalAuthenticator {
	return &LocalAuthenticator{issuer: issuer, log: log}
}

func (a *LocalAuthenticator) Login(_ context.Context, email, _ string) (*models.Session, error) {
	return a.issuer.Issue(email, "")
}

func (a *LocalAuthenticator) Register(_ context.Context, email, _, name string) (*models.Session, error) {
	return a.issuer.Issue(email, name)
}

type AccountStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// AccountAuthenticator checks credentials against stored accounts.
type AccountAuthenticator struct {
	accounts AccountStore
	issuer   *SessionIssuer
	log      *zap.Logger
}

func NewAccountAuthenticator(accounts AccountStore, issuer *SessionIssuer, log *zap.Logger) *AccountAuthenticator {
	return &AccountAuthenticator{accounts: accounts, issuer: issuer, log: log}
}

func (a *AccountAuthenticator) Login(ctx context.Context, email, password string) (*models.Session, error) {
	acc, err := a.accounts.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	if err := auth.CheckPassword(acc.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.accounts.UpdateLastLogin(ctx, acc.ID); err != nil {
		a.log.Warn("failed to update last login", zap.String("account_id", acc.ID.String()), zap.Error(err))
	}
	return a.issuer.Issue(acc.Email, acc.Name)
}

func (a *AccountAuthenticator) Register(ctx context.Context, email, password, name string) (*models.Session, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc, err := a.accounts.Create(ctx, email, name, hash)
	if errors.Is(err, repositories.ErrEmailTaken) {
		return nil, &workspace.ValidationError{Field: "email", Message: err.Error()}
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	a.log.Info("account registered", zap.String("account_id", acc.ID.String()))
	return a.issuer.Issue(acc.Email, acc.Name)
}
