package workspace

import (
	"context"
	"errors"
	"strings"

	"github.com/adverve/backend/internal/models"
	"go.uber.org/zap"
)

type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)

func ParseAuthMode(s string) (AuthMode, bool) {
	switch AuthMode(strings.ToLower(strings.TrimSpace(s))) {
	case AuthModeLogin:
		return AuthModeLogin, true
	case AuthModeRegister:
		return AuthModeRegister, true
	}
	return "", false
}

type Credentials struct {
	Email    string
	Password string
	Name     string
}

// AuthPrompt is the login/register dialog state.
type AuthPrompt struct {
	Open  bool     `json:"open"`
	Mode  AuthMode `json:"mode"`
	Error string   `json:"error,omitempty"`
}

// SessionManager owns whether a user is signed in. Either a complete session
// exists or none does.
type SessionManager struct {
	authn   Authenticator
	current *models.Session
	prompt  AuthPrompt
	log     *zap.Logger
}

func NewSessionManager(authn Authenticator, log *zap.Logger) *SessionManager {
	return &SessionManager{
		authn:  authn,
		prompt: AuthPrompt{Mode: AuthModeLogin},
		log:    log,
	}
}

func (m *SessionManager) Current() *models.Session { return m.current }

func (m *SessionManager) Prompt() AuthPrompt { return m.prompt }

// OpenPrompt shows the auth dialog. An empty mode keeps the current one.
func (m *SessionManager) OpenPrompt(mode AuthMode) {
	m.prompt.Open = true
	m.prompt.Error = ""
	if mode != "" {
		m.prompt.Mode = mode
	}
}

func (m *SessionManager) ClosePrompt() {
	m.prompt.Open = false
	m.prompt.Error = ""
}

func (m *SessionManager) SwitchMode() {
	if m.prompt.Mode == AuthModeLogin {
		m.prompt.Mode = AuthModeRegister
	} else {
		m.prompt.Mode = AuthModeLogin
	}
	m.prompt.Error = ""
}

// Authenticate signs the user in (or up). Nothing about the current session
// changes unless the authenticator returns a session.
func (m *SessionManager) Authenticate(ctx context.Context, mode AuthMode, creds Credentials) (*models.Session, error) {
	m.prompt.Error = ""

	email := strings.TrimSpace(creds.Email)
	name := strings.TrimSpace(creds.Name)
	missing := email == "" || strings.TrimSpace(creds.Password) == ""

	switch mode {
	case AuthModeLogin:
	case AuthModeRegister:
		missing = missing || name == ""
	default:
		return nil, &ValidationError{Field: "mode", Message: "unknown auth mode"}
	}

	if missing {
		m.prompt.Error = MsgFillAllFields
		return nil, &ValidationError{Message: MsgFillAllFields}
	}

	var (
		sess *models.Session
		err  error
	)
	if mode == AuthModeLogin {
		sess, err = m.authn.Login(ctx, email, creds.Password)
	} else {
		sess, err = m.authn.Register(ctx, email, creds.Password, name)
	}
	if err == nil && sess == nil {
		err = errors.New("authentication service returned no session")
	}
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			m.prompt.Error = ve.Message
			return nil, ve
		}
		m.log.Info("authentication rejected", zap.String("mode", string(mode)), zap.Error(err))
		m.prompt.Error = err.Error()
		return nil, &AuthenticationError{Err: err}
	}

	m.current = sess
	m.prompt.Open = false
	m.prompt.Error = ""
	return sess, nil
}

// End drops the session and returns the one that was active, if any.
func (m *SessionManager) End() *models.Session {
	prev := m.current
	m.current = nil
	return prev
}
