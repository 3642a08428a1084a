package workspace

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		in   string
		want AuthMode
		ok   bool
	}{
		{"login", AuthModeLogin, true},
		{" Register ", AuthModeRegister, true},
		{"signup", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAuthMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAuthMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAuthenticateValidation(t *testing.T) {
	tests := []struct {
		name  string
		mode  AuthMode
		creds Credentials
	}{
		{"login without password", AuthModeLogin, Credentials{Email: "ada@example.com"}},
		{"login without email", AuthModeLogin, Credentials{Password: "pw"}},
		{"whitespace email", AuthModeLogin, Credentials{Email: "   ", Password: "pw"}},
		{"register without name", AuthModeRegister, Credentials{Email: "ada@example.com", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSessionManager(&stubAuthenticator{}, zap.NewNop())
			m.OpenPrompt(tt.mode)

			sess, err := m.Authenticate(context.Background(), tt.mode, tt.creds)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Message != MsgFillAllFields {
				t.Fatalf("err = %v, want %q", err, MsgFillAllFields)
			}
			if sess != nil || m.Current() != nil {
				t.Fatalf("session created despite validation failure")
			}
			if p := m.Prompt(); !p.Open || p.Error != MsgFillAllFields {
				t.Fatalf("prompt = %+v", p)
			}
		})
	}
}

func TestAuthenticateRejectedKeepsSessionEmpty(t *testing.T) {
	m := NewSessionManager(&stubAuthenticator{err: errBoom}, zap.NewNop())
	m.OpenPrompt(AuthModeLogin)

	_, err := m.Authenticate(context.Background(), AuthModeLogin, Credentials{Email: "ada@example.com", Password: "pw"})
	var ae *AuthenticationError
	if !errors.As(err, &ae) || !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want AuthenticationError wrapping boom", err)
	}
	if m.Current() != nil {
		t.Fatalf("session must stay empty")
	}
	if p := m.Prompt(); !p.Open || p.Error == "" {
		t.Fatalf("prompt should stay open with an error: %+v", p)
	}
}

func TestAuthenticatorValidationPassesThrough(t *testing.T) {
	m := NewSessionManager(&stubAuthenticator{err: &ValidationError{Field: "email", Message: "email already registered"}}, zap.NewNop())

	_, err := m.Authenticate(context.Background(), AuthModeRegister, Credentials{Email: "a@b.c", Password: "pw", Name: "A"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("err = %v, want the authenticator's ValidationError", err)
	}
	if m.Prompt().Error != "email already registered" {
		t.Fatalf("prompt error = %q", m.Prompt().Error)
	}
}

func TestAuthenticateSuccessClosesPrompt(t *testing.T) {
	m := NewSessionManager(&stubAuthenticator{}, zap.NewNop())
	m.OpenPrompt(AuthModeRegister)

	sess, err := m.Authenticate(context.Background(), AuthModeRegister, Credentials{Email: " ada@example.com ", Password: "pw", Name: " Ada "})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Email != "ada@example.com" || sess.Name != "Ada" {
		t.Fatalf("credentials were not trimmed: %+v", sess)
	}
	if m.Current() != sess {
		t.Fatalf("current session not set")
	}
	if m.Prompt().Open {
		t.Fatalf("prompt should close")
	}

	if prev := m.End(); prev != sess {
		t.Fatalf("End returned %v", prev)
	}
	if m.Current() != nil || m.End() != nil {
		t.Fatalf("session should be gone after End")
	}
}

func TestPromptModes(t *testing.T) {
	m := NewSessionManager(&stubAuthenticator{}, zap.NewNop())
	if m.Prompt().Mode != AuthModeLogin || m.Prompt().Open {
		t.Fatalf("initial prompt = %+v", m.Prompt())
	}

	m.OpenPrompt(AuthModeRegister)
	m.SwitchMode()
	if p := m.Prompt(); p.Mode != AuthModeLogin || !p.Open {
		t.Fatalf("after switch = %+v", p)
	}

	m.ClosePrompt()
	m.OpenPrompt("")
	if p := m.Prompt(); p.Mode != AuthModeLogin || !p.Open {
		t.Fatalf("empty mode should keep the last one: %+v", p)
	}
}
