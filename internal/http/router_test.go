package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adverve/backend/internal/config"
	"github.com/adverve/backend/internal/events"
	"github.com/adverve/backend/internal/http/handlers"
	"github.com/adverve/backend/internal/models"
	"github.com/adverve/backend/internal/services"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type viewEnvelope struct {
	OK    bool           `json:"ok"`
	Data  workspace.View `json:"data"`
	Error string         `json:"error"`
	Field string         `json:"field"`
}

type testServer struct {
	app *fiber.App
	reg *workspace.Registry
	bus *events.MemoryBus
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus := events.NewMemoryBus(64, log)
	issuer := services.NewSessionIssuer("test-secret", time.Hour)
	reg := workspace.NewRegistry(ctx, workspace.Deps{
		Authenticator: services.NewLocalAuthenticator(issuer, log),
		Generator:     services.NewSampleGenerator(10*time.Millisecond, log),
		Clipboard:     services.NewEventClipboard(bus),
		Publisher:     bus,
		Log:           log,
		Settings:      workspace.Settings{NotificationDuration: time.Second},
	}, time.Minute)
	t.Cleanup(reg.Close)

	hub := handlers.NewWSHub(reg, bus, log)
	if err := hub.Start(ctx); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{CORSAllowOrigins: "*", GenerateRateLimitPerMinute: 10}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRouter(app, cfg, log, nil, reg,
		handlers.NewWorkspaceHandler(reg, nil, log),
		handlers.NewAuthHandler(log),
		handlers.NewFormHandler(log),
		handlers.NewGenerationHandler(log),
		hub,
	)
	return &testServer{app: app, reg: reg, bus: bus}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, viewEnvelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, 2000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env viewEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func (s *testServer) create(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/workspaces", nil)
	if code != fiber.StatusCreated {
		t.Fatalf("create workspace = %d", code)
	}
	return "/api/v1/workspaces/" + env.Data.WorkspaceID.String()
}

func TestHealthAndMeta(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/meta/tones", "/api/v1/meta/platforms"} {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

func TestGenerateFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	base := s.create(t)

	code, env := s.do(t, http.MethodPut, base+"/form/fields/product_name", map[string]any{"value": "Acme Widget"})
	if code != fiber.StatusOK || env.Data.Form.ProductName != "Acme Widget" {
		t.Fatalf("set field = %d %+v", code, env)
	}
	code, env = s.do(t, http.MethodPut, base+"/form/fields/char_limit", map[string]any{"value": 140})
	if code != fiber.StatusOK || env.Data.Form.CharLimit != 140 {
		t.Fatalf("char limit = %d %+v", code, env.Data.Form)
	}

	// No session yet: the prompt opens and nothing is dispatched.
	code, env = s.do(t, http.MethodPost, base+"/generate", nil)
	if code != fiber.StatusOK || env.Data.Generation.State != models.GenerationAuthRequired || !env.Data.AuthPrompt.Open {
		t.Fatalf("generate without session = %d %+v", code, env.Data)
	}

	code, env = s.do(t, http.MethodPost, base+"/auth/login", map[string]string{"email": "ada@example.com"})
	if code != fiber.StatusBadRequest || env.Error != workspace.MsgFillAllFields {
		t.Fatalf("login without password = %d %+v", code, env)
	}

	code, env = s.do(t, http.MethodPost, base+"/auth/login", map[string]string{"email": "ada@example.com", "password": "pw"})
	if code != fiber.StatusOK || env.Data.Session == nil || env.Data.Session.DisplayName != "ada@example.com" {
		t.Fatalf("login = %d %+v", code, env.Data.Session)
	}

	code, env = s.do(t, http.MethodPost, base+"/generate", nil)
	if code != fiber.StatusAccepted || env.Data.Generation.CanGenerate {
		t.Fatalf("generate = %d %+v", code, env.Data.Generation)
	}
	if code, _ := s.do(t, http.MethodPost, base+"/generate", nil); code != fiber.StatusConflict {
		t.Fatalf("second generate = %d, want 409", code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for env.Data.Generation.State != models.GenerationReady {
		if time.Now().After(deadline) {
			t.Fatalf("generation never completed: %+v", env.Data.Generation)
		}
		time.Sleep(10 * time.Millisecond)
		_, env = s.do(t, http.MethodGet, base, nil)
	}
	if len(env.Data.Variants) != 3 {
		t.Fatalf("variants = %+v", env.Data.Variants)
	}

	code, env = s.do(t, http.MethodPost, base+"/variants/2/copy", nil)
	if code != fiber.StatusOK || env.Data.Notification == nil || env.Data.Notification.Message != workspace.MsgCopied {
		t.Fatalf("copy = %d %+v", code, env.Data.Notification)
	}

	if code, _ := s.do(t, http.MethodPost, base+"/variants/nope/copy", nil); code != fiber.StatusNotFound {
		t.Fatalf("copy unknown = %d, want 404", code)
	}
	if code, _ := s.do(t, http.MethodPost, base+"/variants/nope/regenerate", nil); code != fiber.StatusNotFound {
		t.Fatalf("regenerate unknown = %d, want 404", code)
	}

	code, env = s.do(t, http.MethodPost, base+"/auth/logout", nil)
	if code != fiber.StatusOK || env.Data.Session != nil || len(env.Data.Variants) != 0 {
		t.Fatalf("logout = %d %+v", code, env.Data)
	}
}

func TestFormErrorsOverHTTP(t *testing.T) {
	s := newTestServer(t)
	base := s.create(t)

	tests := []struct {
		method string
		path   string
		body   any
		want   int
	}{
		{http.MethodPut, "/form/fields/tone", map[string]any{"value": "Sarcastic"}, fiber.StatusBadRequest},
		{http.MethodPut, "/form/fields/budget", map[string]any{"value": "1"}, fiber.StatusBadRequest},
		{http.MethodPut, "/form/fields/char_limit", map[string]any{"value": 5000}, fiber.StatusOK},
		{http.MethodPut, "/form/features/3", map[string]any{"value": "x"}, fiber.StatusBadRequest},
		{http.MethodPut, "/form/features/abc", map[string]any{"value": "x"}, fiber.StatusBadRequest},
		{http.MethodPut, "/form/features/0", map[string]any{"value": strings.Repeat("x", 501)}, fiber.StatusBadRequest},
		{http.MethodDelete, "/form/features/0", nil, fiber.StatusOK},
		{http.MethodPost, "/form/platforms/MySpace/toggle", nil, fiber.StatusBadRequest},
		{http.MethodPost, "/form/platforms/twitter/toggle", nil, fiber.StatusOK},
		{http.MethodPost, "/auth/prompt", map[string]any{"mode": "signup"}, fiber.StatusBadRequest},
		{http.MethodPost, "/auth/prompt", map[string]any{"mode": "register"}, fiber.StatusOK},
		{http.MethodPost, "/auth/login", map[string]any{"email": "a@b.c", "password": strings.Repeat("p", 73)}, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		if code, env := s.do(t, tt.method, base+tt.path, tt.body); code != tt.want {
			t.Errorf("%s %s = %d (%s), want %d", tt.method, tt.path, code, env.Error, tt.want)
		}
	}
}

func TestDeleteWorkspace(t *testing.T) {
	s := newTestServer(t)
	base := s.create(t)

	if code, _ := s.do(t, http.MethodDelete, base, nil); code != fiber.StatusOK {
		t.Fatalf("delete = %d", code)
	}
	if code, _ := s.do(t, http.MethodGet, base, nil); code != fiber.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", code)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/v1/workspaces/not-a-uuid", nil); code != fiber.StatusNotFound {
		t.Fatalf("get invalid id = %d, want 404", code)
	}
}

func TestActivityWithoutAuditStore(t *testing.T) {
	s := newTestServer(t)
	base := s.create(t)

	if code, _ := s.do(t, http.MethodGet, base+"/activity", nil); code != fiber.StatusServiceUnavailable {
		t.Fatalf("activity = %d, want 503", code)
	}
}
