package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adverve/backend/internal/events"
	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type genReply struct {
	variants []models.AdCopyVariant
	err      error
}

type genCall struct {
	ctx   context.Context
	req   models.GenerationRequest
	reply chan genReply
}

// stubGenerator parks every call until the test replies to it.
type stubGenerator struct {
	calls chan *genCall
}

func newStubGenerator() *stubGenerator {
	return &stubGenerator{calls: make(chan *genCall, 16)}
}

func (g *stubGenerator) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AdCopyVariant, error) {
	c := &genCall{ctx: ctx, req: req, reply: make(chan genReply, 1)}
	g.calls <- c
	select {
	case r := <-c.reply:
		return r.variants, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *stubGenerator) next(t *testing.T) *genCall {
	t.Helper()
	select {
	case c := <-g.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("generator was not called")
		return nil
	}
}

func (g *stubGenerator) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-g.calls:
		t.Fatalf("unexpected generation request: %+v", c.req)
	case <-time.After(30 * time.Millisecond):
	}
}

type stubAuthenticator struct {
	err error
}

func (a *stubAuthenticator) Login(_ context.Context, email, secret string) (*models.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &models.Session{ID: uuid.New(), Email: email, Token: "token-" + email, CreatedAt: time.Now()}, nil
}

func (a *stubAuthenticator) Register(_ context.Context, email, secret, name string) (*models.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &models.Session{ID: uuid.New(), Email: email, Name: name, Token: "token-" + email, CreatedAt: time.Now()}, nil
}

type recordingClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (c *recordingClipboard) WriteText(_ context.Context, _ uuid.UUID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func (c *recordingClipboard) written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type recordingAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAuditor) Log(_ context.Context, entry models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, entry.Action)
	return nil
}

// has waits briefly for action to be recorded; audit writes are asynchronous.
func (a *recordingAuditor) has(action string) bool {
	deadline := time.Now().Add(500 * time.Millisecond)
	for {
		if a.recorded(action) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (a *recordingAuditor) recorded(action string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, got := range a.actions {
		if got == action {
			return true
		}
	}
	return false
}

type harness struct {
	ws        *Workspace
	gen       *stubGenerator
	authn     *stubAuthenticator
	clipboard *recordingClipboard
	pub       *recordingPublisher
	auditor   *recordingAuditor
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	h := &harness{
		gen:       newStubGenerator(),
		authn:     &stubAuthenticator{},
		clipboard: &recordingClipboard{},
		pub:       &recordingPublisher{},
		auditor:   &recordingAuditor{},
	}
	h.ws = New(context.Background(), Deps{
		Authenticator: h.authn,
		Generator:     h.gen,
		Clipboard:     h.clipboard,
		Publisher:     h.pub,
		Auditor:       h.auditor,
		Log:           zap.NewNop(),
		Settings:      settings,
	})
	t.Cleanup(h.ws.Close)
	return h
}

func (h *harness) login(t *testing.T) View {
	t.Helper()
	v, err := h.ws.Authenticate(context.Background(), AuthModeLogin, Credentials{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return v
}

// ready drives the workspace to Ready with the given variants.
func (h *harness) ready(t *testing.T, variants []models.AdCopyVariant) View {
	t.Helper()
	if _, err := h.ws.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	h.gen.next(t).reply <- genReply{variants: variants}
	return waitFor(t, h.ws, func(v View) bool { return v.Generation.State == models.GenerationReady })
}

func waitFor(t *testing.T, w *Workspace, cond func(View) bool) View {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		v, err := w.View()
		if err != nil {
			t.Fatalf("view: %v", err)
		}
		if cond(v) {
			return v
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met, last view: %+v", v)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func threeVariants() []models.AdCopyVariant {
	return []models.AdCopyVariant{
		{ID: "1", Platform: models.PlatformFacebook, Content: "Facebook copy"},
		{ID: "2", Platform: models.PlatformInstagram, Content: "Instagram copy"},
		{ID: "3", Platform: models.PlatformLinkedIn, Content: "LinkedIn copy"},
	}
}

var errBoom = errors.New("boom")
