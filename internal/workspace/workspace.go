package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adverve/backend/internal/events"
	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultNotificationDuration = 2 * time.Second
	publishTimeout              = 2 * time.Second
	auditTimeout                = 5 * time.Second
)

type Settings struct {
	NotificationDuration time.Duration
	// GenerationTimeout bounds one generator call; zero means no bound.
	GenerationTimeout time.Duration
}

type Deps struct {
	Authenticator Authenticator
	Generator     Generator
	Clipboard     Clipboard
	Publisher     events.Publisher // optional
	Auditor       Auditor          // optional
	Log           *zap.Logger
	Settings      Settings
}

// Workspace is the state of one client: session, campaign form, generation
// workflow, result panel and notification slot. All of it is owned by a single
// loop goroutine; every operation is a message executed there, so mutations
// never interleave. The generator call is the only work done off the loop and
// its outcome comes back as another message.
type Workspace struct {
	id        uuid.UUID
	createdAt time.Time
	deps      Deps
	log       *zap.Logger

	session *SessionManager
	form    *CampaignForm
	flow    *Workflow
	review  *ReviewPanel
	notice  *Notifier

	ctx       context.Context
	cancel    context.CancelFunc
	inbox     chan func()
	stopped   chan struct{}
	closeOnce sync.Once
}

func New(parent context.Context, deps Deps) *Workspace {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Auditor == nil {
		deps.Auditor = nopAuditor{}
	}
	if deps.Settings.NotificationDuration <= 0 {
		deps.Settings.NotificationDuration = DefaultNotificationDuration
	}

	id := uuid.New()
	log := deps.Log.With(zap.String("workspace_id", id.String()))
	ctx, cancel := context.WithCancel(parent)

	w := &Workspace{
		id:        id,
		createdAt: time.Now(),
		deps:      deps,
		log:       log,
		session:   NewSessionManager(deps.Authenticator, log),
		form:      NewCampaignForm(log),
		flow:      NewWorkflow(),
		review:    NewReviewPanel(deps.Clipboard),
		notice:    NewNotifier(),
		ctx:       ctx,
		cancel:    cancel,
		inbox:     make(chan func()),
		stopped:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Workspace) ID() uuid.UUID { return w.id }

func (w *Workspace) CreatedAt() time.Time { return w.createdAt }

// Close stops the loop. Outstanding generations are cancelled and their
// outcomes discarded.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		w.cancel()
		w.log.Debug("workspace closed")
	})
}

// Done is closed once the loop has exited.
func (w *Workspace) Done() <-chan struct{} { return w.stopped }

func (w *Workspace) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.ctx.Done():
			return
		case task := <-w.inbox:
			w.exec(task)
		}
	}
}

func (w *Workspace) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("workspace task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

// do runs fn on the loop and waits for it.
func (w *Workspace) do(fn func()) error {
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}
	select {
	case <-w.ctx.Done():
		return ErrWorkspaceClosed
	case w.inbox <- task:
	}
	<-done
	return nil
}

// post queues fn from outside the loop without waiting. It is dropped once
// the workspace is closed.
func (w *Workspace) post(fn func()) {
	select {
	case <-w.ctx.Done():
	case w.inbox <- fn:
	}
}

var errAborted = errors.New("workspace operation aborted")

// apply runs op on the loop, publishes the resulting state and returns it.
func (w *Workspace) apply(op func() error) (View, error) {
	var (
		view  View
		opErr = errAborted
	)
	err := w.do(func() {
		opErr = op()
		view = w.view()
		w.publishView(view)
	})
	if err != nil {
		return View{}, err
	}
	return view, opErr
}

// View returns the current state without changing it.
func (w *Workspace) View() (View, error) {
	var view View
	if err := w.do(func() { view = w.view() }); err != nil {
		return View{}, err
	}
	return view, nil
}

func (w *Workspace) OpenAuthPrompt(mode AuthMode) (View, error) {
	return w.apply(func() error {
		w.session.OpenPrompt(mode)
		return nil
	})
}

func (w *Workspace) CloseAuthPrompt() (View, error) {
	return w.apply(func() error {
		w.session.ClosePrompt()
		return nil
	})
}

func (w *Workspace) SwitchAuthMode() (View, error) {
	return w.apply(func() error {
		w.session.SwitchMode()
		return nil
	})
}

// Authenticate signs in. An active session is ended first, with the same
// cascade as Logout.
func (w *Workspace) Authenticate(ctx context.Context, mode AuthMode, creds Credentials) (View, error) {
	return w.apply(func() error {
		prev := w.session.Current()
		sess, err := w.session.Authenticate(ctx, mode, creds)
		if err != nil {
			return err
		}
		if prev != nil {
			w.endSession(prev)
		}
		w.log.Info("session started", zap.String("mode", string(mode)), zap.String("session_id", sess.ID.String()))
		w.audit(sess, models.AuditSessionStarted, map[string]any{"mode": string(mode)})
		return nil
	})
}

// Logout ends the session and drops the result set, whatever the workflow was doing.
func (w *Workspace) Logout() (View, error) {
	return w.apply(func() error {
		prev := w.session.End()
		if prev == nil {
			w.flow.Reset()
			w.review.Clear()
			return nil
		}
		w.endSession(prev)
		return nil
	})
}

// endSession drops everything tied to prev. The session slot itself is
// handled by the caller.
func (w *Workspace) endSession(prev *models.Session) {
	w.flow.Reset()
	w.review.Clear()
	w.log.Info("session ended", zap.String("session_id", prev.ID.String()))
	w.audit(prev, models.AuditSessionEnded, nil)
}

func (w *Workspace) SetField(name, value string) (View, error) {
	return w.apply(func() error { return w.form.SetField(name, value) })
}

func (w *Workspace) AddFeature() (View, error) {
	return w.apply(func() error {
		w.form.AddFeature()
		return nil
	})
}

func (w *Workspace) UpdateFeature(index int, value string) (View, error) {
	return w.apply(func() error { return w.form.UpdateFeature(index, value) })
}

func (w *Workspace) RemoveFeature(index int) (View, error) {
	return w.apply(func() error { return w.form.RemoveFeature(index) })
}

func (w *Workspace) TogglePlatform(platform string) (View, error) {
	return w.apply(func() error { return w.form.TogglePlatform(platform) })
}

// Generate snapshots the form and starts a generation, or asks for sign-in.
func (w *Workspace) Generate() (View, error) {
	return w.apply(func() error {
		return w.trigger(models.GenerationRequest{CampaignInput: w.form.Snapshot()})
	})
}

// Regenerate reruns generation for one variant, scoped to its platform. Only
// that variant's content changes when the new copy arrives.
func (w *Workspace) Regenerate(variantID string) (View, error) {
	return w.apply(func() error {
		v, err := w.review.Lookup(variantID)
		if err != nil {
			return err
		}
		in := w.form.Snapshot()
		in.Platforms = []models.Platform{v.Platform}
		return w.trigger(models.GenerationRequest{CampaignInput: in, VariantID: v.ID})
	})
}

// Copy puts a variant on the clipboard and raises exactly one notification,
// a success or a failure one.
func (w *Workspace) Copy(ctx context.Context, variantID string) (View, error) {
	return w.apply(func() error {
		v, err := w.review.Copy(ctx, w.id, variantID)
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		if err != nil {
			w.log.Warn("copy to clipboard failed", zap.String("variant_id", variantID), zap.Error(err))
			w.notify(MsgCopyFailed, NotificationError)
			return nil
		}
		w.notify(MsgCopied, NotificationSuccess)
		w.audit(w.session.Current(), models.AuditVariantCopied, map[string]any{
			"variant_id": v.ID,
			"platform":   string(v.Platform),
		})
		return nil
	})
}

func (w *Workspace) trigger(req models.GenerationRequest) error {
	sess := w.session.Current()
	t, err := w.flow.Trigger(sess, req)
	if err != nil {
		return err
	}
	if t == nil {
		w.session.OpenPrompt("")
		return nil
	}

	w.log.Info("generation dispatched",
		zap.Uint64("seq", t.Seq),
		zap.String("variant_id", req.VariantID),
		zap.Int("platforms", len(req.Platforms)),
	)
	w.audit(sess, models.AuditGenerationRequested, map[string]any{
		"seq":        t.Seq,
		"variant_id": req.VariantID,
		"platforms":  req.Platforms,
		"tone":       string(req.Tone),
	})

	scoped := *sess
	go w.dispatch(t, &scoped)
	return nil
}

// dispatch calls the generator off the loop and posts the outcome back.
func (w *Workspace) dispatch(t *Ticket, sess *models.Session) {
	ctx := ContextWithSession(w.ctx, sess)
	if d := w.deps.Settings.GenerationTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	start := time.Now()
	variants, err := w.deps.Generator.Generate(ctx, t.Request)
	if err == nil {
		variants, err = normalizeVariants(variants)
	}
	if err != nil {
		err = &GenerationFailure{Err: err}
	}
	took := time.Since(start)

	w.post(func() { w.settle(t, variants, err, took) })
}

func (w *Workspace) settle(t *Ticket, variants []models.AdCopyVariant, genErr error, took time.Duration) {
	current := w.session.Current()
	if !w.flow.Settle(t, current, genErr) {
		w.log.Info("stale generation outcome dropped", zap.Uint64("seq", t.Seq))
		return
	}

	if genErr != nil {
		w.log.Warn("generation failed", zap.Uint64("seq", t.Seq), zap.Duration("took", took), zap.Error(genErr))
		w.audit(current, models.AuditGenerationFailed, map[string]any{"seq": t.Seq, "error": genErr.Error()})
	} else {
		if id := t.Request.VariantID; id != "" {
			if !w.review.ReplaceContent(id, pickVariant(variants, t.Request.Platforms).Content) {
				w.log.Warn("regenerated variant no longer present", zap.String("variant_id", id))
			}
		} else {
			w.review.Replace(variants)
		}
		w.log.Info("generation ready", zap.Uint64("seq", t.Seq), zap.Int("variants", len(variants)), zap.Duration("took", took))
		w.audit(current, models.AuditGenerationSucceeded, map[string]any{"seq": t.Seq, "variants": len(variants)})
	}

	w.publishView(w.view())
}

// pickVariant prefers a variant for the requested platform.
func pickVariant(variants []models.AdCopyVariant, platforms []models.Platform) models.AdCopyVariant {
	for _, v := range variants {
		for _, p := range platforms {
			if v.Platform == p {
				return v
			}
		}
	}
	return variants[0]
}

func (w *Workspace) notify(message string, level NotificationLevel) {
	d := w.deps.Settings.NotificationDuration
	note := w.notice.Show(message, level, d)
	w.publish(events.EventNotificationShown, map[string]any{"notification": note})

	id := note.ID
	time.AfterFunc(d, func() {
		w.post(func() {
			if w.notice.Expire(id) {
				w.publish(events.EventNotificationHidden, map[string]any{"notification_id": id})
			}
		})
	})
}

func (w *Workspace) publishView(v View) {
	w.publish(events.EventWorkspaceUpdated, map[string]any{"view": v})
}

func (w *Workspace) publish(eventType string, payload map[string]any) {
	if w.deps.Publisher == nil {
		return
	}
	payload[events.PayloadWorkspaceID] = w.id.String()

	ctx, cancel := context.WithTimeout(w.ctx, publishTimeout)
	defer cancel()
	if err := w.deps.Publisher.Publish(ctx, events.StreamWorkspace, events.Event{Type: eventType, Payload: payload}); err != nil {
		w.log.Warn("failed to publish workspace event", zap.String("type", eventType), zap.Error(err))
	}
}

func (w *Workspace) audit(actor *models.Session, action string, meta map[string]any) {
	id := w.id
	entry := models.AuditLog{
		ActorType:  "user",
		Action:     action,
		EntityType: models.AuditEntityWorkspace,
		EntityID:   &id,
		Meta:       meta,
	}
	if actor != nil {
		email := actor.Email
		entry.ActorEmail = &email
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := w.deps.Auditor.Log(ctx, entry); err != nil {
			w.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
		}
	}()
}
