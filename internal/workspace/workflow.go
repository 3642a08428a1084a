package workspace

import (
	"errors"
	"fmt"

	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
)

// Ticket identifies one dispatched generation. Its outcome is only applied
// while the ticket is still the one in flight for the same session.
type Ticket struct {
	Seq       uint64
	SessionID uuid.UUID
	Request   models.GenerationRequest
}

// Workflow is the generation state machine. It never talks to the generator
// itself: Trigger hands out a ticket, the caller dispatches it and reports back
// through Settle.
type Workflow struct {
	state    models.GenerationState
	lastErr  string
	seq      uint64
	inflight uint64
}

func NewWorkflow() *Workflow {
	return &Workflow{state: models.GenerationIdle}
}

func (f *Workflow) State() models.GenerationState { return f.state }

// Err is the description of the last failure while in the Failed state.
func (f *Workflow) Err() string { return f.lastErr }

func (f *Workflow) CanTrigger() bool { return f.state != models.GenerationPending }

func (f *Workflow) transition(to models.GenerationState) error {
	if !models.IsValidGenerationTransition(f.state, to) {
		return fmt.Errorf("invalid generation transition %s -> %s", f.state, to)
	}
	f.state = to
	return nil
}

// Trigger starts an attempt. Without a session it moves to AuthRequired and
// returns a nil ticket; the attempt does not resume after sign-in.
func (f *Workflow) Trigger(sess *models.Session, req models.GenerationRequest) (*Ticket, error) {
	if f.state == models.GenerationPending {
		return nil, ErrGenerationInFlight
	}
	if sess == nil {
		if err := f.transition(models.GenerationAuthRequired); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := f.transition(models.GenerationPending); err != nil {
		return nil, err
	}
	f.seq++
	f.inflight = f.seq
	f.lastErr = ""
	return &Ticket{Seq: f.seq, SessionID: sess.ID, Request: req}, nil
}

// Settle records the outcome of t and reports whether it was applied. Outcomes
// for superseded tickets or a different (or no) session are dropped.
func (f *Workflow) Settle(t *Ticket, current *models.Session, genErr error) bool {
	if f.state != models.GenerationPending || t == nil || t.Seq != f.inflight {
		return false
	}
	if current == nil || current.ID != t.SessionID {
		return false
	}
	f.inflight = 0
	if genErr != nil {
		f.lastErr = genErr.Error()
		return f.transition(models.GenerationFailed) == nil
	}
	return f.transition(models.GenerationReady) == nil
}

// Reset returns to Idle; used when the session ends.
func (f *Workflow) Reset() {
	f.state = models.GenerationIdle
	f.lastErr = ""
	f.inflight = 0
}

// normalizeVariants enforces the result-set invariants on what the generator
// returned and canonicalises platform names.
func normalizeVariants(variants []models.AdCopyVariant) ([]models.AdCopyVariant, error) {
	if len(variants) == 0 {
		return nil, errors.New("generation service returned no variants")
	}
	out := make([]models.AdCopyVariant, len(variants))
	seen := make(map[string]bool, len(variants))
	for i, v := range variants {
		if v.ID == "" {
			return nil, fmt.Errorf("variant %d has no id", i)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("duplicate variant id %q", v.ID)
		}
		seen[v.ID] = true
		p, ok := models.ParsePlatform(string(v.Platform))
		if !ok {
			return nil, fmt.Errorf("variant %q has unknown platform %q", v.ID, v.Platform)
		}
		v.Platform = p
		out[i] = v
	}
	return out, nil
}
