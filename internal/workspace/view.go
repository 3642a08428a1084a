package workspace

import (
	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
)

// View is a read-only copy of everything a client renders.
type View struct {
	WorkspaceID  uuid.UUID              `json:"workspace_id"`
	Session      *SessionView           `json:"session"`
	AuthPrompt   AuthPrompt             `json:"auth_prompt"`
	Form         models.CampaignInput   `json:"form"`
	Generation   GenerationView         `json:"generation"`
	Variants     []models.AdCopyVariant `json:"variants"`
	Notification *Notification          `json:"notification"`
}

type SessionView struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
}

type GenerationView struct {
	State       models.GenerationState `json:"state"`
	Error       string                 `json:"error,omitempty"`
	CanGenerate bool                   `json:"can_generate"`
}

func (w *Workspace) view() View {
	v := View{
		WorkspaceID: w.id,
		AuthPrompt:  w.session.Prompt(),
		Form:        w.form.Snapshot(),
		Generation: GenerationView{
			State:       w.flow.State(),
			Error:       w.flow.Err(),
			CanGenerate: w.flow.CanTrigger(),
		},
		Variants:     w.review.Variants(),
		Notification: w.notice.Current(),
	}
	if s := w.session.Current(); s != nil {
		v.Session = &SessionView{Email: s.Email, Name: s.Name, DisplayName: s.DisplayName()}
	}
	return v
}
