package events

import "context"

// StreamWorkspace carries every event addressed to a browser workspace.
const StreamWorkspace = "events:workspace"

// Event types
const (
	EventWorkspaceUpdated   = "workspace_updated"
	EventNotificationShown  = "notification_shown"
	EventNotificationHidden = "notification_hidden"
	EventClipboardWrite     = "clipboard_write"
)

// PayloadWorkspaceID is the payload key events are routed on.
const PayloadWorkspaceID = "workspace_id"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// WorkspaceID returns the routing key of the event, if any.
func (e Event) WorkspaceID() string {
	id, _ := e.Payload[PayloadWorkspaceID].(string)
	return id
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
