package services

import (
	"context"

	"github.com/adverve/backend/internal/events"
	"github.com/google/uuid"
)

// EventClipboard asks the workspace's browser to write text to its clipboard.
// A write only fails when the event cannot be delivered to the bus.
type EventClipboard struct {
	publisher events.Publisher
}

func NewEventClipboard(publisher events.Publisher) *EventClipboard {
	return &EventClipboard{publisher: publisher}
}

func (c *EventClipboard) WriteText(ctx context.Context, workspaceID uuid.UUID, text string) error {
	return c.publisher.Publish(ctx, events.StreamWorkspace, events.Event{
		Type: events.EventClipboardWrite,
		Payload: map[string]any{
			events.PayloadWorkspaceID: workspaceID.String(),
			"text":                    text,
		},
	})
}
