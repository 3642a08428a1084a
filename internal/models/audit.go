package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditSessionStarted      = "session_started"
	AuditSessionEnded        = "session_ended"
	AuditGenerationRequested = "generation_requested"
	AuditGenerationSucceeded = "generation_succeeded"
	AuditGenerationFailed    = "generation_failed"
	AuditVariantCopied       = "variant_copied"
)

// AuditEntityWorkspace is the entity type of every workspace activity entry.
const AuditEntityWorkspace = "workspace"

type AuditLog struct {
	ID         uuid.UUID  `json:"id"`
	ActorEmail *string    `json:"actor_email,omitempty"`
	ActorType  string     `json:"actor_type"` // user/system
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Meta       any        `json:"meta,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
