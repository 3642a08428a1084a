package repositories

import (
	"context"
	"fmt"

	"github.com/adverve/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultActivityPage = 50
	maxActivityPage     = 200
)

// AuditFilter narrows a workspace activity listing. Empty ActorEmail or
// Action match every entry.
type AuditFilter struct {
	ActorEmail string
	Action     string
	Limit      int
	Offset     int
}

// page clamps the filter to a usable window.
func (f AuditFilter) page() (limit, offset int) {
	limit, offset = f.Limit, f.Offset
	if limit <= 0 {
		limit = defaultActivityPage
	}
	if limit > maxActivityPage {
		limit = maxActivityPage
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Log satisfies workspace.Auditor.
func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (actor_email, actor_type, action, entity_type, entity_id, meta)
		VALUES (@actor_email, @actor_type, @action, @entity_type, @entity_id, @meta)
	`, pgx.NamedArgs{
		"actor_email": entry.ActorEmail,
		"actor_type":  entry.ActorType,
		"action":      entry.Action,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"meta":        entry.Meta,
	})
	if err != nil {
		return fmt.Errorf("insert audit entry %s: %w", entry.Action, err)
	}
	return nil
}

// ListWorkspace returns a workspace's activity, newest first.
func (r *AuditRepo) ListWorkspace(ctx context.Context, workspaceID uuid.UUID, f AuditFilter) ([]models.AuditLog, error) {
	limit, offset := f.page()
	rows, err := r.pool.Query(ctx, `
		SELECT id, actor_email, actor_type, action, entity_type, entity_id, meta, created_at
		FROM audit_log
		WHERE entity_type = @entity_type AND entity_id = @entity_id
		  AND (@actor_email::text = '' OR actor_email = @actor_email)
		  AND (@action::text = '' OR action = @action)
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset
	`, pgx.NamedArgs{
		"entity_type": models.AuditEntityWorkspace,
		"entity_id":   workspaceID,
		"actor_email": f.ActorEmail,
		"action":      f.Action,
		"limit":       limit,
		"offset":      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("query workspace activity: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var l models.AuditLog
		err := row.Scan(&l.ID, &l.ActorEmail, &l.ActorType, &l.Action, &l.EntityType, &l.EntityID, &l.Meta, &l.CreatedAt)
		return l, err
	})
}
