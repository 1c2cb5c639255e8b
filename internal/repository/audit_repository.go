package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/macquiz/admin-console-api/internal/models"
)

// AuditRepository persists the provisioning audit trail. A nil db disables
// the trail: writes are dropped and reads come back empty.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert records one provisioning action. The id and timestamp are assigned
// here so callers only describe what happened.
func (r *AuditRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	if r.db == nil {
		return nil
	}
	const query = `INSERT INTO provisioning_audit (id, action, actor_id, target_email, target_role, outcome, detail, created_at)
VALUES (:id, :action, :actor_id, :target_email, :target_role, :outcome, :detail, :created_at)`
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first, capped at limit.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if r.db == nil {
		return nil, nil
	}
	const query = `SELECT id, action, actor_id, target_email, target_role, outcome, detail, created_at
FROM provisioning_audit ORDER BY created_at DESC LIMIT $1`
	var entries []models.AuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

// ListByActor returns the newest entries recorded for a single actor.
func (r *AuditRepository) ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditEntry, error) {
	if r.db == nil {
		return nil, nil
	}
	const query = `SELECT id, action, actor_id, target_email, target_role, outcome, detail, created_at
FROM provisioning_audit WHERE actor_id = $1 ORDER BY created_at DESC LIMIT $2`
	var entries []models.AuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, actorID, limit); err != nil {
		return nil, fmt.Errorf("list audit entries for actor %s: %w", actorID, err)
	}
	return entries, nil
}
