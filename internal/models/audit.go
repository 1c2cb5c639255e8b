package models

import "time"

// Audit actions recorded by the provisioning workflows.
const (
	AuditActionCreate = "user.create"
	AuditActionUpdate = "user.update"
	AuditActionDelete = "user.delete"
)

// Audit outcomes.
const (
	AuditOutcomeSucceeded = "succeeded"
	AuditOutcomeFailed    = "failed"
)

// AuditEntry records one provisioning action taken through the console.
type AuditEntry struct {
	ID          string    `db:"id" json:"id"`
	Action      string    `db:"action" json:"action"`
	ActorID     string    `db:"actor_id" json:"actor_id"`
	TargetEmail string    `db:"target_email" json:"target_email"`
	TargetRole  string    `db:"target_role" json:"target_role"`
	Outcome     string    `db:"outcome" json:"outcome"`
	Detail      *string   `db:"detail" json:"detail,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
