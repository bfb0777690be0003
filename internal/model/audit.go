package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records an administrative mutation.
type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ActorID    uuid.UUID `json:"actor_id" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
