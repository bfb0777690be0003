package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
)

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log appends an audit entry for an administrative mutation. Auditing is
// best-effort: a failed write is logged, never propagated.
func (s *Service) Log(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID string) {
	entry := &model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("failed to write audit log")
	}
}
