package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// ProfileService handles owner-scoped profile reads and mutations.
type ProfileService struct {
	agents repository.AgentRepository
	feed   realtime.Feed
}

// NewProfileService builds the service.
func NewProfileService(agents repository.AgentRepository, feed realtime.Feed) *ProfileService {
	return &ProfileService{agents: agents, feed: feed}
}

// GetProfile loads the agent profile for a principal.
func (s *ProfileService) GetProfile(ctx context.Context, principalID string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewProfileNotFound(principalID)
		}
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

// UpdateProfile applies the owner-mutable fields to the caller's own row.
// Grupo and id never reach this path: the update type has no slot for them,
// so a submitted role change is dropped, not merged. All submitted fields
// land in one UPDATE; on failure none apply.
func (s *ProfileService) UpdateProfile(ctx context.Context, ownerID string, update repository.AgentFieldUpdate) (*domain.Agent, error) {
	agent, err := s.agents.UpdateFields(ctx, ownerID, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewProfileNotFound(ownerID)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishAgentUpdate(ctx, agent)
	return agent, nil
}

// SetTurnState updates the caller's duty status.
func (s *ProfileService) SetTurnState(ctx context.Context, ownerID string, state domain.TurnState) (*domain.Agent, error) {
	if !state.Valid() {
		return nil, apperrors.NewValidationError("estado de turno desconocido", map[string]any{"estado_turno": state})
	}

	agent, err := s.agents.SetTurnState(ctx, ownerID, state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewProfileNotFound(ownerID)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishAgentUpdate(ctx, agent)
	return agent, nil
}

// ListAgents exposes the roster, used by the dashboard and the admin module.
func (s *ProfileService) ListAgents(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	agents, err := s.agents.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agents, nil
}

func (s *ProfileService) publishAgentUpdate(ctx context.Context, agent *domain.Agent) {
	if s.feed == nil {
		return
	}
	_ = s.feed.Publish(ctx, realtime.ChangeEvent{
		Table:  "agentes",
		Action: realtime.ActionUpdate,
		RowID:  agent.ID,
		Columns: map[string]string{
			"estado_turno": string(agent.EstadoTurno),
		},
	})
}
