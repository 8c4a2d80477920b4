package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/rbac"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// AssignmentService handles duty assignment reads and creation. Managing
// assignments is gated on the lobby module, same as the portal UI.
type AssignmentService struct {
	assignments   repository.AssignmentRepository
	agents        repository.AgentRepository
	shifts        repository.ShiftRepository
	notifications *NotificationService
	feed          realtime.Feed
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	AgentRepo      repository.AgentRepository
	ShiftRepo      repository.ShiftRepository
	Notifications  *NotificationService
	Feed           realtime.Feed
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments:   deps.AssignmentRepo,
		agents:        deps.AgentRepo,
		shifts:        deps.ShiftRepo,
		notifications: deps.Notifications,
		feed:          deps.Feed,
	}
}

// ListForDate returns the day's assignments. Agents without lobby access see
// only their own rows; managers see the whole board.
func (s *AssignmentService) ListForDate(ctx context.Context, viewer *domain.Agent, fecha time.Time) ([]domain.Assignment, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("perfil requerido")
	}

	filter := repository.AssignmentFilter{Fecha: &fecha}
	if !rbac.CanAccess(viewer.Grupo, rbac.ModuleLobby) {
		filter.AgenteID = &viewer.ID
	}

	result, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// CreateInput is the new-assignment form.
type CreateInput struct {
	AgenteID        string
	TurnoID         *string
	Terminal        string
	TipoAsignacion  domain.AssignmentType
	FechaAsignacion time.Time
	TareaDetalle    *string
}

// Create posts a new assignment and notifies the assignee.
func (s *AssignmentService) Create(ctx context.Context, actor *domain.Agent, in CreateInput) (*domain.Assignment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("perfil requerido")
	}
	if !rbac.CanAccess(actor.Grupo, rbac.ModuleLobby) {
		return nil, apperrors.NewForbidden("no puede gestionar asignaciones")
	}
	if strings.TrimSpace(in.AgenteID) == "" || strings.TrimSpace(in.Terminal) == "" || in.TipoAsignacion == "" {
		return nil, apperrors.NewValidationError("agente, terminal y tipo de asignación son requeridos", nil)
	}

	assignee, err := s.agents.GetByID(ctx, in.AgenteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agente", map[string]any{"agente_id": in.AgenteID})
		}
		return nil, apperrors.MapError(err)
	}

	if in.TurnoID != nil {
		if _, err := s.shifts.GetByID(ctx, *in.TurnoID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("turno", map[string]any{"turno_id": *in.TurnoID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	assignment := &domain.Assignment{
		AgenteID:        assignee.ID,
		AsignadoPorID:   actor.ID,
		TurnoID:         in.TurnoID,
		Terminal:        in.Terminal,
		TipoAsignacion:  in.TipoAsignacion,
		FechaAsignacion: in.FechaAsignacion,
		TareaDetalle:    in.TareaDetalle,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	assignment.AgenteNombre = assignee.Nombre
	assignment.AgenteGrupo = assignee.Grupo
	assignment.AsignadoPorNombre = actor.Nombre

	if s.notifications != nil {
		contenido := fmt.Sprintf("Nueva asignación: %s en %s el %s",
			assignment.TipoAsignacion, assignment.Terminal,
			assignment.FechaAsignacion.Format("2006-01-02"))
		_ = s.notifications.Notify(ctx, assignee.ID, domain.NotificationAssignment, contenido)
	}

	if s.feed != nil {
		_ = s.feed.Publish(ctx, realtime.ChangeEvent{
			Table:  "asignaciones",
			Action: realtime.ActionInsert,
			RowID:  assignment.ID,
			Columns: map[string]string{
				"agente_id": assignment.AgenteID,
			},
		})
	}
	return assignment, nil
}
