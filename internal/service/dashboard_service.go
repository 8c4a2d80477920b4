package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// DashboardService aggregates the station overview numbers.
type DashboardService struct {
	agents      repository.AgentRepository
	assignments repository.AssignmentRepository
	flights     repository.FlightRepository
	feed        realtime.Feed
	logger      *zap.Logger
}

// DashboardDependencies bundles repositories.
type DashboardDependencies struct {
	AgentRepo      repository.AgentRepository
	AssignmentRepo repository.AssignmentRepository
	FlightRepo     repository.FlightRepository
	Feed           realtime.Feed
	Logger         *zap.Logger
}

// NewDashboardService creates the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		agents:      deps.AgentRepo,
		assignments: deps.AssignmentRepo,
		flights:     deps.FlightRepo,
		feed:        deps.Feed,
		logger:      deps.Logger,
	}
}

// Summary is the dashboard headline block.
type Summary struct {
	AgentesEnTurno    int            `json:"agentes_en_turno"`
	AgentesEnColacion int            `json:"agentes_en_colacion"`
	VuelosAbiertos    int            `json:"vuelos_abiertos"`
	VuelosCerrados    int            `json:"vuelos_cerrados"`
	AsignacionesHoy   int            `json:"asignaciones_hoy"`
	EnTurno           []domain.Agent `json:"en_turno"`
}

// BuildSummary computes the dashboard numbers for today.
func (s *DashboardService) BuildSummary(ctx context.Context, now time.Time) (*Summary, error) {
	agents, err := s.agents.List(ctx, repository.AgentFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary := &Summary{}
	for _, agent := range agents {
		switch {
		case agent.EstadoTurno.OnDuty():
			summary.AgentesEnTurno++
			summary.EnTurno = append(summary.EnTurno, agent)
		case agent.EstadoTurno == domain.TurnStateOnBreak:
			summary.AgentesEnColacion++
		}
	}

	if summary.VuelosAbiertos, err = s.flights.CountByStatus(ctx, domain.FlightOpen); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.VuelosCerrados, err = s.flights.CountByStatus(ctx, domain.FlightClosed); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.AsignacionesHoy, err = s.assignments.CountByDate(ctx, now); err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

// WatchChanges subscribes to the tables feeding the dashboard and invokes
// refresh on every change. Callers must Unsubscribe each returned handle on
// teardown.
func (s *DashboardService) WatchChanges(ctx context.Context, refresh func()) ([]*realtime.Subscription, error) {
	tables := []string{"agentes", "vuelos", "asignaciones"}
	subs := make([]*realtime.Subscription, 0, len(tables))
	for _, table := range tables {
		sub, err := s.feed.Subscribe(ctx, table, realtime.Filter{}, func(realtime.ChangeEvent) {
			refresh()
		})
		if err != nil {
			for _, opened := range subs {
				opened.Unsubscribe()
			}
			return nil, apperrors.MapError(err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
