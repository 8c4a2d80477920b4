package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

func newAssignmentFixture() (*service.AssignmentService, *fakeAssignments, *fakeAgents, *fakeNotifications, *realtime.MemoryFeed) {
	assignments := &fakeAssignments{}
	agents := newFakeAgents()
	notifications := &fakeNotifications{}
	feed := realtime.NewMemoryFeed()
	svc := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: assignments,
		AgentRepo:      agents,
		ShiftRepo:      &fakeShifts{shifts: map[string]*domain.Shift{"t-1": {ID: "t-1", NombreTurno: "AM"}}},
		Notifications:  service.NewNotificationService(notifications, feed, zap.NewNop()),
		Feed:           feed,
	})
	return svc, assignments, agents, notifications, feed
}

func manager() *domain.Agent {
	return &domain.Agent{ID: "mgr-1", Nombre: "Dana Duty", Grupo: domain.RoleDutyManager}
}

func plainAgent() *domain.Agent {
	return &domain.Agent{ID: "ag-1", Nombre: "Juan Pérez", Grupo: domain.RoleAgente}
}

func TestListForDate_AgentSeesOnlyOwnRows(t *testing.T) {
	svc, assignments, agents, _, _ := newAssignmentFixture()
	viewer := plainAgent()
	agents.put(viewer)

	today := time.Now()
	assignments.rows = []*domain.Assignment{
		{ID: "a-1", AgenteID: "ag-1", FechaAsignacion: today},
		{ID: "a-2", AgenteID: "ag-2", FechaAsignacion: today},
	}

	result, err := svc.ListForDate(context.Background(), viewer, today)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ag-1", result[0].AgenteID)
}

func TestListForDate_ManagerSeesWholeBoard(t *testing.T) {
	svc, assignments, _, _, _ := newAssignmentFixture()
	today := time.Now()
	assignments.rows = []*domain.Assignment{
		{ID: "a-1", AgenteID: "ag-1", FechaAsignacion: today},
		{ID: "a-2", AgenteID: "ag-2", FechaAsignacion: today},
	}

	result, err := svc.ListForDate(context.Background(), manager(), today)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestListForDate_NilViewerRejected(t *testing.T) {
	svc, _, _, _, _ := newAssignmentFixture()
	_, err := svc.ListForDate(context.Background(), nil, time.Now())
	require.Error(t, err)
}

func TestCreate_RequiresLobbyAccess(t *testing.T) {
	svc, _, agents, _, _ := newAssignmentFixture()
	agents.put(plainAgent())

	_, err := svc.Create(context.Background(), plainAgent(), service.CreateInput{
		AgenteID:        "ag-1",
		Terminal:        domain.TerminalNacional,
		TipoAsignacion:  domain.AssignmentLobbyNacional,
		FechaAsignacion: time.Now(),
	})

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FORBIDDEN", de.Code)
}

func TestCreate_NotifiesAssigneeAndPublishes(t *testing.T) {
	svc, _, agents, notifications, feed := newAssignmentFixture()
	assignee := plainAgent()
	agents.put(assignee)

	var published []realtime.ChangeEvent
	_, err := feed.Subscribe(context.Background(), "asignaciones", realtime.Filter{}, func(ev realtime.ChangeEvent) {
		published = append(published, ev)
	})
	require.NoError(t, err)

	turno := "t-1"
	created, err := svc.Create(context.Background(), manager(), service.CreateInput{
		AgenteID:        "ag-1",
		TurnoID:         &turno,
		Terminal:        domain.TerminalNacional,
		TipoAsignacion:  domain.AssignmentLobbyNacional,
		FechaAsignacion: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Juan Pérez", created.AgenteNombre)
	assert.Equal(t, "Dana Duty", created.AsignadoPorNombre)

	require.Len(t, notifications.rows, 1)
	assert.Equal(t, "ag-1", notifications.rows[0].DestinatarioID)
	assert.Equal(t, domain.NotificationAssignment, notifications.rows[0].Tipo)
	assert.Contains(t, notifications.rows[0].Contenido, "Nueva asignación")
	assert.Contains(t, notifications.rows[0].Contenido, "2026-08-29")

	require.Len(t, published, 1)
	assert.Equal(t, realtime.ActionInsert, published[0].Action)
	assert.Equal(t, "ag-1", published[0].Columns["agente_id"])
}

func TestCreate_UnknownAssigneeOrShift(t *testing.T) {
	svc, _, agents, _, _ := newAssignmentFixture()
	agents.put(plainAgent())

	_, err := svc.Create(context.Background(), manager(), service.CreateInput{
		AgenteID:        "ag-404",
		Terminal:        domain.TerminalNacional,
		TipoAsignacion:  domain.AssignmentLobbyNacional,
		FechaAsignacion: time.Now(),
	})
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)

	missingShift := "t-404"
	_, err = svc.Create(context.Background(), manager(), service.CreateInput{
		AgenteID:        "ag-1",
		TurnoID:         &missingShift,
		Terminal:        domain.TerminalNacional,
		TipoAsignacion:  domain.AssignmentLobbyNacional,
		FechaAsignacion: time.Now(),
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestCreate_ValidatesRequiredFields(t *testing.T) {
	svc, _, _, _, _ := newAssignmentFixture()

	_, err := svc.Create(context.Background(), manager(), service.CreateInput{
		AgenteID:        " ",
		Terminal:        domain.TerminalNacional,
		TipoAsignacion:  domain.AssignmentLobbyNacional,
		FechaAsignacion: time.Now(),
	})

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
}
