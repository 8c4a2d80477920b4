package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundops/crew-portal/internal/api/dto"
	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

func seedAgent(agents *fakeAgents) *domain.Agent {
	agent := &domain.Agent{
		ID:           "p-1",
		Nombre:       "Juan Pérez",
		UsuarioSabre: "JPEREZ",
		Grupo:        domain.RoleAgente,
		Email:        "jperez@swp.cl",
		EstadoTurno:  domain.TurnStateOffDuty,
	}
	agents.put(agent)
	return agent
}

func TestGetProfile_MissingRowMapsToProfileNotFound(t *testing.T) {
	svc := service.NewProfileService(newFakeAgents(), realtime.NewMemoryFeed())

	_, err := svc.GetProfile(context.Background(), "p-404")

	require.Error(t, err)
	assert.True(t, apperrors.IsProfileNotFound(err))
}

func TestUpdateProfile_AppliesOwnerFields(t *testing.T) {
	agents := newFakeAgents()
	seedAgent(agents)
	svc := service.NewProfileService(agents, realtime.NewMemoryFeed())

	nombre := "Juan P. Pérez"
	telefono := "+56 9 1234 5678"
	updated, err := svc.UpdateProfile(context.Background(), "p-1", dto.UpdateProfileRequest{
		Nombre:   &nombre,
		Telefono: &telefono,
	}.ToFieldUpdate())

	require.NoError(t, err)
	assert.Equal(t, "Juan P. Pérez", updated.Nombre)
	require.NotNil(t, updated.Telefono)
	assert.Equal(t, "+56 9 1234 5678", *updated.Telefono)
	assert.Equal(t, domain.RoleAgente, updated.Grupo)
}

// A payload carrying id and grupo must not change either: the role stays put
// and the row addressed is the session owner's, not the submitted id.
func TestUpdateProfile_SubmittedRoleAndIDAreDropped(t *testing.T) {
	agents := newFakeAgents()
	seedAgent(agents)
	victim := &domain.Agent{ID: "p-2", Nombre: "Otra Persona", Grupo: domain.RoleAdmin}
	agents.put(victim)
	svc := service.NewProfileService(agents, realtime.NewMemoryFeed())

	payload := []byte(`{"id":"p-2","grupo":"ADMIN","nombre":"Hacker"}`)
	var req dto.UpdateProfileRequest
	require.NoError(t, json.Unmarshal(payload, &req))

	updated, err := svc.UpdateProfile(context.Background(), "p-1", req.ToFieldUpdate())
	require.NoError(t, err)

	assert.Equal(t, "p-1", agents.lastUpdated, "update must target the session owner")
	assert.Equal(t, "Hacker", updated.Nombre, "allowed fields still apply")
	assert.Equal(t, domain.RoleAgente, updated.Grupo, "grupo must not change")

	other, err := agents.GetByID(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, "Otra Persona", other.Nombre, "other rows must be untouched")
}

func TestSetTurnState_PublishesChange(t *testing.T) {
	agents := newFakeAgents()
	seedAgent(agents)
	feed := realtime.NewMemoryFeed()
	svc := service.NewProfileService(agents, feed)

	var seen []realtime.ChangeEvent
	_, err := feed.Subscribe(context.Background(), "agentes", realtime.Filter{}, func(ev realtime.ChangeEvent) {
		seen = append(seen, ev)
	})
	require.NoError(t, err)

	updated, err := svc.SetTurnState(context.Background(), "p-1", domain.TurnStateAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.TurnStateAvailable, updated.EstadoTurno)

	require.Len(t, seen, 1)
	assert.Equal(t, realtime.ActionUpdate, seen[0].Action)
	assert.Equal(t, "p-1", seen[0].RowID)
	assert.Equal(t, string(domain.TurnStateAvailable), seen[0].Columns["estado_turno"])
}

func TestSetTurnState_RejectsUnknownState(t *testing.T) {
	agents := newFakeAgents()
	seedAgent(agents)
	svc := service.NewProfileService(agents, realtime.NewMemoryFeed())

	_, err := svc.SetTurnState(context.Background(), "p-1", "Descansando")

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
}

func TestListAgents_FiltersByGroup(t *testing.T) {
	agents := newFakeAgents()
	seedAgent(agents)
	agents.put(&domain.Agent{ID: "p-2", Nombre: "Duty", Grupo: domain.RoleDutyManager})
	svc := service.NewProfileService(agents, realtime.NewMemoryFeed())

	grupo := domain.RoleDutyManager
	result, err := svc.ListAgents(context.Background(), repository.AgentFilter{Grupo: &grupo})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "p-2", result[0].ID)
}
