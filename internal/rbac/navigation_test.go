package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundops/crew-portal/internal/domain"
)

func navIDs(items []NavItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestFilterNavigation_AdminSeesEverything(t *testing.T) {
	admin := &domain.Agent{Grupo: domain.RoleAdmin}
	filtered := FilterNavigation(DefaultNavigation(), admin)
	assert.Len(t, filtered, len(DefaultNavigation()))
}

func TestFilterNavigation_AgenteSeesOnlyUngated(t *testing.T) {
	agente := &domain.Agent{Grupo: domain.RoleAgente}
	filtered := FilterNavigation(DefaultNavigation(), agente)

	assert.Equal(t,
		[]string{"dashboard", "perfil", "asignaciones", "colaciones", "informativos", "comunidad"},
		navIDs(filtered))
}

func TestFilterNavigation_VentasKeepsVentasEntry(t *testing.T) {
	ventas := &domain.Agent{Grupo: domain.RoleVentas}
	filtered := FilterNavigation(DefaultNavigation(), ventas)

	assert.Contains(t, navIDs(filtered), "ventas")
	assert.NotContains(t, navIDs(filtered), "lobby")
	assert.NotContains(t, navIDs(filtered), "crec")
	assert.NotContains(t, navIDs(filtered), "admin")
}

// A principal without a profile only sees entries with no access requirement.
func TestFilterNavigation_NoProfile(t *testing.T) {
	filtered := FilterNavigation(DefaultNavigation(), nil)
	for _, item := range filtered {
		assert.Emptyf(t, item.RequiresAccess, "item %q should be ungated", item.ID)
	}
	assert.Contains(t, navIDs(filtered), "dashboard")
}

func TestFilterNavigation_Idempotent(t *testing.T) {
	lobby := &domain.Agent{Grupo: domain.RoleLobby}
	once := FilterNavigation(DefaultNavigation(), lobby)
	twice := FilterNavigation(once, lobby)
	assert.Equal(t, once, twice)
}

func TestFilterNavigation_PreservesSubmenus(t *testing.T) {
	crec := &domain.Agent{Grupo: domain.RoleCREC}
	filtered := FilterNavigation(DefaultNavigation(), crec)

	var crecItem *NavItem
	for i := range filtered {
		if filtered[i].ID == "crec" {
			crecItem = &filtered[i]
		}
	}
	require.NotNil(t, crecItem)
	assert.Len(t, crecItem.Submenu, 2)
}
