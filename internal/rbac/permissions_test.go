package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groundops/crew-portal/internal/domain"
)

func TestCanAccess_PermissionTable(t *testing.T) {
	cases := []struct {
		role    domain.Role
		module  Module
		allowed bool
	}{
		{domain.RoleAdmin, ModuleLobby, true},
		{domain.RoleAdmin, ModuleCREC, true},
		{domain.RoleAdmin, ModuleBackOffice, true},
		{domain.RoleAdmin, ModuleVentas, true},
		{domain.RoleAdmin, ModuleAdmin, true},

		{domain.RoleDutyManager, ModuleLobby, true},
		{domain.RoleDutyManager, ModuleAdmin, true},

		{domain.RoleLobby, ModuleLobby, true},
		{domain.RoleLobby, ModuleVentas, true},
		{domain.RoleLobby, ModuleCREC, false},
		{domain.RoleLobby, ModuleAdmin, false},

		{domain.RoleLider, ModuleLobby, true},
		{domain.RoleLider, ModuleVentas, true},
		{domain.RoleLider, ModuleBackOffice, false},

		{domain.RoleCREC, ModuleCREC, true},
		{domain.RoleCREC, ModuleLobby, true},
		{domain.RoleCREC, ModuleVentas, false},

		{domain.RoleBackOffice, ModuleBackOffice, true},
		{domain.RoleBackOffice, ModuleLobby, true},
		{domain.RoleBackOffice, ModuleCREC, false},

		{domain.RoleVentas, ModuleVentas, true},
		{domain.RoleVentas, ModuleLobby, false},
		{domain.RoleVentas, ModuleCREC, false},

		{domain.RoleAncillaries, ModuleLobby, false},
		{domain.RoleAncillaries, ModuleVentas, false},

		{domain.RoleAgente, ModuleLobby, false},
		{domain.RoleAgente, ModuleCREC, false},
		{domain.RoleAgente, ModuleBackOffice, false},
		{domain.RoleAgente, ModuleVentas, false},
		{domain.RoleAgente, ModuleAdmin, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanAccess(tc.role, tc.module),
			"role %q on module %q", tc.role, tc.module)
	}
}

// Modules absent from the table are open to every role, even unknown ones.
func TestCanAccess_UnlistedModuleIsOpen(t *testing.T) {
	for _, role := range domain.AllRoles {
		assert.Truef(t, CanAccess(role, "informativos"), "role %q", role)
		assert.Truef(t, CanAccess(role, "comunidad"), "role %q", role)
	}
	assert.True(t, CanAccess("rol inexistente", "informativos"))
}

func TestCanAccess_UnknownRoleDeniedOnListedModules(t *testing.T) {
	for _, module := range GatedModules() {
		assert.Falsef(t, CanAccess("rol inexistente", module), "module %q", module)
	}
}

func TestCanAccessAgent_NilProfile(t *testing.T) {
	for _, module := range GatedModules() {
		assert.Falsef(t, CanAccessAgent(nil, module), "module %q", module)
	}
	assert.True(t, CanAccessAgent(nil, "informativos"))
}

func TestCanAccessAgent_UsesProfileGroup(t *testing.T) {
	agent := &domain.Agent{Grupo: domain.RoleVentas}
	assert.True(t, CanAccessAgent(agent, ModuleVentas))
	assert.False(t, CanAccessAgent(agent, ModuleCREC))
}
