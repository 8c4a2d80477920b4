// Package rbac holds the static module permission table and the navigation
// filter. Checks are pure functions of (role, module); callers re-derive
// access from the freshest profile snapshot on every request.
package rbac

import "github.com/groundops/crew-portal/internal/domain"

// Module names a role-gated functional area of the portal.
type Module string

const (
	ModuleLobby      Module = "lobby"
	ModuleCREC       Module = "crec"
	ModuleBackOffice Module = "backoffice"
	ModuleVentas     Module = "ventas"
	ModuleAdmin      Module = "admin"
)

// modulePermissions is fixed at build time. Modules absent from the table are
// open to every role; that asymmetry (fail closed for listed modules, fail
// open for unlisted ones) matches the shipped portal and is kept on purpose.
var modulePermissions = map[Module][]domain.Role{
	ModuleLobby:      {domain.RoleAdmin, domain.RoleDutyManager, domain.RoleLobby, domain.RoleLider, domain.RoleCREC, domain.RoleBackOffice},
	ModuleCREC:       {domain.RoleAdmin, domain.RoleDutyManager, domain.RoleCREC},
	ModuleBackOffice: {domain.RoleAdmin, domain.RoleDutyManager, domain.RoleBackOffice},
	ModuleVentas:     {domain.RoleAdmin, domain.RoleDutyManager, domain.RoleVentas, domain.RoleLobby, domain.RoleLider},
	ModuleAdmin:      {domain.RoleAdmin, domain.RoleDutyManager},
}

// CanAccess reports whether the role may enter the module. Unknown roles are
// denied on listed modules; unlisted modules admit everyone.
func CanAccess(role domain.Role, module Module) bool {
	allowed, gated := modulePermissions[module]
	if !gated {
		return true
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// CanAccessAgent applies CanAccess to a possibly-missing profile. An
// authenticated principal without a profile has no role: gated modules are
// denied, ungated modules stay open.
func CanAccessAgent(agent *domain.Agent, module Module) bool {
	if agent == nil {
		_, gated := modulePermissions[module]
		return !gated
	}
	return CanAccess(agent.Grupo, module)
}

// GatedModules returns the listed modules, for tests and admin tooling.
func GatedModules() []Module {
	out := make([]Module, 0, len(modulePermissions))
	for module := range modulePermissions {
		out = append(out, module)
	}
	return out
}
