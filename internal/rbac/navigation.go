package rbac

import "github.com/groundops/crew-portal/internal/domain"

// NavLink is a submenu entry.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NavItem is a sidebar entry. RequiresAccess empty means the entry is public
// to every signed-in agent.
type NavItem struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Href           string    `json:"href"`
	RequiresAccess Module    `json:"requires_access,omitempty"`
	Submenu        []NavLink `json:"submenu,omitempty"`
}

// DefaultNavigation is the portal menu in display order.
func DefaultNavigation() []NavItem {
	return []NavItem{
		{ID: "dashboard", Label: "Inicio", Href: "/"},
		{ID: "perfil", Label: "Mi Perfil", Href: "/perfil"},
		{ID: "asignaciones", Label: "Asignaciones", Href: "/asignaciones"},
		{ID: "colaciones", Label: "Colaciones", Href: "/colaciones", Submenu: []NavLink{
			{Label: "Ingreso", Href: "/colaciones/ingreso"},
			{Label: "Retorno", Href: "/colaciones/retorno"},
			{Label: "Historial", Href: "/colaciones/historial"},
		}},
		{ID: "lobby", Label: "Lobby", Href: "/lobby", RequiresAccess: ModuleLobby, Submenu: []NavLink{
			{Label: "GENDEC", Href: "/lobby/gendec"},
			{Label: "Cierres", Href: "/lobby/cierres"},
		}},
		{ID: "crec", Label: "CREC", Href: "/crec", RequiresAccess: ModuleCREC, Submenu: []NavLink{
			{Label: "Vuelos", Href: "/crec/vuelos"},
			{Label: "ZZ", Href: "/crec/zz"},
		}},
		{ID: "backoffice", Label: "Back Office", Href: "/backoffice", RequiresAccess: ModuleBackOffice},
		{ID: "ventas", Label: "Ventas", Href: "/ventas", RequiresAccess: ModuleVentas},
		{ID: "informativos", Label: "Informativos", Href: "/informativos"},
		{ID: "comunidad", Label: "Comunidad SWP", Href: "/comunidad"},
		{ID: "admin", Label: "Administración", Href: "/admin", RequiresAccess: ModuleAdmin},
	}
}

// FilterNavigation drops entries the agent may not access. Pure and
// idempotent; filtering a filtered list returns it unchanged.
func FilterNavigation(items []NavItem, agent *domain.Agent) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		if item.RequiresAccess == "" || CanAccessAgent(agent, item.RequiresAccess) {
			out = append(out, item)
		}
	}
	return out
}
