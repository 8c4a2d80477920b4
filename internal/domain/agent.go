package domain

import "time"

// Role enumerates the operational groups ("grupo") an agent can belong to.
// The string values are the stored wire values and match what the frontend
// renders, accents included.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleDutyManager Role = "DUTY MANAGER"
	RoleLobby       Role = "Lobby"
	RoleLider       Role = "Líder"
	RoleCREC        Role = "CREC"
	RoleBackOffice  Role = "Back Office"
	RoleVentas      Role = "Ventas"
	RoleAncillaries Role = "Ancillaries"
	RoleAgente      Role = "Agente"
)

// AllRoles lists every valid group, used for enrollment validation.
var AllRoles = []Role{
	RoleAdmin,
	RoleDutyManager,
	RoleLobby,
	RoleLider,
	RoleCREC,
	RoleBackOffice,
	RoleVentas,
	RoleAncillaries,
	RoleAgente,
}

// Valid reports whether the role is one of the known groups.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Color returns the UI badge token for the group. Unknown groups fall back
// to the neutral gray token.
func (r Role) Color() string {
	switch r {
	case RoleAdmin:
		return "bg-red-500"
	case RoleDutyManager:
		return "bg-purple-500"
	case RoleLobby:
		return "bg-blue-500"
	case RoleLider:
		return "bg-green-500"
	case RoleCREC:
		return "bg-yellow-500"
	case RoleBackOffice:
		return "bg-orange-500"
	case RoleVentas:
		return "bg-pink-500"
	case RoleAncillaries:
		return "bg-gray-500"
	case RoleAgente:
		return "bg-indigo-500"
	default:
		return "bg-gray-400"
	}
}

// TurnState enumerates an agent's real-time duty status ("estado_turno").
type TurnState string

const (
	TurnStateAvailable TurnState = "Disponible"
	TurnStateOnBreak   TurnState = "En Colación"
	TurnStateOffDuty   TurnState = "Fuera de Turno"
	TurnStateBusy      TurnState = "Ocupado"
	TurnStateInFlight  TurnState = "En Vuelo"
)

// Valid reports whether the state is a known duty status.
func (t TurnState) Valid() bool {
	switch t {
	case TurnStateAvailable, TurnStateOnBreak, TurnStateOffDuty, TurnStateBusy, TurnStateInFlight:
		return true
	}
	return false
}

// Emoji returns the status indicator shown next to an agent. Unknown states
// render as the neutral circle.
func (t TurnState) Emoji() string {
	switch t {
	case TurnStateAvailable:
		return "🟢"
	case TurnStateOnBreak:
		return "🍔"
	case TurnStateOffDuty:
		return "🏠"
	case TurnStateBusy:
		return "🔴"
	case TurnStateInFlight:
		return "✈️"
	default:
		return "⚪"
	}
}

// OnDuty reports whether the state counts toward the on-shift headcount.
func (t TurnState) OnDuty() bool {
	return t == TurnStateAvailable || t == TurnStateBusy
}

// Agent is the staff profile linked one-to-one to a principal. Agent.ID is
// the principal id (shared primary key).
type Agent struct {
	ID             string
	Nombre         string
	UsuarioSabre   string
	Grupo          Role
	Email          string
	Telefono       *string
	EstadoTurno    TurnState
	FotoPerfilURL  *string
	FotoPortadaURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
