package domain

import "time"

// AssignmentType enumerates the duty categories an agent can be posted to.
type AssignmentType string

const (
	AssignmentZZ               AssignmentType = "ZZ"
	AssignmentSpecialNeeds     AssignmentType = "Necesidades Especiales"
	AssignmentLYFT1            AssignmentType = "LYF T1"
	AssignmentLYFT2            AssignmentType = "LYF T2"
	AssignmentCobrador         AssignmentType = "Cobrador"
	AssignmentAgentP1          AssignmentType = "Agente P1"
	AssignmentAgentP2          AssignmentType = "Agente P2"
	AssignmentAgentP3          AssignmentType = "Agente P3"
	AssignmentLobbyNacional    AssignmentType = "Lobby Nacional"
	AssignmentLobbyInter       AssignmentType = "Lobby Inter"
	AssignmentLiderCounterNac  AssignmentType = "Líder Counter Nac"
	AssignmentLiderCounterInt  AssignmentType = "Líder Counter Inter"
)

// Color returns the UI badge token for the assignment type, gray for
// anything unrecognized.
func (t AssignmentType) Color() string {
	switch t {
	case AssignmentZZ:
		return "bg-red-500"
	case AssignmentSpecialNeeds:
		return "bg-purple-500"
	case AssignmentLYFT1:
		return "bg-blue-500"
	case AssignmentLYFT2:
		return "bg-green-500"
	case AssignmentCobrador:
		return "bg-yellow-500"
	case AssignmentAgentP1:
		return "bg-indigo-500"
	case AssignmentAgentP2:
		return "bg-pink-500"
	case AssignmentAgentP3:
		return "bg-orange-500"
	case AssignmentLobbyNacional:
		return "bg-cyan-500"
	case AssignmentLobbyInter:
		return "bg-teal-500"
	case AssignmentLiderCounterNac:
		return "bg-gray-500"
	case AssignmentLiderCounterInt:
		return "bg-slate-500"
	default:
		return "bg-gray-400"
	}
}

// Terminal names used across assignments and flights.
const (
	TerminalNacional      = "Terminal 1 NAC"
	TerminalInternacional = "Terminal 2 INTER"
)

// TerminalColor returns the badge token for a terminal.
func TerminalColor(terminal string) string {
	if terminal == TerminalNacional {
		return "bg-blue-500"
	}
	return "bg-green-500"
}

// Assignment is a dated work-duty record. Immutable once created.
type Assignment struct {
	ID              string
	AgenteID        string
	AsignadoPorID   string
	TurnoID         *string
	Terminal        string
	TipoAsignacion  AssignmentType
	FechaAsignacion time.Time
	TareaDetalle    *string
	CreatedAt       time.Time

	// Denormalized display fields populated by list queries.
	AgenteNombre      string
	AgenteGrupo       Role
	AsignadoPorNombre string
}
