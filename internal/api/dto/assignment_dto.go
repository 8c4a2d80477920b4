package dto

import (
	"time"

	"github.com/groundops/crew-portal/internal/domain"
)

// CreateAssignmentRequest payload.
type CreateAssignmentRequest struct {
	AgenteID        string  `json:"agente_id"`
	TurnoID         *string `json:"turno_id,omitempty"`
	Terminal        string  `json:"terminal"`
	TipoAsignacion  string  `json:"tipo_asignacion"`
	FechaAsignacion string  `json:"fecha_asignacion"`
	TareaDetalle    *string `json:"tarea_detalle,omitempty"`
}

// AssignmentResponse is the wire form of an assignment row.
type AssignmentResponse struct {
	ID                string    `json:"id"`
	AgenteID          string    `json:"agente_id"`
	AgenteNombre      string    `json:"agente_nombre"`
	AgenteGrupo       string    `json:"agente_grupo"`
	AsignadoPorNombre string    `json:"asignado_por_nombre"`
	Terminal          string    `json:"terminal"`
	TerminalColor     string    `json:"terminal_color"`
	TipoAsignacion    string    `json:"tipo_asignacion"`
	TipoColor         string    `json:"tipo_color"`
	FechaAsignacion   string    `json:"fecha_asignacion"`
	TareaDetalle      *string   `json:"tarea_detalle,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewAssignmentResponse converts the domain model.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                a.ID,
		AgenteID:          a.AgenteID,
		AgenteNombre:      a.AgenteNombre,
		AgenteGrupo:       string(a.AgenteGrupo),
		AsignadoPorNombre: a.AsignadoPorNombre,
		Terminal:          a.Terminal,
		TerminalColor:     domain.TerminalColor(a.Terminal),
		TipoAsignacion:    string(a.TipoAsignacion),
		TipoColor:         a.TipoAsignacion.Color(),
		FechaAsignacion:   a.FechaAsignacion.Format("2006-01-02"),
		TareaDetalle:      a.TareaDetalle,
		CreatedAt:         a.CreatedAt,
	}
}

// NewAssignmentResponses converts a list.
func NewAssignmentResponses(list []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, NewAssignmentResponse(&list[i]))
	}
	return out
}
