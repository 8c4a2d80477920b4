package dto

import (
	"time"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/repository"
)

// UpdateProfileRequest carries a partial profile edit. ID and grupo are
// accepted in the payload for frontend convenience but never applied;
// ToFieldUpdate drops them.
type UpdateProfileRequest struct {
	ID             *string `json:"id,omitempty"`
	Nombre         *string `json:"nombre,omitempty"`
	Email          *string `json:"email,omitempty"`
	Telefono       *string `json:"telefono,omitempty"`
	FotoPerfilURL  *string `json:"foto_perfil_url,omitempty"`
	FotoPortadaURL *string `json:"foto_portada_url,omitempty"`
	Grupo          *string `json:"grupo,omitempty"`
}

// ToFieldUpdate maps the request onto the owner-mutable columns only.
func (r UpdateProfileRequest) ToFieldUpdate() repository.AgentFieldUpdate {
	return repository.AgentFieldUpdate{
		Nombre:         r.Nombre,
		Email:          r.Email,
		Telefono:       r.Telefono,
		FotoPerfilURL:  r.FotoPerfilURL,
		FotoPortadaURL: r.FotoPortadaURL,
	}
}

// TurnStateRequest payload for duty-status changes.
type TurnStateRequest struct {
	EstadoTurno string `json:"estado_turno"`
}

// AgentResponse is the wire form of a profile, including the presentation
// tokens the sidebar renders.
type AgentResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	UsuarioSabre   string    `json:"usuario_sabre"`
	Grupo          string    `json:"grupo"`
	GrupoColor     string    `json:"grupo_color"`
	Email          string    `json:"email"`
	Telefono       *string   `json:"telefono,omitempty"`
	EstadoTurno    string    `json:"estado_turno"`
	EstadoEmoji    string    `json:"estado_emoji"`
	FotoPerfilURL  *string   `json:"foto_perfil_url,omitempty"`
	FotoPortadaURL *string   `json:"foto_portada_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAgentResponse converts the domain model.
func NewAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:             agent.ID,
		Nombre:         agent.Nombre,
		UsuarioSabre:   agent.UsuarioSabre,
		Grupo:          string(agent.Grupo),
		GrupoColor:     agent.Grupo.Color(),
		Email:          agent.Email,
		Telefono:       agent.Telefono,
		EstadoTurno:    string(agent.EstadoTurno),
		EstadoEmoji:    agent.EstadoTurno.Emoji(),
		FotoPerfilURL:  agent.FotoPerfilURL,
		FotoPortadaURL: agent.FotoPortadaURL,
		CreatedAt:      agent.CreatedAt,
		UpdatedAt:      agent.UpdatedAt,
	}
}

// NewAgentResponses converts a roster.
func NewAgentResponses(agents []domain.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, NewAgentResponse(&agents[i]))
	}
	return out
}
