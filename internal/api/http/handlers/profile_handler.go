package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/api/dto"
	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/repository"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// ProfileHandler exposes the signed-in agent's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /me. An authenticated principal without a profile gets the
// session identity with a null profile rather than an error.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	response := fiber.Map{
		"principal": fiber.Map{
			"id":    current.Session.Principal.ID,
			"email": current.Session.Principal.Email,
		},
		"perfil": nil,
	}
	if current.Agent != nil {
		response["perfil"] = dto.NewAgentResponse(current.Agent)
	}
	return c.JSON(fiber.Map{"data": response})
}

// UpdateProfile handles PUT /me/perfil. Only the owner's row is reachable:
// the id comes from the session, never the payload.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	agent, err := h.profiles.UpdateProfile(c.UserContext(), current.Session.Principal.ID, req.ToFieldUpdate())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// SetTurnState handles PATCH /me/estado.
func (h *ProfileHandler) SetTurnState(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TurnStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	agent, err := h.profiles.SetTurnState(c.UserContext(), current.Session.Principal.ID, domain.TurnState(req.EstadoTurno))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// ListAgents handles GET /admin/agentes, gated on the admin module.
func (h *ProfileHandler) ListAgents(c *fiber.Ctx) error {
	filter := repository.AgentFilter{}
	if grupo := c.Query("grupo"); grupo != "" {
		role := domain.Role(grupo)
		filter.Grupo = &role
	}
	if estado := c.Query("estado_turno"); estado != "" {
		state := domain.TurnState(estado)
		filter.EstadoTurno = &state
	}

	agents, err := h.profiles.ListAgents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponses(agents)})
}
