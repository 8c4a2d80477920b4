package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/api/dto"
	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const dateLayout = "2006-01-02"

// AssignmentHandler exposes the daily assignment board.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List handles GET /asignaciones?fecha=YYYY-MM-DD. Defaults to today.
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fecha := time.Now()
	if raw := c.Query("fecha"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return apperrors.NewValidationError("fecha inválida, formato esperado YYYY-MM-DD", map[string]any{"fecha": raw})
		}
		fecha = parsed
	}

	result, err := h.assignments.ListForDate(c.UserContext(), current.Agent, fecha)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponses(result)})
}

// Create handles POST /asignaciones.
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	fecha, err := time.Parse(dateLayout, req.FechaAsignacion)
	if err != nil {
		return apperrors.NewValidationError("fecha_asignacion inválida, formato esperado YYYY-MM-DD", map[string]any{"fecha_asignacion": req.FechaAsignacion})
	}

	assignment, err := h.assignments.Create(c.UserContext(), current.Agent, service.CreateInput{
		AgenteID:        req.AgenteID,
		TurnoID:         req.TurnoID,
		Terminal:        req.Terminal,
		TipoAsignacion:  domain.AssignmentType(req.TipoAsignacion),
		FechaAsignacion: fecha,
		TareaDetalle:    req.TareaDetalle,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}
