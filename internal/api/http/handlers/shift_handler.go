package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// ShiftHandler serves the duty-window catalog.
type ShiftHandler struct {
	shifts repository.ShiftRepository
}

// NewShiftHandler constructs handler.
func NewShiftHandler(shifts repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

type shiftResponse struct {
	ID          string `json:"id"`
	NombreTurno string `json:"nombre_turno"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFin     string `json:"hora_fin"`
}

func newShiftResponses(list []domain.Shift) []shiftResponse {
	out := make([]shiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, shiftResponse{
			ID:          s.ID,
			NombreTurno: s.NombreTurno,
			HoraInicio:  s.HoraInicio,
			HoraFin:     s.HoraFin,
		})
	}
	return out
}

// List handles GET /turnos.
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	result, err := h.shifts.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": newShiftResponses(result)})
}
