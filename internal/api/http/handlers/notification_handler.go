package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/api/dto"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// NotificationHandler exposes the caller's notification inbox.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListUnread handles GET /notificaciones.
func (h *NotificationHandler) ListUnread(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.notifications.ListUnread(c.UserContext(), current.Session.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNotificationResponses(result)})
}

// MarkRead handles POST /notificaciones/:id/leida. Only the recipient's own
// rows are reachable.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.notifications.MarkRead(c.UserContext(), current.Session.Principal.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "read"}})
}

// MarkAllRead handles POST /notificaciones/leidas.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	count, err := h.notifications.MarkAllRead(c.UserContext(), current.Session.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"marked": count}})
}
