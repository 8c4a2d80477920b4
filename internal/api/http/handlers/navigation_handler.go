package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/rbac"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

// NavigationHandler serves the sidebar menu filtered by the caller's role.
type NavigationHandler struct{}

// NewNavigationHandler constructs handler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Menu handles GET /navegacion. A principal without a profile sees only the
// ungated entries.
func (h *NavigationHandler) Menu(c *fiber.Ctx) error {
	current, ok := identity.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items := rbac.FilterNavigation(rbac.DefaultNavigation(), current.Agent)
	return c.JSON(fiber.Map{"data": items})
}
