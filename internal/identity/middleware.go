package identity

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/rbac"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const currentSessionKey = "current_session"

// CurrentSession is the per-request view of the signed-in caller. Agent is
// nil for an authenticated principal without a linked profile; the access
// guard treats that as "no role".
type CurrentSession struct {
	Session *domain.Session
	Agent   *domain.Agent
}

// AuthMiddleware validates bearer tokens and loads the caller's profile.
type AuthMiddleware struct {
	provider Provider
	agents   repository.AgentRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(provider Provider, agents repository.AgentRepository) *AuthMiddleware {
	return &AuthMiddleware{provider: provider, agents: agents}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	session, err := m.provider.GetSession(c.UserContext(), token)
	if err != nil {
		return err
	}

	current := &CurrentSession{Session: session}
	agent, err := m.agents.GetByID(c.UserContext(), session.Principal.ID)
	switch {
	case err == nil:
		current.Agent = agent
	case errors.Is(err, pgx.ErrNoRows):
		// Recoverable: authenticated without profile.
	default:
		return apperrors.MapError(err)
	}

	c.Locals(currentSessionKey, current)
	return c.Next()
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// SessionFromContext retrieves the authenticated caller.
func SessionFromContext(c *fiber.Ctx) (*CurrentSession, bool) {
	val := c.Locals(currentSessionKey)
	if val == nil {
		return nil, false
	}
	current, ok := val.(*CurrentSession)
	return current, ok
}

// RequireProfile ensures the caller has a linked agent profile.
func RequireProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if current.Agent == nil {
			return apperrors.NewProfileNotFound(current.Session.Principal.ID)
		}
		return c.Next()
	}
}

// RequireModule gates a route on the permission table. Must run after
// Handle so the session snapshot is present.
func RequireModule(module rbac.Module) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !rbac.CanAccessAgent(current.Agent, module) {
			return apperrors.NewForbidden("acceso denegado al módulo '" + string(module) + "'")
		}
		return c.Next()
	}
}
