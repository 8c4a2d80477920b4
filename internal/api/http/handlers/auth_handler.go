package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/groundops/crew-portal/internal/api/dto"
	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/service"
)

// AuthHandler exposes sign-in, registration and password recovery.
type AuthHandler struct {
	provider   identity.Provider
	enrollment *service.EnrollmentService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(provider identity.Provider, enrollment *service.EnrollmentService) *AuthHandler {
	return &AuthHandler{provider: provider, enrollment: enrollment}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	session, err := h.provider.SignInWithPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.enrollment.Register(c.UserContext(), service.EnrollmentInput{
		Nombre:          req.Nombre,
		UsuarioSabre:    req.UsuarioSabre,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Grupo:           domain.Role(req.Grupo),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"status": "registered"}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, err := identity.BearerToken(c)
	if err != nil {
		return err
	}
	if err := h.provider.SignOut(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "signed_out"}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	if err := h.provider.ResetPasswordForEmail(c.UserContext(), req.Email, req.RedirectTo); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "reset_requested"}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new password required")
	}

	if err := h.provider.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}
