package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for enrollment.
type RegisterRequest struct {
	Nombre          string  `json:"nombre"`
	UsuarioSabre    string  `json:"usuario_sabre"`
	Email           string  `json:"email"`
	Telefono        *string `json:"telefono,omitempty"`
	Grupo           string  `json:"grupo"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
}

// PasswordResetRequest payload for initiating reset.
type PasswordResetRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
