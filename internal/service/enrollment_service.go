package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/events"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const minPasswordLength = 6

// EnrollmentService creates a principal plus its linked agent profile.
type EnrollmentService struct {
	provider   identity.Provider
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EnrollmentDependencies bundles collaborator requirements.
type EnrollmentDependencies struct {
	Provider   identity.Provider
	AgentRepo  repository.AgentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewEnrollmentService builds the service.
func NewEnrollmentService(deps EnrollmentDependencies) *EnrollmentService {
	return &EnrollmentService{
		provider:   deps.Provider,
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// EnrollmentInput is the registration form.
type EnrollmentInput struct {
	Nombre          string
	UsuarioSabre    string
	Email           string
	Telefono        *string
	Grupo           domain.Role
	Password        string
	ConfirmPassword string
}

// Validate runs the client-side checks before any remote call is made.
func (in EnrollmentInput) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(in.Nombre) == "" {
		details["nombre"] = "requerido"
	}
	if strings.TrimSpace(in.UsuarioSabre) == "" {
		details["usuario_sabre"] = "requerido"
	}
	if strings.TrimSpace(in.Email) == "" {
		details["email"] = "requerido"
	}
	if !in.Grupo.Valid() {
		details["grupo"] = "grupo desconocido"
	}
	if len(in.Password) < minPasswordLength {
		details["password"] = "mínimo 6 caracteres"
	}
	if in.Password != in.ConfirmPassword {
		details["confirm_password"] = "las contraseñas no coinciden"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("datos de registro inválidos", details)
	}
	return nil
}

// Register creates the principal and then the linked profile. The two
// remote writes are not atomic: when the profile insert fails the principal
// stays behind (orphan window) and the failure is surfaced as
// ENROLLMENT_INCOMPLETE so operations can reconcile it.
func (s *EnrollmentService) Register(ctx context.Context, in EnrollmentInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	principal, err := s.provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return err
	}

	agent := &domain.Agent{
		ID:           principal.ID,
		Nombre:       in.Nombre,
		UsuarioSabre: in.UsuarioSabre,
		Grupo:        in.Grupo,
		Email:        in.Email,
		Telefono:     in.Telefono,
		EstadoTurno:  domain.TurnStateOffDuty,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		s.logger.Error("profile enrollment failed after principal creation",
			zap.String("principal_id", principal.ID), zap.Error(err))
		return apperrors.NewPartialEnrollment(principal.ID, err)
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        events.EventAgentEnrolled,
		PrincipalID: principal.ID,
		Timestamp:   time.Now(),
	})
	return nil
}
