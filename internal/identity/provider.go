package identity

import (
	"context"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/events"
)

// Provider is the identity collaborator the rest of the portal depends on.
// It owns credentials and active sessions; consumers only ever see
// domain.Principal and domain.Session values.
type Provider interface {
	// SignInWithPassword authenticates and opens a session. Failures come
	// back as AuthError values with a human-readable message.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)

	// SignUp creates a new principal. It does not open a session.
	SignUp(ctx context.Context, email, password string) (*domain.Principal, error)

	// SignOut invalidates the session for the given token. Unknown tokens
	// are a no-op.
	SignOut(ctx context.Context, token string) error

	// GetSession resumes the session behind a token, or errors when the
	// token is invalid, expired or revoked.
	GetSession(ctx context.Context, token string) (*domain.Session, error)

	// OnAuthStateChange registers an observer for sign-in, sign-out and
	// token-refresh transitions. The returned func detaches the observer
	// and must be called when the consuming context is torn down.
	OnAuthStateChange(fn func(events.Event)) (unsubscribe func())

	// ResetPasswordForEmail issues a reset token for the account, if any.
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error

	// ConfirmPasswordReset redeems a reset token and stores the new
	// credential.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}
