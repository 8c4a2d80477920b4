package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/events"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const sessionKeyPrefix = "session:"

// LocalProvider implements Provider on Postgres credentials, Redis-backed
// session revocation and JWT bearer tokens. Auth-state transitions are
// published on the dispatcher so session resolvers can observe them.
type LocalProvider struct {
	principals repository.PrincipalRepository
	resets     repository.PasswordResetRepository
	sessions   *redis.Client
	tokens     *TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// ProviderDependencies bundles collaborator requirements.
type ProviderDependencies struct {
	Principals repository.PrincipalRepository
	Resets     repository.PasswordResetRepository
	Sessions   *redis.Client
	Tokens     *TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
	ResetTTL   time.Duration
}

// NewLocalProvider builds the provider.
func NewLocalProvider(deps ProviderDependencies) *LocalProvider {
	return &LocalProvider{
		principals: deps.Principals,
		resets:     deps.Resets,
		sessions:   deps.Sessions,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: deps.BcryptCost,
		resetTTL:   deps.ResetTTL,
	}
}

func toPrincipal(rec *repository.PrincipalRecord) domain.Principal {
	return domain.Principal{ID: rec.ID, Email: rec.Email, CreatedAt: rec.CreatedAt}
}

// SignInWithPassword authenticates and opens a session.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	rec, err := p.principals.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthError("credenciales inválidas")
		}
		return nil, apperrors.MapError(err)
	}
	if err := ComparePassword(rec.PasswordHash, password); err != nil {
		return nil, apperrors.NewAuthError("credenciales inválidas")
	}

	token, expiresAt, err := p.tokens.GenerateToken(rec.ID, rec.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := p.sessions.Set(ctx, sessionKeyPrefix+token, rec.ID, p.tokens.TTL()).Err(); err != nil {
		return nil, apperrors.MapError(err)
	}

	session := &domain.Session{Token: token, Principal: toPrincipal(rec), ExpiresAt: expiresAt}
	p.publish(ctx, events.EventSignedIn, session)
	return session, nil
}

// SignUp creates a new principal without opening a session.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*domain.Principal, error) {
	if _, err := p.principals.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email ya registrado", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := HashPassword(password, p.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	rec := &repository.PrincipalRecord{Email: email, PasswordHash: hash}
	if err := p.principals.Create(ctx, rec); err != nil {
		return nil, apperrors.MapError(err)
	}

	principal := toPrincipal(rec)
	return &principal, nil
}

// SignOut revokes the session token.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.tokens.ParseToken(token)
	if err != nil {
		// Already unusable; nothing to revoke.
		return nil
	}
	if err := p.sessions.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return apperrors.MapError(err)
	}
	p.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        events.EventSignedOut,
		PrincipalID: claims.PrincipalID,
		Timestamp:   time.Now(),
	})
	return nil
}

// GetSession resumes the session behind a token. Access slides the Redis
// expiry forward; when the window was more than half consumed a
// token_refreshed transition is published.
func (p *LocalProvider) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := p.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewAuthError("sesión inválida o expirada")
	}

	key := sessionKeyPrefix + token
	remaining, err := p.sessions.TTL(ctx, key).Result()
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if remaining <= 0 {
		return nil, apperrors.NewAuthError("sesión revocada")
	}

	rec, err := p.principals.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthError("cuenta desconocida")
		}
		return nil, apperrors.MapError(err)
	}

	session := &domain.Session{
		Token:     token,
		Principal: toPrincipal(rec),
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if remaining < p.tokens.TTL()/2 {
		if err := p.sessions.Expire(ctx, key, p.tokens.TTL()).Err(); err == nil {
			p.publish(ctx, events.EventTokenRefreshed, session)
		}
	}
	return session, nil
}

// OnAuthStateChange registers an observer for auth transitions.
func (p *LocalProvider) OnAuthStateChange(fn func(events.Event)) func() {
	handler := func(_ context.Context, ev events.Event) error {
		fn(ev)
		return nil
	}
	stops := []func(){
		p.dispatcher.Subscribe(events.EventSignedIn, handler),
		p.dispatcher.Subscribe(events.EventSignedOut, handler),
		p.dispatcher.Subscribe(events.EventTokenRefreshed, handler),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// ResetPasswordForEmail issues a reset token. Unknown emails return nil so
// the endpoint does not leak which accounts exist.
func (p *LocalProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	rec, err := p.principals.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.logger.Info("password reset requested for unknown email")
			return nil
		}
		return apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		PrincipalID: rec.ID,
		Token:       uuid.NewString(),
		RedirectTo:  redirectTo,
		ExpiresAt:   time.Now().Add(p.resetTTL),
	}
	if err := p.resets.Create(ctx, token); err != nil {
		return apperrors.MapError(err)
	}

	// Mail delivery is handled outside this service; the token lands in the
	// outbox via logs for now.
	p.logger.Info("password reset token issued",
		zap.String("principal_id", rec.ID),
		zap.String("redirect_to", redirectTo),
		zap.Time("expires_at", token.ExpiresAt))
	return nil
}

// ConfirmPasswordReset redeems a reset token.
func (p *LocalProvider) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := p.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("token de recuperación inválido", nil)
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token de recuperación expirado o usado", nil)
	}

	hash, err := HashPassword(newPassword, p.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := p.principals.UpdatePassword(ctx, token.PrincipalID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return apperrors.MapError(p.resets.MarkUsed(ctx, token.ID))
}

func (p *LocalProvider) publish(ctx context.Context, eventType events.EventType, session *domain.Session) {
	p.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		PrincipalID: session.Principal.ID,
		Session:     session,
		Timestamp:   time.Now(),
	})
}
