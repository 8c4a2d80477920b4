// Package session tracks one client session's identity state: the signed-in
// principal plus its agent profile. A Resolver is created when a long-lived
// consumer (SSE stream, portal shell) attaches and disposed at sign-out, so
// there is a single owner per session instead of ambient global state.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/events"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/repository"
)

// State is the resolver lifecycle position.
type State string

const (
	StateUninitialized   State = "uninitialized"
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Snapshot is an immutable view of the session state. Agent is nil when the
// principal has no linked profile (authenticated-without-profile).
type Snapshot struct {
	State     State
	Principal *domain.Principal
	Agent     *domain.Agent
}

// Authenticated reports whether a principal is signed in.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Resolver owns the current principal/profile pair for one session.
type Resolver struct {
	provider identity.Provider
	agents   repository.AgentRepository
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	principal *domain.Principal
	agent     *domain.Agent
	token     string

	// epoch advances on every sign-in and sign-out. Profile fetches carry
	// the epoch they started under; a fetch landing after the epoch moved
	// is stale and its result is dropped.
	epoch uint64

	observers map[int]func(Snapshot)
	nextObs   int
}

// NewResolver builds an uninitialized resolver.
func NewResolver(provider identity.Provider, agents repository.AgentRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		provider:  provider,
		agents:    agents,
		logger:    logger,
		state:     StateUninitialized,
		observers: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resolver) snapshotLocked() Snapshot {
	return Snapshot{State: r.state, Principal: r.principal, Agent: r.agent}
}

// Initialize attempts to resume a prior session from a persisted token. It
// never returns an error: any failure settles the resolver to
// unauthenticated.
func (r *Resolver) Initialize(ctx context.Context, token string) {
	r.mu.Lock()
	r.state = StateLoading
	epoch := r.epoch
	r.mu.Unlock()

	if token == "" {
		r.settleUnauthenticated(epoch)
		return
	}

	sess, err := r.provider.GetSession(ctx, token)
	if err != nil {
		r.logger.Debug("session resume failed", zap.Error(err))
		r.settleUnauthenticated(epoch)
		return
	}
	r.adoptSession(ctx, sess, epoch)
}

// SignIn delegates to the identity provider and, on success, resolves the
// profile. The returned error is the provider's human-readable AuthError;
// there is no retry.
func (r *Resolver) SignIn(ctx context.Context, email, password string) error {
	r.mu.Lock()
	r.state = StateLoading
	r.epoch++
	epoch := r.epoch
	r.mu.Unlock()

	sess, err := r.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		r.settleUnauthenticated(epoch)
		return err
	}
	r.adoptSession(ctx, sess, epoch)
	return nil
}

// SignOut invalidates the session and clears principal and profile.
func (r *Resolver) SignOut(ctx context.Context) {
	r.mu.Lock()
	token := r.token
	r.epoch++
	r.state = StateUnauthenticated
	r.principal = nil
	r.agent = nil
	r.token = ""
	snap := r.snapshotLocked()
	r.mu.Unlock()

	if token != "" {
		if err := r.provider.SignOut(ctx, token); err != nil {
			r.logger.Warn("sign out failed", zap.Error(err))
		}
	}
	r.notify(snap)
}

// ObserveChanges re-resolves the profile on every auth-state transition the
// provider emits and notifies the callback with each new snapshot. The
// returned stop func detaches both the provider subscription and the
// callback; callers must invoke it on teardown.
func (r *Resolver) ObserveChanges(ctx context.Context, fn func(Snapshot)) (stop func()) {
	r.mu.Lock()
	id := r.nextObs
	r.nextObs++
	r.observers[id] = fn
	r.mu.Unlock()

	unsubscribe := r.provider.OnAuthStateChange(func(ev events.Event) {
		r.handleAuthEvent(ctx, ev)
	})

	return func() {
		unsubscribe()
		r.mu.Lock()
		delete(r.observers, id)
		r.mu.Unlock()
	}
}

func (r *Resolver) handleAuthEvent(ctx context.Context, ev events.Event) {
	switch ev.Type {
	case events.EventSignedIn, events.EventTokenRefreshed:
		if ev.Session == nil {
			return
		}
		r.mu.Lock()
		// Transitions for other principals' sessions are not ours to apply.
		if r.token != "" && r.token != ev.Session.Token {
			r.mu.Unlock()
			return
		}
		r.epoch++
		epoch := r.epoch
		r.mu.Unlock()
		r.adoptSession(ctx, ev.Session, epoch)
	case events.EventSignedOut:
		r.mu.Lock()
		if r.principal == nil || r.principal.ID != ev.PrincipalID {
			r.mu.Unlock()
			return
		}
		r.epoch++
		r.state = StateUnauthenticated
		r.principal = nil
		r.agent = nil
		r.token = ""
		snap := r.snapshotLocked()
		r.mu.Unlock()
		r.notify(snap)
	}
}

// adoptSession stores the session and fetches its profile, discarding the
// result when the epoch advanced while the fetch was in flight.
func (r *Resolver) adoptSession(ctx context.Context, sess *domain.Session, epoch uint64) {
	agent, err := r.agents.GetByID(ctx, sess.Principal.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Warn("profile fetch failed", zap.Error(err))
		agent = nil
	}

	r.mu.Lock()
	if r.epoch != epoch {
		// A sign-out or newer sign-in won the race; this result is stale.
		r.mu.Unlock()
		return
	}
	principal := sess.Principal
	r.state = StateAuthenticated
	r.principal = &principal
	r.agent = agent
	r.token = sess.Token
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.notify(snap)
}

func (r *Resolver) settleUnauthenticated(epoch uint64) {
	r.mu.Lock()
	if r.epoch != epoch {
		r.mu.Unlock()
		return
	}
	r.state = StateUnauthenticated
	r.principal = nil
	r.agent = nil
	r.token = ""
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.notify(snap)
}

func (r *Resolver) notify(snap Snapshot) {
	r.mu.Lock()
	fns := make([]func(Snapshot), 0, len(r.observers))
	for _, fn := range r.observers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
