package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/events"
	"github.com/groundops/crew-portal/internal/repository"
)

type fakeProvider struct {
	mu         sync.Mutex
	principals map[string]*domain.Principal // email -> principal
	nextID     int
	signUpErr  error
	signUps    []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{principals: make(map[string]*domain.Principal)}
}

func (p *fakeProvider) SignUp(_ context.Context, email, _ string) (*domain.Principal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signUpErr != nil {
		return nil, p.signUpErr
	}
	p.nextID++
	principal := &domain.Principal{ID: fmt.Sprintf("p-%d", p.nextID), Email: email, CreatedAt: time.Now()}
	p.principals[email] = principal
	p.signUps = append(p.signUps, email)
	return principal, nil
}

func (p *fakeProvider) SignInWithPassword(context.Context, string, string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) SignOut(context.Context, string) error { return nil }

func (p *fakeProvider) GetSession(context.Context, string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) OnAuthStateChange(func(events.Event)) func() { return func() {} }

func (p *fakeProvider) ResetPasswordForEmail(context.Context, string, string) error { return nil }
func (p *fakeProvider) ConfirmPasswordReset(context.Context, string, string) error  { return nil }

type fakeAgents struct {
	mu          sync.Mutex
	agents      map[string]*domain.Agent
	createErr   error
	lastUpdate  *repository.AgentFieldUpdate
	lastUpdated string
}

func newFakeAgents() *fakeAgents {
	return &fakeAgents{agents: make(map[string]*domain.Agent)}
}

func (r *fakeAgents) put(agent *domain.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[agent.ID] = agent
}

func (r *fakeAgents) Create(_ context.Context, agent *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = agent.CreatedAt
	r.agents[agent.ID] = agent
	return nil
}

func (r *fakeAgents) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *agent
	return &copied, nil
}

func (r *fakeAgents) List(_ context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Agent
	for _, agent := range r.agents {
		if filter.Grupo != nil && agent.Grupo != *filter.Grupo {
			continue
		}
		if filter.EstadoTurno != nil && agent.EstadoTurno != *filter.EstadoTurno {
			continue
		}
		out = append(out, *agent)
	}
	return out, nil
}

func (r *fakeAgents) UpdateFields(_ context.Context, id string, fields repository.AgentFieldUpdate) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastUpdate = &fields
	r.lastUpdated = id
	agent, ok := r.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if fields.Nombre != nil {
		agent.Nombre = *fields.Nombre
	}
	if fields.Email != nil {
		agent.Email = *fields.Email
	}
	if fields.Telefono != nil {
		agent.Telefono = fields.Telefono
	}
	if fields.FotoPerfilURL != nil {
		agent.FotoPerfilURL = fields.FotoPerfilURL
	}
	if fields.FotoPortadaURL != nil {
		agent.FotoPortadaURL = fields.FotoPortadaURL
	}
	agent.UpdatedAt = time.Now()
	copied := *agent
	return &copied, nil
}

func (r *fakeAgents) SetTurnState(_ context.Context, id string, state domain.TurnState) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	agent.EstadoTurno = state
	copied := *agent
	return &copied, nil
}

type fakeNotifications struct {
	mu     sync.Mutex
	nextID int
	rows   []*domain.Notification
}

func (r *fakeNotifications) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = fmt.Sprintf("n-%d", r.nextID)
	n.Fecha = time.Now()
	r.rows = append(r.rows, n)
	return nil
}

func (r *fakeNotifications) ListUnread(_ context.Context, destinatarioID string, limit int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		n := r.rows[i]
		if n.DestinatarioID == destinatarioID && !n.Leida {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotifications) MarkRead(_ context.Context, destinatarioID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id && n.DestinatarioID == destinatarioID && !n.Leida {
			n.Leida = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotifications) MarkAllRead(_ context.Context, destinatarioID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.rows {
		if n.DestinatarioID == destinatarioID && !n.Leida {
			n.Leida = true
			count++
		}
	}
	return count, nil
}

type fakeAssignments struct {
	mu     sync.Mutex
	nextID int
	rows   []*domain.Assignment
}

func (r *fakeAssignments) Create(_ context.Context, a *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = fmt.Sprintf("a-%d", r.nextID)
	a.CreatedAt = time.Now()
	r.rows = append(r.rows, a)
	return nil
}

func (r *fakeAssignments) GetByID(_ context.Context, id string) (*domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAssignments) List(_ context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Assignment
	for _, a := range r.rows {
		if filter.Fecha != nil && !sameDate(a.FechaAsignacion, *filter.Fecha) {
			continue
		}
		if filter.AgenteID != nil && a.AgenteID != *filter.AgenteID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAssignments) CountByDate(_ context.Context, date time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.rows {
		if sameDate(a.FechaAsignacion, date) {
			count++
		}
	}
	return count, nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

type fakeShifts struct {
	shifts map[string]*domain.Shift
}

func (r *fakeShifts) List(context.Context) ([]domain.Shift, error) {
	var out []domain.Shift
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeShifts) GetByID(_ context.Context, id string) (*domain.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

type fakeFlights struct {
	flights []domain.Flight
}

func (r *fakeFlights) List(context.Context) ([]domain.Flight, error) {
	return append([]domain.Flight{}, r.flights...), nil
}

func (r *fakeFlights) CountByStatus(_ context.Context, status domain.FlightStatus) (int, error) {
	count := 0
	for _, f := range r.flights {
		if f.Estado == status {
			count++
		}
	}
	return count, nil
}
