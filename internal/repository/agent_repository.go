package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundops/crew-portal/internal/domain"
)

// AgentRepository handles persistence for agent profiles.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error)
	UpdateFields(ctx context.Context, id string, fields AgentFieldUpdate) (*domain.Agent, error)
	SetTurnState(ctx context.Context, id string, state domain.TurnState) (*domain.Agent, error)
}

// AgentFilter defines query params for agent listing.
type AgentFilter struct {
	Grupo       *domain.Role
	EstadoTurno *domain.TurnState
	Limit       int
	Offset      int
}

// AgentFieldUpdate carries the owner-mutable profile fields. Nil means
// "leave unchanged"; grupo and id are deliberately absent.
type AgentFieldUpdate struct {
	Nombre         *string
	Email          *string
	Telefono       *string
	FotoPerfilURL  *string
	FotoPortadaURL *string
}

// Empty reports whether the update carries no fields.
func (u AgentFieldUpdate) Empty() bool {
	return u.Nombre == nil && u.Email == nil && u.Telefono == nil &&
		u.FotoPerfilURL == nil && u.FotoPortadaURL == nil
}

const agentColumns = `id, nombre, usuario_sabre, grupo, email, telefono, estado_turno,
        foto_perfil_url, foto_portada_url, created_at, updated_at`

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agentes (id, nombre, usuario_sabre, grupo, email, telefono, estado_turno)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		agent.ID,
		agent.Nombre,
		agent.UsuarioSabre,
		agent.Grupo,
		agent.Email,
		agent.Telefono,
		agent.EstadoTurno,
	).Scan(&agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agentes WHERE id=$1`

	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&agent.ID,
		&agent.Nombre,
		&agent.UsuarioSabre,
		&agent.Grupo,
		&agent.Email,
		&agent.Telefono,
		&agent.EstadoTurno,
		&agent.FotoPerfilURL,
		&agent.FotoPortadaURL,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agentes`
	args := []any{}
	clauses := []string{}

	if filter.Grupo != nil {
		args = append(args, *filter.Grupo)
		clauses = append(clauses, fmt.Sprintf("grupo=$%d", len(args)))
	}
	if filter.EstadoTurno != nil {
		args = append(args, *filter.EstadoTurno)
		clauses = append(clauses, fmt.Sprintf("estado_turno=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY nombre ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Nombre,
			&agent.UsuarioSabre,
			&agent.Grupo,
			&agent.Email,
			&agent.Telefono,
			&agent.EstadoTurno,
			&agent.FotoPerfilURL,
			&agent.FotoPortadaURL,
			&agent.CreatedAt,
			&agent.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}

// UpdateFields applies only the provided columns in a single UPDATE, so a
// failed statement leaves the row untouched. Returns the refreshed row.
func (r *agentRepository) UpdateFields(ctx context.Context, id string, fields AgentFieldUpdate) (*domain.Agent, error) {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	appendSet("nombre", fields.Nombre)
	appendSet("email", fields.Email)
	appendSet("telefono", fields.Telefono)
	appendSet("foto_perfil_url", fields.FotoPerfilURL)
	appendSet("foto_portada_url", fields.FotoPortadaURL)

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE agentes SET %s WHERE id=$%d RETURNING `+agentColumns,
		strings.Join(sets, ", "), len(args))

	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&agent.ID,
		&agent.Nombre,
		&agent.UsuarioSabre,
		&agent.Grupo,
		&agent.Email,
		&agent.Telefono,
		&agent.EstadoTurno,
		&agent.FotoPerfilURL,
		&agent.FotoPortadaURL,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) SetTurnState(ctx context.Context, id string, state domain.TurnState) (*domain.Agent, error) {
	const query = `
        UPDATE agentes SET estado_turno=$1, updated_at=NOW() WHERE id=$2
        RETURNING ` + agentColumns

	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, state, id).Scan(
		&agent.ID,
		&agent.Nombre,
		&agent.UsuarioSabre,
		&agent.Grupo,
		&agent.Email,
		&agent.Telefono,
		&agent.EstadoTurno,
		&agent.FotoPerfilURL,
		&agent.FotoPortadaURL,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}
