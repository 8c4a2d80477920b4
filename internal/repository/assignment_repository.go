package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundops/crew-portal/internal/domain"
)

// AssignmentRepository handles persistence for duty assignments.
// Assignments are immutable once created; there is no update or delete.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// AssignmentFilter defines query params for assignment listing.
type AssignmentFilter struct {
	Fecha    *time.Time
	AgenteID *string
	Limit    int
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO asignaciones (agente_id, asignado_por_id, turno_id, terminal, tipo_asignacion, fecha_asignacion, tarea_detalle)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		assignment.AgenteID,
		assignment.AsignadoPorID,
		assignment.TurnoID,
		assignment.Terminal,
		assignment.TipoAsignacion,
		assignment.FechaAsignacion,
		assignment.TareaDetalle,
	).Scan(&assignment.ID, &assignment.CreatedAt)
}

const assignmentSelect = `
        SELECT a.id, a.agente_id, a.asignado_por_id, a.turno_id, a.terminal,
               a.tipo_asignacion, a.fecha_asignacion, a.tarea_detalle, a.created_at,
               ag.nombre, ag.grupo, asig.nombre
        FROM asignaciones a
        JOIN agentes ag ON ag.id = a.agente_id
        JOIN agentes asig ON asig.id = a.asignado_por_id`

func scanAssignment(row interface{ Scan(...any) error }) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := row.Scan(
		&a.ID,
		&a.AgenteID,
		&a.AsignadoPorID,
		&a.TurnoID,
		&a.Terminal,
		&a.TipoAsignacion,
		&a.FechaAsignacion,
		&a.TareaDetalle,
		&a.CreatedAt,
		&a.AgenteNombre,
		&a.AgenteGrupo,
		&a.AsignadoPorNombre,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := assignmentSelect + ` WHERE a.id=$1`
	return scanAssignment(r.pool.QueryRow(ctx, query, id))
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	query := assignmentSelect
	args := []any{}
	clauses := []string{}

	if filter.Fecha != nil {
		args = append(args, filter.Fecha.Format("2006-01-02"))
		clauses = append(clauses, fmt.Sprintf("a.fecha_asignacion=$%d", len(args)))
	}
	if filter.AgenteID != nil {
		args = append(args, *filter.AgenteID)
		clauses = append(clauses, fmt.Sprintf("a.agente_id=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY a.created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *assignment)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM asignaciones WHERE fecha_asignacion=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
