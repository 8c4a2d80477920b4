package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundops/crew-portal/internal/domain"
)

// ShiftRepository reads the duty-window catalog.
type ShiftRepository interface {
	List(ctx context.Context) ([]domain.Shift, error)
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates the repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) List(ctx context.Context) ([]domain.Shift, error) {
	const query = `
        SELECT id, nombre_turno, hora_inicio, hora_fin, created_at
        FROM turnos ORDER BY hora_inicio ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		var s domain.Shift
		if err := rows.Scan(&s.ID, &s.NombreTurno, &s.HoraInicio, &s.HoraFin, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	const query = `
        SELECT id, nombre_turno, hora_inicio, hora_fin, created_at
        FROM turnos WHERE id=$1`

	var s domain.Shift
	if err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.NombreTurno, &s.HoraInicio, &s.HoraFin, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
