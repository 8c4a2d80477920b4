package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundops/crew-portal/internal/domain"
)

// FlightRepository reads the station's flight board.
type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	CountByStatus(ctx context.Context, status domain.FlightStatus) (int, error)
}

type flightRepository struct {
	pool *pgxpool.Pool
}

// NewFlightRepository instantiates the repository.
func NewFlightRepository(pool *pgxpool.Pool) FlightRepository {
	return &flightRepository{pool: pool}
}

func (r *flightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	const query = `
        SELECT id, numero_vuelo, tipo_vuelo, terminal, puente, estado, created_at, updated_at
        FROM vuelos ORDER BY numero_vuelo ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Flight
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.NumeroVuelo, &f.TipoVuelo, &f.Terminal, &f.Puente, &f.Estado, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *flightRepository) CountByStatus(ctx context.Context, status domain.FlightStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM vuelos WHERE estado=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
