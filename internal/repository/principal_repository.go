package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PrincipalRecord is the identity provider's private credential row. It never
// leaves the identity package; the rest of the system sees domain.Principal.
type PrincipalRecord struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PrincipalRepository handles persistence for authentication principals.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *PrincipalRecord) error
	GetByID(ctx context.Context, id string) (*PrincipalRecord, error)
	GetByEmail(ctx context.Context, email string) (*PrincipalRecord, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository instantiates the repository.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

func (r *principalRepository) Create(ctx context.Context, principal *PrincipalRecord) error {
	const query = `
        INSERT INTO principals (email, password_hash)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		principal.Email,
		principal.PasswordHash,
	).Scan(&principal.ID, &principal.CreatedAt, &principal.UpdatedAt)
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*PrincipalRecord, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM principals WHERE id=$1`

	var p PrincipalRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*PrincipalRecord, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM principals WHERE email=$1`

	var p PrincipalRecord
	if err := r.pool.QueryRow(ctx, query, email).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *principalRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE principals SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
