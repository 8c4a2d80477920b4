package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundops/crew-portal/internal/domain"
)

// NotificationRepository handles persistence for agent notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListUnread(ctx context.Context, destinatarioID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, destinatarioID, id string) (bool, error)
	MarkAllRead(ctx context.Context, destinatarioID string) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates the repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notificaciones (destinatario_id, tipo, contenido, leida)
        VALUES ($1,$2,$3,false)
        RETURNING id, fecha`

	return r.pool.QueryRow(ctx, query,
		notification.DestinatarioID,
		notification.Tipo,
		notification.Contenido,
	).Scan(&notification.ID, &notification.Fecha)
}

func (r *notificationRepository) ListUnread(ctx context.Context, destinatarioID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT id, destinatario_id, tipo, contenido, leida, fecha
        FROM notificaciones
        WHERE destinatario_id=$1 AND leida=false
        ORDER BY fecha DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, destinatarioID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.DestinatarioID, &n.Tipo, &n.Contenido, &n.Leida, &n.Fecha); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkRead flips a single notification; the recipient filter keeps an agent
// from acknowledging someone else's notification.
func (r *notificationRepository) MarkRead(ctx context.Context, destinatarioID, id string) (bool, error) {
	const query = `
        UPDATE notificaciones SET leida=true
        WHERE id=$1 AND destinatario_id=$2 AND leida=false`

	cmd, err := r.pool.Exec(ctx, query, id, destinatarioID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, destinatarioID string) (int64, error) {
	const query = `
        UPDATE notificaciones SET leida=true
        WHERE destinatario_id=$1 AND leida=false`

	cmd, err := r.pool.Exec(ctx, query, destinatarioID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
