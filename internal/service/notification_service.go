package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const unreadLimit = 10

// NotificationService delivers notifications to agents. Recipients are the
// only writers: marking read is scoped to the owning agent.
type NotificationService struct {
	notifications repository.NotificationRepository
	feed          realtime.Feed
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, feed realtime.Feed, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, feed: feed, logger: logger}
}

// ListUnread returns the newest unread notifications for the recipient.
func (s *NotificationService) ListUnread(ctx context.Context, destinatarioID string) ([]domain.Notification, error) {
	result, err := s.notifications.ListUnread(ctx, destinatarioID, unreadLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// MarkRead acknowledges one notification belonging to the caller.
func (s *NotificationService) MarkRead(ctx context.Context, destinatarioID, id string) error {
	updated, err := s.notifications.MarkRead(ctx, destinatarioID, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !updated {
		return apperrors.NewNotFound("notificación", map[string]any{"id": id})
	}
	s.publish(ctx, realtime.ActionUpdate, id, destinatarioID)
	return nil
}

// MarkAllRead acknowledges every unread notification for the caller.
func (s *NotificationService) MarkAllRead(ctx context.Context, destinatarioID string) (int64, error) {
	count, err := s.notifications.MarkAllRead(ctx, destinatarioID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if count > 0 {
		s.publish(ctx, realtime.ActionUpdate, "", destinatarioID)
	}
	return count, nil
}

// Notify stores a notification and announces it on the change feed.
func (s *NotificationService) Notify(ctx context.Context, destinatarioID string, tipo domain.NotificationType, contenido string) error {
	notification := &domain.Notification{
		DestinatarioID: destinatarioID,
		Tipo:           tipo,
		Contenido:      contenido,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("notification create failed",
			zap.String("destinatario_id", destinatarioID), zap.Error(err))
		return apperrors.MapError(err)
	}
	s.publish(ctx, realtime.ActionInsert, notification.ID, destinatarioID)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, action realtime.Action, rowID, destinatarioID string) {
	if s.feed == nil {
		return
	}
	_ = s.feed.Publish(ctx, realtime.ChangeEvent{
		Table:  "notificaciones",
		Action: action,
		RowID:  rowID,
		Columns: map[string]string{
			"destinatario_id": destinatarioID,
		},
	})
}
