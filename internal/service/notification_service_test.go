package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/domain"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/service"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

func TestNotify_DeliversOnlyToRecipientSubscription(t *testing.T) {
	repo := &fakeNotifications{}
	feed := realtime.NewMemoryFeed()
	svc := service.NewNotificationService(repo, feed, zap.NewNop())

	var mine, theirs []realtime.ChangeEvent
	_, err := feed.Subscribe(context.Background(), "notificaciones",
		realtime.Filter{Column: "destinatario_id", Equals: "p-1"},
		func(ev realtime.ChangeEvent) { mine = append(mine, ev) })
	require.NoError(t, err)
	_, err = feed.Subscribe(context.Background(), "notificaciones",
		realtime.Filter{Column: "destinatario_id", Equals: "p-2"},
		func(ev realtime.ChangeEvent) { theirs = append(theirs, ev) })
	require.NoError(t, err)

	require.NoError(t, svc.Notify(context.Background(), "p-1", domain.NotificationAssignment, "Nueva asignación"))

	require.Len(t, mine, 1)
	assert.Equal(t, realtime.ActionInsert, mine[0].Action)
	assert.Empty(t, theirs, "filtered subscription must not see other recipients")
}

func TestListUnread_NewestFirstCappedAtTen(t *testing.T) {
	repo := &fakeNotifications{}
	svc := service.NewNotificationService(repo, realtime.NewMemoryFeed(), zap.NewNop())

	for i := 0; i < 12; i++ {
		require.NoError(t, svc.Notify(context.Background(), "p-1", domain.NotificationSystem, "aviso"))
	}
	require.NoError(t, svc.Notify(context.Background(), "p-2", domain.NotificationSystem, "ajeno"))

	result, err := svc.ListUnread(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, result, 10)
	for _, n := range result {
		assert.Equal(t, "p-1", n.DestinatarioID)
	}
}

func TestMarkRead_ScopedToRecipient(t *testing.T) {
	repo := &fakeNotifications{}
	svc := service.NewNotificationService(repo, realtime.NewMemoryFeed(), zap.NewNop())
	require.NoError(t, svc.Notify(context.Background(), "p-1", domain.NotificationSystem, "aviso"))
	id := repo.rows[0].ID

	// Someone else cannot acknowledge it.
	err := svc.MarkRead(context.Background(), "p-2", id)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.False(t, repo.rows[0].Leida)

	// The recipient can.
	require.NoError(t, svc.MarkRead(context.Background(), "p-1", id))
	assert.True(t, repo.rows[0].Leida)

	// Second acknowledgement of the same row reports not found.
	err = svc.MarkRead(context.Background(), "p-1", id)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestMarkAllRead_CountsOnlyOwnUnread(t *testing.T) {
	repo := &fakeNotifications{}
	svc := service.NewNotificationService(repo, realtime.NewMemoryFeed(), zap.NewNop())
	require.NoError(t, svc.Notify(context.Background(), "p-1", domain.NotificationSystem, "uno"))
	require.NoError(t, svc.Notify(context.Background(), "p-1", domain.NotificationSystem, "dos"))
	require.NoError(t, svc.Notify(context.Background(), "p-2", domain.NotificationSystem, "ajeno"))

	count, err := svc.MarkAllRead(context.Background(), "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	remaining, err := svc.ListUnread(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
