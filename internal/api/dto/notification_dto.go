package dto

import (
	"time"

	"github.com/groundops/crew-portal/internal/domain"
)

// NotificationResponse is the wire form of a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Tipo      string    `json:"tipo"`
	Contenido string    `json:"contenido"`
	Leida     bool      `json:"leida"`
	Fecha     time.Time `json:"fecha"`
}

// NewNotificationResponses converts a list.
func NewNotificationResponses(list []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Tipo:      string(n.Tipo),
			Contenido: n.Contenido,
			Leida:     n.Leida,
			Fecha:     n.Fecha,
		})
	}
	return out
}
