package domain

import "time"

// NotificationType tags the origin of a notification.
type NotificationType string

const (
	NotificationAssignment   NotificationType = "asignacion"
	NotificationAnnouncement NotificationType = "informativo"
	NotificationSystem       NotificationType = "sistema"
)

// Notification is addressed to a single agent and mutated only by the
// recipient marking it read.
type Notification struct {
	ID             string
	DestinatarioID string
	Tipo           NotificationType
	Contenido      string
	Leida          bool
	Fecha          time.Time
}
