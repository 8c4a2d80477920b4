package events

import (
	"time"

	"github.com/groundops/crew-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// Auth-state feed, consumed by session resolvers.
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"

	// Domain events.
	EventAgentEnrolled EventType = "agent_enrolled"
)

// Event represents an event emitted by the identity provider or services.
type Event struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	PrincipalID string          `json:"principal_id,omitempty"`
	Session     *domain.Session `json:"session,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     interface{}     `json:"payload,omitempty"`
}
