// Package realtime exposes the table change feed: repositories publish
// insert/update/delete events after committing writes, and consumers
// (dashboard, notification stream) subscribe per table with an optional
// row filter. Subscriptions must be released via Unsubscribe.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// Action is the kind of row change.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// ChangeEvent describes a single row change on a table.
type ChangeEvent struct {
	Table   string            `json:"table"`
	Action  Action            `json:"action"`
	RowID   string            `json:"row_id"`
	Columns map[string]string `json:"columns,omitempty"`
	Payload json.RawMessage   `json:"payload,omitempty"`
}

// Filter restricts delivery to rows whose column equals a value. The zero
// Filter matches every row.
type Filter struct {
	Column string
	Equals string
}

// Matches reports whether the event passes the filter.
func (f Filter) Matches(ev ChangeEvent) bool {
	if f.Column == "" {
		return true
	}
	return ev.Columns[f.Column] == f.Equals
}

// Handler consumes change events.
type Handler func(ChangeEvent)

// Feed publishes and delivers change events.
type Feed interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Subscribe(ctx context.Context, table string, filter Filter, fn Handler) (*Subscription, error)
}

// Subscription is a live change-feed registration.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe releases the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
