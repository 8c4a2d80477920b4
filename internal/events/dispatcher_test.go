package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToMatchingSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var signedIn, signedOut int
	d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		signedIn++
		return nil
	})
	d.Subscribe(EventSignedOut, func(context.Context, Event) error {
		signedOut++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))

	assert.Equal(t, 2, signedIn)
	assert.Zero(t, signedOut)
}

func TestDispatcher_UnsubscribeStopsDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	unsubscribe := d.Subscribe(EventTokenRefreshed, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTokenRefreshed}))
	unsubscribe()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTokenRefreshed}))

	assert.Equal(t, 1, calls)
}

// One failing handler must not starve the others.
func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	delivered := 0
	d.Subscribe(EventAgentEnrolled, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventAgentEnrolled, func(context.Context, Event) error {
		delivered++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventAgentEnrolled}))
	assert.Equal(t, 1, delivered)
}
