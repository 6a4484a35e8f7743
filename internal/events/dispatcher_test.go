package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventSuggestionCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})
	d.Subscribe(EventSuggestionCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSuggestionCreated, SuggestionID: "s-1"})
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "s-1", received[0].SuggestionID)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventVoteCast, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSuggestionCreated})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	secondCalled := false
	d.Subscribe(EventVoteCast, func(_ context.Context, _ Event) error {
		return errors.New("handler boom")
	})
	d.Subscribe(EventVoteCast, func(_ context.Context, _ Event) error {
		secondCalled = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventVoteCast})
	assert.True(t, secondCalled)
}
