package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesEverySubscriber(t *testing.T) {
	broker := NewBroker()
	_, first := broker.Subscribe()
	_, second := broker.Subscribe()

	broker.Publish(Event{Type: TypeGroupCreated, Message: "Smith Family"})

	assert.Equal(t, Event{Type: TypeGroupCreated, Message: "Smith Family"}, <-first)
	assert.Equal(t, Event{Type: TypeGroupCreated, Message: "Smith Family"}, <-second)
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	broker := NewBroker()
	id, events := broker.Subscribe()

	broker.Unsubscribe(id)

	_, open := <-events
	assert.False(t, open)
	assert.Empty(t, broker.Subscribers())
}

func TestBroker_UnsubscribeUnknownIDIsANoOp(t *testing.T) {
	broker := NewBroker()

	broker.Unsubscribe("nope")
}

func TestBroker_SlowSubscriberDropsEventsInsteadOfBlocking(t *testing.T) {
	broker := NewBroker()
	_, events := broker.Subscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		broker.Publish(Event{Type: TypeRsvpSubmitted, Message: "batch"})
	}

	require.Len(t, events, subscriberBuffer)
}
