package activity

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// Activity types published by the services.
const (
	TypeGroupCreated  = "group-created"
	TypeGuestCreated  = "guest-created"
	TypeGuestDeleted  = "guest-deleted"
	TypeRsvpSubmitted = "rsvp-submitted"
)

const subscriberBuffer = 8

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]chan Event),
		lock:        sync.Mutex{},
	}
}

type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Broker fans out admin-relevant happenings to subscribed admin panels.
// Delivery is best effort; a subscriber with a full channel misses the event
// rather than blocking the publisher.
type Broker struct {
	subscribers map[string]chan Event
	lock        sync.Mutex
}

func (b *Broker) Subscribe() (string, <-chan Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := uuid.New().String()
	channel := make(chan Event, subscriberBuffer)
	b.subscribers[id] = channel
	return id, channel
}

func (b *Broker) Unsubscribe(id string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	channel, ok := b.subscribers[id]
	if !ok {
		return
	}
	close(channel)
	delete(b.subscribers, id)
}

func (b *Broker) Subscribers() []string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return maps.Keys(b.subscribers)
}

func (b *Broker) Publish(event Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	for _, channel := range b.subscribers {
		select {
		case channel <- event:
		default:
		}
	}
}
