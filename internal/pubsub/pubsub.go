// Package pubsub is a minimal in-process topic bus for the GraphQL
// subscriptions. Delivery is fire-and-forget: no replay, no persistence,
// and slow subscribers miss messages rather than block publishers.
package pubsub

import (
	"context"
	"sync"
)

const (
	TopicEventAdded   = "EVENT_ADDED"
	TopicBookingAdded = "BOOKING_ADDED"
)

const subscriberBuffer = 16

type subscriber struct {
	topic string
	ch    chan any
}

type PubSub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func New() *PubSub {
	return &PubSub{
		subs: map[*subscriber]struct{}{},
	}
}

// Subscribe returns a channel receiving every message published to the
// topic after this call. The subscription ends when ctx is done.
// The channel is bidirectional because graphql-go's subscription
// executor only accepts chan interface{}.
func (ps *PubSub) Subscribe(ctx context.Context, topic string) chan any {
	sub := &subscriber{topic: topic, ch: make(chan any, subscriberBuffer)}

	ps.mu.Lock()
	ps.subs[sub] = struct{}{}
	ps.mu.Unlock()

	go func() {
		<-ctx.Done()
		ps.mu.Lock()
		delete(ps.subs, sub)
		ps.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch
}

// Publish delivers the message to current subscribers of the topic.
// A subscriber with a full buffer is skipped.
func (ps *PubSub) Publish(topic string, message any) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for sub := range ps.subs {
		if sub.topic != topic {
			continue
		}
		select {
		case sub.ch <- message:
		default:
		}
	}
}
