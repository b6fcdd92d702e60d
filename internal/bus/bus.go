package bus

import (
	"sync"

	"mathdeck/internal/logger"
)

// Channel identifies one class of store change.
type Channel string

const (
	DecksChanged    Channel = "decks"
	ProblemsChanged Channel = "problems"
	TagsChanged     Channel = "tags"
)

// Subscriber receives a notification that data on a channel changed.
// There is no payload: receivers re-query the repository for their own
// subset of truth rather than consuming a delta.
type Subscriber interface {
	StoreChanged(ch Channel)
}

// Bus is an in-process publish/subscribe mechanism decoupling store
// mutations from view refresh. Handlers run synchronously on the
// publishing goroutine, in subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs map[Channel][]Subscriber
	log  *logger.Logger
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		subs: make(map[Channel][]Subscriber),
		log:  logger.Default().WithPrefix("bus"),
	}
}

// Subscribe registers a subscriber on a channel. Subscribing the same
// subscriber twice on one channel is a no-op.
func (b *Bus) Subscribe(ch Channel, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs[ch] {
		if s == sub {
			return
		}
	}
	b.subs[ch] = append(b.subs[ch], sub)
}

// Unsubscribe removes a subscriber from a channel.
func (b *Bus) Unsubscribe(ch Channel, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs[ch] {
		if s == sub {
			b.subs[ch] = append(b.subs[ch][:i], b.subs[ch][i+1:]...)
			return
		}
	}
}

// Publish notifies every subscriber on the channel. A panicking
// subscriber is logged and does not stop fan-out to the rest.
func (b *Bus) Publish(ch Channel) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subs[ch]))
	copy(subs, b.subs[ch])
	b.mu.RUnlock()

	b.log.Debug("publishing %s-changed to %d subscribers", ch, len(subs))
	for _, sub := range subs {
		b.notify(ch, sub)
	}
}

func (b *Bus) notify(ch Channel, sub Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("subscriber panicked on %s-changed: %v", ch, r)
		}
	}()
	sub.StoreChanged(ch)
}

// SubscriberCount returns the number of subscribers on a channel.
func (b *Bus) SubscriberCount(ch Channel) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ch])
}
