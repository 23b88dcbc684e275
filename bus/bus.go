// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

package bus

import (
	"sync"
)

// DefaultDepth is the queue depth used by NewBus() if the depth argument is
// not positive.
const DefaultDepth = 256

// SubscribeOption customises a single subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	depth int
}

// WithDepth sets the queue depth for the subscription. Values less than one
// are ignored.
func WithDepth(depth int) SubscribeOption {
	return func(c *subscribeConfig) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

// Bus is the publish/subscribe channel. The zero value is not usable, use
// NewBus().
type Bus struct {
	crit   sync.RWMutex
	subs   map[*Subscription]struct{}
	depth  int
	closed bool
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(depth int) *Bus {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Bus{
		subs:  make(map[*Subscription]struct{}),
		depth: depth,
	}
}

// Subscribe registers the handler function. The handler is called from a
// goroutine dedicated to the subscription, never from the publisher.
//
// Subscribing to a closed bus returns a subscription that never receives any
// events.
func (b *Bus) Subscribe(handler func(Event), opts ...SubscribeOption) *Subscription {
	cfg := subscribeConfig{depth: b.depth}
	for _, o := range opts {
		o(&cfg)
	}

	s := newSubscription(handler, cfg.depth)

	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed {
		s.stop()
		return s
	}

	b.subs[s] = struct{}{}

	return s
}

// Unsubscribe removes the subscription from the bus. Events still queued are
// discarded. The handler may be running at the time Unsubscribe() returns but
// will not be called again after that.
//
// It is safe to call Unsubscribe() from inside the handler.
func (b *Bus) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}

	b.crit.Lock()
	delete(b.subs, s)
	b.crit.Unlock()

	s.stop()
}

// Publish sends the event to every subscriber. Publish never blocks on a
// subscriber.
func (b *Bus) Publish(ev Event) {
	b.crit.RLock()
	defer b.crit.RUnlock()

	for s := range b.subs {
		s.push(ev)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.crit.RLock()
	defer b.crit.RUnlock()
	return len(b.subs)
}

// Close unsubscribes everything and waits for the subscription goroutines to
// end. Close must not be called from inside a handler.
func (b *Bus) Close() {
	b.crit.Lock()
	subs := b.subs
	b.subs = make(map[*Subscription]struct{})
	b.closed = true
	b.crit.Unlock()

	for s := range subs {
		s.stop()
		<-s.done
	}
}
