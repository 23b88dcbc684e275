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
	"sync/atomic"
)

// Subscription is returned by Subscribe() and is used to unsubscribe from the
// bus.
type Subscription struct {
	handler func(Event)

	// ring buffer of pending events
	crit  sync.Mutex
	queue []Event
	head  int
	count int

	dropped   atomic.Uint64
	delivered atomic.Uint64

	notify chan struct{}
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newSubscription(handler func(Event), depth int) *Subscription {
	s := &Subscription{
		handler: handler,
		queue:   make([]Event, depth),
		notify:  make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.service()
	return s
}

// push adds the event to the queue, dropping the oldest event if the queue is
// full. never blocks for longer than it takes to acquire the queue lock
func (s *Subscription) push(ev Event) {
	s.crit.Lock()
	if s.count == len(s.queue) {
		s.head = (s.head + 1) % len(s.queue)
		s.count--
		s.dropped.Add(1)
	}
	s.queue[(s.head+s.count)%len(s.queue)] = ev
	s.count++
	s.crit.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription) pop() (Event, bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	if s.count == 0 {
		return Event{}, false
	}
	ev := s.queue[s.head]
	s.head = (s.head + 1) % len(s.queue)
	s.count--
	return ev, true
}

func (s *Subscription) service() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case <-s.notify:
			for {
				ev, ok := s.pop()
				if !ok {
					break // for loop
				}
				s.handler(ev)
				s.delivered.Add(1)

				select {
				case <-s.quit:
					return
				default:
				}
			}
		}
	}
}

func (s *Subscription) stop() {
	s.once.Do(func() {
		close(s.quit)
	})
}

// Dropped returns the number of events that have been discarded because the
// queue was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Delivered returns the number of events that have been passed to the
// handler.
func (s *Subscription) Delivered() uint64 {
	return s.delivered.Load()
}

// Pending returns the number of events waiting to be delivered.
func (s *Subscription) Pending() int {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.count
}
