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

// Package recent tracks the memory addresses that have been written to since
// the last reset. It exists purely to support highlighting in the inspection
// surface and is independent of the values held by the memory store.
package recent

import (
	"sort"
	"sync"

	"github.com/spam1/spamdbg/bus"
)

// Publisher is the part of the bus used by the set.
type Publisher interface {
	Publish(bus.Event)
}

// Set of recently written addresses. The zero value is not usable, use
// NewSet().
type Set struct {
	crit      sync.Mutex
	addresses map[int]struct{}
	pub       Publisher
}

// NewSet is the preferred method of initialisation for the Set type. The
// publisher can be nil.
func NewSet(pub Publisher) *Set {
	return &Set{
		addresses: make(map[int]struct{}),
		pub:       pub,
	}
}

// Add address to the set. Returns true if the address was not already in the
// set. A Highlighted event is published only on first insertion.
func (s *Set) Add(address int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()

	if _, ok := s.addresses[address]; ok {
		return false
	}
	s.addresses[address] = struct{}{}

	if s.pub != nil {
		s.pub.Publish(bus.Event{Kind: bus.Highlighted, Address: address})
	}

	return true
}

// Contains returns true if address is in the set.
func (s *Set) Contains(address int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	_, ok := s.addresses[address]
	return ok
}

// Clear empties the set and publishes a single Cleared event, regardless of
// how many addresses were removed.
func (s *Set) Clear() {
	s.crit.Lock()
	defer s.crit.Unlock()

	clear(s.addresses)

	if s.pub != nil {
		s.pub.Publish(bus.Event{Kind: bus.Cleared, Address: -1})
	}
}

// Size returns the number of addresses in the set.
func (s *Set) Size() int {
	s.crit.Lock()
	defer s.crit.Unlock()
	return len(s.addresses)
}

// Addresses returns the members of the set in ascending order.
func (s *Set) Addresses() []int {
	s.crit.Lock()
	l := make([]int, 0, len(s.addresses))
	for a := range s.addresses {
		l = append(l, a)
	}
	s.crit.Unlock()

	sort.Ints(l)
	return l
}
