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

package recent_test

import (
	"testing"

	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/recent"
	"github.com/spam1/spamdbg/test"
)

// publisher records events synchronously
type publisher struct {
	events []bus.Event
}

func (p *publisher) Publish(ev bus.Event) {
	p.events = append(p.events, ev)
}

func TestIdempotentAdd(t *testing.T) {
	var p publisher
	s := recent.NewSet(&p)

	test.ExpectSuccess(t, s.Add(0x20))
	test.ExpectFailure(t, s.Add(0x20))
	test.ExpectEquality(t, s.Size(), 1)
	test.ExpectSuccess(t, s.Contains(0x20))
	test.ExpectFailure(t, s.Contains(0x21))

	// only the first insertion is announced
	test.DemandEquality(t, len(p.events), 1)
	test.ExpectEquality(t, p.events[0], bus.Event{Kind: bus.Highlighted, Address: 0x20})
}

func TestClear(t *testing.T) {
	var p publisher
	s := recent.NewSet(&p)

	added := []int{5, 1, 300, 65535}
	for _, a := range added {
		s.Add(a)
	}
	test.ExpectEquality(t, s.Size(), len(added))

	s.Clear()
	test.ExpectEquality(t, s.Size(), 0)
	for _, a := range added {
		test.ExpectFailure(t, s.Contains(a), a)
	}

	// one event per add and then a single cleared event
	test.DemandEquality(t, len(p.events), len(added)+1)
	test.ExpectEquality(t, p.events[len(p.events)-1].Kind, bus.Cleared)

	// address can be highlighted again after a clear
	test.ExpectSuccess(t, s.Add(5))
}

func TestAddresses(t *testing.T) {
	s := recent.NewSet(nil)
	for _, a := range []int{9, 3, 7, 3} {
		s.Add(a)
	}
	l := s.Addresses()
	test.DemandEquality(t, len(l), 3)
	test.ExpectEquality(t, l[0], 3)
	test.ExpectEquality(t, l[1], 7)
	test.ExpectEquality(t, l[2], 9)
}
