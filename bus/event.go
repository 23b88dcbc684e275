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

import "fmt"

// Kind identifies the type of event.
type Kind int

// List of valid Kind values.
const (
	// the value of the memory cell at Address has been written to
	Written Kind = iota

	// Address has been added to the recent write set
	Highlighted

	// the recent write set has been emptied. Address is not meaningful
	Cleared
)

func (k Kind) String() string {
	switch k {
	case Written:
		return "written"
	case Highlighted:
		return "highlighted"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

// Event is published on the bus.
type Event struct {
	Kind    Kind
	Address int
}

func (ev Event) String() string {
	if ev.Kind == Cleared {
		return ev.Kind.String()
	}
	return fmt.Sprintf("%s %#04x", ev.Kind, ev.Address)
}
