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

package history

import "fmt"

// Timeline summarises the history. All fields are consistent with each
// other.
type Timeline struct {
	// the number of snapshots in the history
	Length int `json:"length"`

	// the first and last cycle available. both fields are -1 if the history
	// is empty
	Start int `json:"start"`
	End   int `json:"end"`

	// number of cycles in which the instruction was executed and the number
	// in which it was skipped
	Executed int `json:"executed"`
	Skipped  int `json:"skipped"`

	// the halt register was high in the most recent snapshot
	Halted bool `json:"halted"`
}

func (tl Timeline) String() string {
	if tl.Length == 0 {
		return "empty"
	}
	s := fmt.Sprintf("cycles %d to %d (%d executed, %d skipped)", tl.Start, tl.End, tl.Executed, tl.Skipped)
	if tl.Halted {
		s = fmt.Sprintf("%s halted", s)
	}
	return s
}

// Timeline returns the current timeline summary.
func (h *History) Timeline() Timeline {
	v := h.current.Load()

	if v.length == 0 {
		return Timeline{Start: -1, End: -1}
	}

	return Timeline{
		Length:   v.length,
		Start:    0,
		End:      v.length - 1,
		Executed: v.executed,
		Skipped:  v.length - v.executed,
		Halted:   v.halted,
	}
}
