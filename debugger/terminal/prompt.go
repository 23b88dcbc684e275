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

package terminal

import (
	"fmt"
	"strings"

	"github.com/spam1/spamdbg/debugger/govern"
)

// Prompt specifies the prompt text and the information shown alongside it.
type Prompt struct {
	// the most recent cycle and the program counter at that cycle
	Cycle int
	PC    int

	// state of the session
	State govern.State

	// outstanding permits
	Permits int

	// whether the history is empty. if it is then the Cycle and PC fields
	// are not shown
	Empty bool
}

// String returns the prompt with "standard" decoration. Good for terminals
// with no graphical capabilities at all.
func (p Prompt) String() string {
	s := strings.Builder{}
	s.WriteString("[ ")
	if !p.Empty {
		s.WriteString(fmt.Sprintf("%d pc=%#04x ", p.Cycle, p.PC))
	}
	s.WriteString(p.State.String())
	if p.Permits > 0 {
		s.WriteString(fmt.Sprintf(" +%d", p.Permits))
	}
	s.WriteString(" ]")

	switch p.State {
	case govern.Terminated:
		s.WriteString(" ! ")
	default:
		s.WriteString(" >> ")
	}

	return s.String()
}
