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

package govern

// State indicates the session's state.
type State int

// List of possible session states.
//
// Init is the state before the first cycle has been recorded and while no
// permits are outstanding.
//
// Running means the simulator has permits outstanding or is part way through
// a cycle. Paused means the simulator is blocked waiting for a permit.
//
// Terminated is entered when the halt register is high in the most recent
// snapshot, when a break condition has been satisfied, or when the clock gate
// has been closed. A satisfied break condition can be cleared, returning the
// session to Paused.
const (
	Init State = iota
	Running
	Paused
	Terminated
)

func (s State) String() string {
	switch s {
	case Init:
		return "INIT"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case Terminated:
		return "TERMINATED"
	}

	return ""
}
