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

package snapshot

import "fmt"

// Operation is the name of the ALU operation that was effectively performed
// in a cycle. This may differ from the operation in the program listing when
// the instruction was not executed.
type Operation string

// OpA passes the left operand through unchanged.
const OpA Operation = "A"

// Write is a single memory write retired by the simulator during a cycle.
type Write struct {
	Address int   `yaml:"addr" json:"addr"`
	Value   uint8 `yaml:"value" json:"value"`
}

// Snapshot is the machine state captured at the end of a single cycle.
type Snapshot struct {
	// Cycle is assigned by the execution history when the snapshot is
	// appended. any value set by the simulator is overwritten
	Cycle int `json:"cycle"`

	PC       int   `json:"pc"`
	ALU      uint8 `json:"alu"`
	OperandA uint8 `json:"a"`
	OperandB uint8 `json:"b"`

	// whether the instruction at PC was executed or skipped because its
	// condition did not hold
	Executed bool `json:"exec"`

	Registers Registers  `json:"regs"`
	FlagsIn   Conditions `json:"flagsIn"`
	FlagsOut  Conditions `json:"flagsOut"`
	Operation Operation  `json:"op"`

	// memory writes retired by this cycle, in the order they happened
	Writes []Write `json:"writes"`
}

// Zero returns the snapshot used when there is no history. Everything is zero
// except that the instruction is considered executed and the effective
// operation is OpA.
func Zero() Snapshot {
	return Snapshot{
		Executed:  true,
		Operation: OpA,
	}
}

// Equal compares two snapshots field by field.
func (s Snapshot) Equal(t Snapshot) bool {
	if s.Cycle != t.Cycle || s.PC != t.PC || s.ALU != t.ALU ||
		s.OperandA != t.OperandA || s.OperandB != t.OperandB ||
		s.Executed != t.Executed || s.Registers != t.Registers ||
		s.Operation != t.Operation {
		return false
	}
	if !s.FlagsIn.Equal(t.FlagsIn) || !s.FlagsOut.Equal(t.FlagsOut) {
		return false
	}
	if len(s.Writes) != len(t.Writes) {
		return false
	}
	for i := range s.Writes {
		if s.Writes[i] != t.Writes[i] {
			return false
		}
	}
	return true
}

func (s Snapshot) String() string {
	e := "exec"
	if !s.Executed {
		e = "skip"
	}
	return fmt.Sprintf("cycle %d: pc=%d %s op=%s alu=%#02x a=%#02x b=%#02x [%s]",
		s.Cycle, s.PC, e, s.Operation, s.ALU, s.OperandA, s.OperandB, s.FlagsOut)
}
