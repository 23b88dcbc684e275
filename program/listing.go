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

// Package program holds the listing of instructions loaded into the
// simulator. The listing is append-only: every load adds instructions to the
// end of the listing and nothing is ever replaced.
package program

import (
	"fmt"
	"sync"

	"github.com/spam1/spamdbg/curated"
)

// Instruction is a single entry in the program listing. The fields are the
// symbolic names reported by the simulator. They are not interpreted.
type Instruction struct {
	Target      string `yaml:"target" json:"target"`
	Left        string `yaml:"left" json:"left"`
	Right       string `yaml:"right" json:"right"`
	Operation   string `yaml:"op" json:"op"`
	SetFlags    string `yaml:"setflags" json:"setflags"`
	Condition   string `yaml:"cond" json:"cond"`
	Invert      string `yaml:"inv" json:"inv"`
	AddressMode string `yaml:"amode" json:"amode"`
	Address     uint16 `yaml:"address" json:"address"`
	Immediate   uint8  `yaml:"immed" json:"immed"`
}

func (in Instruction) String() string {
	return fmt.Sprintf("%s = %s %s %s [%s%s] addr=%#04x imm=%#02x",
		in.Target, in.Left, in.Operation, in.Right, in.Condition, in.Invert, in.Address, in.Immediate)
}

// Listing is the ordered program listing. It is safe for concurrent use.
type Listing struct {
	crit         sync.RWMutex
	instructions []Instruction
}

// NewListing is the preferred method of initialisation for the Listing type.
func NewListing() *Listing {
	return &Listing{
		instructions: make([]Instruction, 0),
	}
}

// Append adds instructions to the end of the listing.
func (l *Listing) Append(instructions ...Instruction) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.instructions = append(l.instructions, instructions...)
}

// Len returns the number of instructions in the listing.
func (l *Listing) Len() int {
	l.crit.RLock()
	defer l.crit.RUnlock()
	return len(l.instructions)
}

// At returns the instruction at index idx. An index outside of the listing
// is a NotFound error.
func (l *Listing) At(idx int) (Instruction, error) {
	l.crit.RLock()
	defer l.crit.RUnlock()
	if idx < 0 || idx >= len(l.instructions) {
		return Instruction{}, curated.Errorf("program: %v", curated.Errorf(curated.NotFound, fmt.Sprintf("instruction %d", idx)))
	}
	return l.instructions[idx], nil
}

// All returns a copy of the listing.
func (l *Listing) All() []Instruction {
	l.crit.RLock()
	defer l.crit.RUnlock()
	c := make([]Instruction, len(l.instructions))
	copy(c, l.instructions)
	return c
}
