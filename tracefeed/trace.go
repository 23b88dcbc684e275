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

package tracefeed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/snapshot"
)

// Cycle is a single cycle as it is recorded in a trace file.
type Cycle struct {
	PC        int                `yaml:"pc"`
	ALU       uint8              `yaml:"alu"`
	OperandA  uint8              `yaml:"a"`
	OperandB  uint8              `yaml:"b"`
	Executed  *bool              `yaml:"exec"`
	Registers snapshot.Registers `yaml:"regs"`
	FlagsIn   []string           `yaml:"flagsIn"`
	FlagsOut  []string           `yaml:"flagsOut"`
	Operation string             `yaml:"op"`
	Writes    []snapshot.Write   `yaml:"writes"`
}

// Snapshot converts the recorded cycle to a snapshot. A cycle that does not
// say whether it was executed is considered executed and a missing operation
// is taken to be OpA.
func (c Cycle) Snapshot() snapshot.Snapshot {
	s := snapshot.Snapshot{
		PC:        c.PC,
		ALU:       c.ALU,
		OperandA:  c.OperandA,
		OperandB:  c.OperandB,
		Executed:  c.Executed == nil || *c.Executed,
		Registers: c.Registers,
		FlagsIn:   conditions(c.FlagsIn),
		FlagsOut:  conditions(c.FlagsOut),
		Operation: snapshot.Operation(c.Operation),
		Writes:    c.Writes,
	}
	if s.Operation == "" {
		s.Operation = snapshot.OpA
	}
	return s
}

func conditions(flags []string) snapshot.Conditions {
	c := make([]snapshot.Condition, len(flags))
	for i, f := range flags {
		c[i] = snapshot.Condition(f)
	}
	return snapshot.NewConditions(c...)
}

// Trace is a program listing and the cycles executed by that program.
type Trace struct {
	Program []program.Instruction `yaml:"program"`
	Cycles  []Cycle               `yaml:"cycles"`
}

// Load a trace from a reader.
func Load(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return &t, nil
		}
		return nil, curated.Errorf("tracefeed: %v", curated.Errorf(curated.InvalidArgument, err))
	}

	for i, c := range t.Cycles {
		for _, w := range c.Writes {
			if w.Address < 0 || w.Address > 0xffff {
				return nil, curated.Errorf("tracefeed: %v", curated.Errorf(curated.InvalidArgument,
					fmt.Sprintf("cycle %d: write address %d", i, w.Address)))
			}
		}
	}

	return &t, nil
}

// LoadFile loads a trace from the named file.
func LoadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("tracefeed: %v", err)
	}
	defer f.Close()
	return Load(f)
}
