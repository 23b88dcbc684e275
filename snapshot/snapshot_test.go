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

package snapshot_test

import (
	"encoding/json"
	"testing"

	"github.com/spam1/spamdbg/snapshot"
	"github.com/spam1/spamdbg/test"
)

func TestZero(t *testing.T) {
	z := snapshot.Zero()
	test.ExpectEquality(t, z.Cycle, 0)
	test.ExpectEquality(t, z.PC, 0)
	test.ExpectEquality(t, z.Executed, true)
	test.ExpectEquality(t, z.Registers, snapshot.Registers{})
	test.ExpectEquality(t, z.FlagsIn.Len(), 0)
	test.ExpectEquality(t, z.FlagsOut.Len(), 0)
	test.ExpectEquality(t, z.Operation, snapshot.OpA)
}

func TestDerivedAddresses(t *testing.T) {
	r := snapshot.Registers{PCHi: 0x12, PCLo: 0x34, MARHi: 0xff, MARLo: 0x01}
	test.ExpectEquality(t, r.ProgramAddress(), uint16(0x1234))
	test.ExpectEquality(t, r.MAR(), uint16(0xff01))
	test.ExpectFailure(t, r.Halted())

	r.Halt = 1
	test.ExpectSuccess(t, r.Halted())
}

func TestConditions(t *testing.T) {
	c := snapshot.NewConditions(snapshot.CondZ, snapshot.CondA, snapshot.CondC, snapshot.CondZ)
	test.ExpectEquality(t, c.Len(), 3)
	test.ExpectSuccess(t, c.Has(snapshot.CondZ))
	test.ExpectFailure(t, c.Has(snapshot.CondN))

	// the always condition is not shown
	test.ExpectEquality(t, c.String(), "C Z")

	d := snapshot.NewConditions(snapshot.CondC, snapshot.CondZ, snapshot.CondA)
	test.ExpectSuccess(t, c.Equal(d))
	test.ExpectFailure(t, c.Equal(snapshot.Conditions{}))
}

func TestEqual(t *testing.T) {
	a := snapshot.Snapshot{PC: 5, Writes: []snapshot.Write{{Address: 10, Value: 1}}}
	b := snapshot.Snapshot{PC: 5, Writes: []snapshot.Write{{Address: 10, Value: 1}}}
	test.ExpectSuccess(t, a.Equal(b))

	b.Writes[0].Value = 2
	test.ExpectFailure(t, a.Equal(b))
}

func TestConditionsJSON(t *testing.T) {
	c := snapshot.NewConditions(snapshot.CondZ, snapshot.CondC)
	b, err := c.MarshalJSON()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(b), `["C","Z"]`)

	b, err = snapshot.Conditions{}.MarshalJSON()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(b), `[]`)
}

func TestSnapshotJSON(t *testing.T) {
	s := snapshot.Snapshot{
		Cycle:     3,
		PC:        7,
		Executed:  true,
		FlagsOut:  snapshot.NewConditions(snapshot.CondZ, snapshot.CondEQ),
		Operation: snapshot.OpA,
		Writes:    []snapshot.Write{{Address: 0x10, Value: 1}},
	}

	b, err := json.Marshal(s)
	test.DemandSuccess(t, err)

	var d snapshot.Snapshot
	test.DemandSuccess(t, json.Unmarshal(b, &d))
	test.ExpectSuccess(t, d.Equal(s))
	test.ExpectSuccess(t, d.FlagsOut.Has(snapshot.CondEQ))
}
