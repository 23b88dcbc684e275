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

import (
	"encoding/json"
	"sort"
	"strings"
)

// Condition is a single ALU condition flag.
type Condition string

// List of valid Condition values. The A condition is "always" and is not
// usually displayed.
const (
	CondA  Condition = "A"
	CondC  Condition = "C"
	CondZ  Condition = "Z"
	CondO  Condition = "O"
	CondN  Condition = "N"
	CondEQ Condition = "EQ"
	CondNE Condition = "NE"
	CondGT Condition = "GT"
	CondLT Condition = "LT"
	CondDI Condition = "DI"
	CondDO Condition = "DO"
)

// Conditions is an immutable set of condition flags. The zero value is the
// empty set.
type Conditions struct {
	flags []Condition
}

// NewConditions creates a set from the list of flags. Duplicates are ignored.
func NewConditions(flags ...Condition) Conditions {
	if len(flags) == 0 {
		return Conditions{}
	}

	f := make([]Condition, 0, len(flags))
	for _, c := range flags {
		dup := false
		for _, e := range f {
			if e == c {
				dup = true
				break // for loop
			}
		}
		if !dup {
			f = append(f, c)
		}
	}
	sort.Slice(f, func(i, j int) bool { return f[i] < f[j] })

	return Conditions{flags: f}
}

// Has returns true if the condition is in the set.
func (c Conditions) Has(cond Condition) bool {
	for _, f := range c.flags {
		if f == cond {
			return true
		}
	}
	return false
}

// Len returns the number of flags in the set.
func (c Conditions) Len() int {
	return len(c.flags)
}

// List returns a copy of the flags in the set.
func (c Conditions) List() []Condition {
	l := make([]Condition, len(c.flags))
	copy(l, c.flags)
	return l
}

// String returns the flags separated by spaces, omitting the "always"
// condition.
func (c Conditions) String() string {
	s := make([]string, 0, len(c.flags))
	for _, f := range c.flags {
		if f == CondA {
			continue
		}
		s = append(s, string(f))
	}
	return strings.Join(s, " ")
}

// Equal returns true if both sets contain the same flags.
func (c Conditions) Equal(d Conditions) bool {
	if len(c.flags) != len(d.flags) {
		return false
	}
	for i := range c.flags {
		if c.flags[i] != d.flags[i] {
			return false
		}
	}
	return true
}

// MarshalJSON implements the json.Marshaler interface. The set is encoded as
// an array of flag names.
func (c Conditions) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.List())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	var l []Condition
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}
	*c = NewConditions(l...)
	return nil
}
