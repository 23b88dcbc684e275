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

package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/snapshot"
)

// breakpoint is a single optional break condition
type breakpoint struct {
	set   bool
	value int
}

func (bp breakpoint) String() string {
	if !bp.set {
		return "none"
	}
	return fmt.Sprintf("%d", bp.value)
}

// parseBreakpoint interprets the text entered by the user. The empty string
// and "none" clear the breakpoint. Values can be decimal or hexadecimal with
// the 0x prefix. Negative values are not allowed.
func parseBreakpoint(s string) (breakpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return breakpoint{}, nil
	}

	var v int64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseInt(s, 10, 64)
	}

	if err != nil || v < 0 {
		return breakpoint{}, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("break value %q", s))
	}

	return breakpoint{set: true, value: int(v)}, nil
}

// breakpoints keeps track of the break conditions. they are ORed together
type breakpoints struct {
	cycle breakpoint
	pc    breakpoint
}

// check the snapshot against the break conditions. returns a description of
// the condition that matched or the empty string
func (bk breakpoints) check(s snapshot.Snapshot) string {
	if bk.cycle.set && s.Cycle == bk.cycle.value {
		return fmt.Sprintf("cycle %d", s.Cycle)
	}
	if bk.pc.set && s.PC == bk.pc.value {
		return fmt.Sprintf("pc %#04x", s.PC)
	}
	return ""
}

func (bk breakpoints) String() string {
	return fmt.Sprintf("cycle: %s, pc: %s", bk.cycle, bk.pc)
}

// ConfigureBreakOnCycle sets the cycle break condition. The empty string or
// "none" clears the condition. If the value cannot be interpreted an error is
// returned and the previous condition is retained.
func (sess *Session) ConfigureBreakOnCycle(value string) error {
	bp, err := parseBreakpoint(value)
	if err != nil {
		return curated.Errorf("break cycle: %v", err)
	}

	sess.crit.Lock()
	defer sess.crit.Unlock()
	sess.breaks.cycle = bp
	logger.Logf(sess.perm, "break", "cycle break: %s", bp)

	return nil
}

// ConfigureBreakOnProgramCounter sets the program counter break condition. The
// empty string or "none" clears the condition. If the value cannot be
// interpreted an error is returned and the previous condition is retained.
func (sess *Session) ConfigureBreakOnProgramCounter(value string) error {
	bp, err := parseBreakpoint(value)
	if err != nil {
		return curated.Errorf("break pc: %v", err)
	}

	sess.crit.Lock()
	defer sess.crit.Unlock()
	sess.breaks.pc = bp
	logger.Logf(sess.perm, "break", "pc break: %s", bp)

	return nil
}

// Breakpoints returns a description of the current break conditions.
func (sess *Session) Breakpoints() string {
	sess.crit.Lock()
	defer sess.crit.Unlock()
	return sess.breaks.String()
}

// BreakReason returns a description of the break condition that caused the
// session to pause. The empty string if no break condition is latched.
func (sess *Session) BreakReason() string {
	sess.crit.Lock()
	defer sess.crit.Unlock()
	return sess.latched
}
