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

//go:build linux || darwin || freebsd || netbsd || openbsd

package colorterm

import (
	"testing"

	"github.com/spam1/spamdbg/test"
)

func TestCommandHistory(t *testing.T) {
	ct := NewColorTerminal()
	ct.addHistory("STEP")
	ct.addHistory("STEP")
	ct.addHistory("")
	ct.addHistory("RUN")
	test.ExpectEquality(t, len(ct.commandHistory), 2)
	test.ExpectEquality(t, ct.commandHistory[1], "RUN")

	for i := 0; i < maxHistory*2; i++ {
		ct.addHistory(string(rune('a' + i%26)))
	}
	test.ExpectEquality(t, len(ct.commandHistory), maxHistory)
}
