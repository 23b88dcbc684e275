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

package terminal_test

import (
	"testing"

	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/test"
)

func TestPrompt(t *testing.T) {
	p := terminal.Prompt{Empty: true, State: govern.Init}
	test.ExpectEquality(t, p.String(), "[ INIT ] >> ")

	p = terminal.Prompt{Cycle: 12, PC: 0x10, State: govern.Running, Permits: 3}
	test.ExpectEquality(t, p.String(), "[ 12 pc=0x10 RUNNING +3 ] >> ")

	p = terminal.Prompt{Cycle: 12, PC: 0x10, State: govern.Terminated}
	test.ExpectEquality(t, p.String(), "[ 12 pc=0x10 TERMINATED ] ! ")
}
