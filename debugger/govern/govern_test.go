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

package govern_test

import (
	"testing"

	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/test"
)

func TestStateString(t *testing.T) {
	test.ExpectEquality(t, govern.Init.String(), "INIT")
	test.ExpectEquality(t, govern.Running.String(), "RUNNING")
	test.ExpectEquality(t, govern.Paused.String(), "PAUSED")
	test.ExpectEquality(t, govern.Terminated.String(), "TERMINATED")
	test.ExpectEquality(t, govern.State(99).String(), "")
}

func TestModeString(t *testing.T) {
	test.ExpectEquality(t, govern.ModeDebug.String(), "DEBUG")
	test.ExpectEquality(t, govern.ModeExport.String(), "EXPORT")
	test.ExpectEquality(t, govern.ModeNone.String(), "")
}

func TestParseMode(t *testing.T) {
	test.ExpectEquality(t, govern.ParseMode("serve"), govern.ModeServe)
	test.ExpectEquality(t, govern.ParseMode("SCRIPT"), govern.ModeScript)
	test.ExpectEquality(t, govern.ParseMode("PLAY"), govern.ModeNone)
	for _, m := range govern.Modes {
		test.ExpectEquality(t, govern.ParseMode(m.String()), m)
	}
}
