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

package plainterm_test

import (
	"io"
	"strings"
	"testing"

	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/debugger/terminal/plainterm"
	"github.com/spam1/spamdbg/test"
)

func TestPlainTerminal(t *testing.T) {
	out := &test.CompareWriter{}
	pt := &plainterm.PlainTerminal{
		Input:  strings.NewReader("STEP 10\r\nLATEST\nQUIT"),
		Output: out,
	}
	test.DemandSuccess(t, pt.Initialise())
	defer pt.CleanUp()

	test.ExpectFailure(t, pt.IsInteractive())

	var p terminal.Prompt
	for _, expected := range []string{"STEP 10", "LATEST", "QUIT"} {
		s, err := pt.TermRead(p)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, s, expected)
	}
	_, err := pt.TermRead(p)
	test.ExpectEquality(t, err, io.EOF)

	// prompt is not printed for non-interactive input
	test.ExpectEquality(t, out.String(), "")

	pt.TermPrintLine(terminal.StyleEcho, "echo")
	pt.TermPrintLine(terminal.StyleFeedback, "feedback")
	pt.TermPrintLine(terminal.StyleError, "error")
	test.ExpectEquality(t, out.String(), "feedback\n* error\n")

	out.Clear()
	pt.Silence(true)
	pt.TermPrintLine(terminal.StyleFeedback, "feedback")
	pt.TermPrintLine(terminal.StyleError, "error")
	test.ExpectEquality(t, out.String(), "* error\n")
}
