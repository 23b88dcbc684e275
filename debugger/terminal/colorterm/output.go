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
	"fmt"
	"strings"

	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/debugger/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.isSilenced() && style != terminal.StyleError {
		return
	}

	switch style {
	case terminal.StyleEcho:
		ct.TermPrint(ansi.DimPens["white"])
	case terminal.StyleHelp:
		ct.TermPrint(ansi.DimPens["white"])
	case terminal.StyleFeedback:
		ct.TermPrint(ansi.DimPens["white"])
	case terminal.StyleSnapshot:
		ct.TermPrint(ansi.Pens["cyan"])
	case terminal.StyleMemory:
		ct.TermPrint(ansi.DimPens["green"])
	case terminal.StyleHighlight:
		ct.TermPrint(ansi.Pens["yellow"])
	case terminal.StyleLog:
		ct.TermPrint(ansi.DimPens["magenta"])
	case terminal.StyleError:
		ct.TermPrint(ansi.Pens["red"])
		s = fmt.Sprintf("* %s", s)
	}

	// the terminal is in cbreak mode so each line needs an explicit carriage
	// return
	s = strings.ReplaceAll(s, "\n", "\r\n")

	ct.TermPrint(s)
	ct.TermPrint(ansi.NormalPen)
	ct.TermPrint("\r\n")
	_ = ct.FlushOutput()
}

// printPrompt draws the prompt and the input so far. The cursor is placed at
// the cursor position.
func (ct *ColorTerminal) printPrompt(prompt terminal.Prompt, input []rune, cursor int) {
	ct.TermPrint(ansi.ClearLine)
	ct.TermPrint(ansi.CursorStart)

	switch prompt.State {
	case govern.Init:
		ct.TermPrint(ansi.DimPens["white"])
	case govern.Terminated:
		ct.TermPrint(ansi.Pens["red"])
	case govern.Running:
		ct.TermPrint(ansi.Pens["green"])
	default:
		ct.TermPrint(ansi.Pens["blue"])
	}
	ct.TermPrint(prompt.String())
	ct.TermPrint(ansi.NormalPen)

	ct.TermPrint(string(input))
	ct.TermPrint(ansi.CursorBack(len(input) - cursor))
	_ = ct.FlushOutput()
}
