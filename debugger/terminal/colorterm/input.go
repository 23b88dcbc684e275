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
	"io"
	"strings"
	"unicode"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/debugger/terminal/colorterm/easyterm"
)

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	input := make([]rune, 0, 64)
	cursor := 0

	// history index is one past the end of the history when we're not
	// browsing the history
	historyIdx := len(ct.commandHistory)

	// the input that was being edited before history browsing started
	var pending []rune

	ct.printPrompt(prompt, input, cursor)

	for {
		r, _, err := ct.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return "", err
			}
			return "", curated.Errorf("colorterm: %v", err)
		}

		switch r {
		case easyterm.KeyInterrupt:
			ct.TermPrint("\r\n")
			_ = ct.FlushOutput()
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyEOF:
			if len(input) == 0 {
				ct.TermPrint("\r\n")
				_ = ct.FlushOutput()
				return "", curated.Errorf(terminal.UserQuit)
			}

		case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
			ct.TermPrint("\r\n")
			_ = ct.FlushOutput()
			s := strings.TrimSpace(string(input))
			ct.addHistory(s)
			return s, nil

		case easyterm.KeyBackspace, easyterm.KeyDelete:
			if cursor > 0 {
				input = append(input[:cursor-1], input[cursor:]...)
				cursor--
			}

		case easyterm.KeyClearLine:
			input = input[:0]
			cursor = 0

		case easyterm.KeyTab:
			ct.crit.Lock()
			tc := ct.tabCompleter
			ct.crit.Unlock()
			if tc != nil {
				input = []rune(tc.Complete(string(input)))
				cursor = len(input)
			}

		case easyterm.KeyEsc:
			b, _, err := ct.reader.ReadRune()
			if err != nil || b != easyterm.EscCursor {
				break // switch
			}
			c, _, err := ct.reader.ReadRune()
			if err != nil {
				break // switch
			}

			switch c {
			case easyterm.CursorUp:
				if historyIdx > 0 {
					if historyIdx == len(ct.commandHistory) {
						pending = append(pending[:0], input...)
					}
					historyIdx--
					input = []rune(ct.commandHistory[historyIdx])
					cursor = len(input)
				}
			case easyterm.CursorDown:
				if historyIdx < len(ct.commandHistory) {
					historyIdx++
					if historyIdx == len(ct.commandHistory) {
						input = append(input[:0], pending...)
					} else {
						input = []rune(ct.commandHistory[historyIdx])
					}
					cursor = len(input)
				}
			case easyterm.CursorForward:
				if cursor < len(input) {
					cursor++
				}
			case easyterm.CursorBackward:
				if cursor > 0 {
					cursor--
				}
			}

		default:
			if unicode.IsPrint(r) {
				input = append(input, 0)
				copy(input[cursor+1:], input[cursor:])
				input[cursor] = r
				cursor++
			}
		}

		ct.printPrompt(prompt, input, cursor)
	}
}
