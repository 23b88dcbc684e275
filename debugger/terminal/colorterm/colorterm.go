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

// Package colorterm implements the Terminal interface for the spamdbg
// debugger. It supports colour output, command history and simple line
// editing. Tab completion is available if a TabCompleter is supplied.
package colorterm

import (
	"bufio"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger/terminal/colorterm/easyterm"
)

// TabCompleter suggests a completion for the input line.
type TabCompleter interface {
	Complete(input string) string
}

// maximum number of entries in the command history
const maxHistory = 100

// ColorTerminal implements debugger UI interface with a basic ANSI terminal.
type ColorTerminal struct {
	easyterm.Terminal

	reader *bufio.Reader

	// most recent entry is at the end of the slice
	commandHistory []string

	crit         sync.Mutex
	tabCompleter TabCompleter
	silenced     bool
}

// NewColorTerminal returns an uninitialised ColorTerminal. Initialise() must
// be called before use.
func NewColorTerminal() *ColorTerminal {
	return &ColorTerminal{
		commandHistory: make([]string, 0, maxHistory),
	}
}

// Initialise perfoms any setting up required for the terminal. It is an
// error if stdin is not a terminal.
func (ct *ColorTerminal) Initialise() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return curated.Errorf("colorterm: %v", curated.Errorf(curated.InvalidArgument, "stdin is not a terminal"))
	}
	if err := ct.Terminal.Initialise(os.Stdin, os.Stdout); err != nil {
		return curated.Errorf("colorterm: %v", err)
	}
	ct.reader = bufio.NewReader(os.Stdin)
	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.TermPrint("\r")
	ct.Terminal.CleanUp()
}

// SetTabCompleter sets the tab completer. A nil value disables tab
// completion.
func (ct *ColorTerminal) SetTabCompleter(tc TabCompleter) {
	ct.crit.Lock()
	defer ct.crit.Unlock()
	ct.tabCompleter = tc
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.crit.Lock()
	defer ct.crit.Unlock()
	ct.silenced = silenced
}

func (ct *ColorTerminal) isSilenced() bool {
	ct.crit.Lock()
	defer ct.crit.Unlock()
	return ct.silenced
}

// addHistory appends the input to the command history unless it repeats
// the most recent entry.
func (ct *ColorTerminal) addHistory(input string) {
	if input == "" {
		return
	}
	if len(ct.commandHistory) > 0 && ct.commandHistory[len(ct.commandHistory)-1] == input {
		return
	}
	if len(ct.commandHistory) >= maxHistory {
		ct.commandHistory = ct.commandHistory[1:]
	}
	ct.commandHistory = append(ct.commandHistory, input)
}
