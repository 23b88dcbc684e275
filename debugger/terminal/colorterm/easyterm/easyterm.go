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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It wraps
// termios methods in functions with friendlier names and remembers the
// original terminal attributes so that they can be restored.
package easyterm

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/spam1/spamdbg/curated"
)

// Terminal is the main container for posix terminals. Usually embedded in
// other struct types.
type Terminal struct {
	input  *os.File
	output *os.File

	// buffered output. must be flushed with Flush()
	crit sync.Mutex
	out  *bufio.Writer

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// Initialise the fields in the Terminal struct. The terminal is put into
// cbreak mode.
func (et *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return curated.Errorf("easyterm: %v", curated.Errorf(curated.InvalidArgument, "input file required"))
	}
	if outputFile == nil {
		return curated.Errorf("easyterm: %v", curated.Errorf(curated.InvalidArgument, "output file required"))
	}

	et.input = inputFile
	et.output = outputFile
	et.out = bufio.NewWriter(outputFile)

	if err := termios.Tcgetattr(et.input.Fd(), &et.canAttr); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}

	// cbreak attributes are based on the current attributes
	et.cbreakAttr = et.canAttr
	termios.Cfmakecbreak(&et.cbreakAttr)

	return et.CBreakMode()
}

// CleanUp restores the terminal to the mode it was in before Initialise().
func (et *Terminal) CleanUp() {
	_ = et.Flush()
	_ = et.CanonicalMode()
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (et *Terminal) CanonicalMode() error {
	if err := termios.Tcsetattr(et.input.Fd(), termios.TCSANOW, &et.canAttr); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	return nil
}

// CBreakMode puts terminal into cbreak mode. Input is available one
// character at a time without echo but signals are still generated.
func (et *Terminal) CBreakMode() error {
	if err := termios.Tcsetattr(et.input.Fd(), termios.TCSANOW, &et.cbreakAttr); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	return nil
}

// TermPrint writes the string to the output buffer.
func (et *Terminal) TermPrint(s string) {
	et.crit.Lock()
	defer et.crit.Unlock()
	et.out.WriteString(s)
}

// TermPrintf writes the formatted string to the output buffer.
func (et *Terminal) TermPrintf(s string, a ...any) {
	et.TermPrint(fmt.Sprintf(s, a...))
}

// Flush makes sure buffered output is written and discards any input that
// has not yet been read.
func (et *Terminal) Flush() error {
	et.crit.Lock()
	defer et.crit.Unlock()

	if err := et.out.Flush(); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	if err := termios.Tcflush(et.input.Fd(), termios.TCIFLUSH); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	return nil
}

// FlushOutput writes any buffered output.
func (et *Terminal) FlushOutput() error {
	et.crit.Lock()
	defer et.crit.Unlock()
	return et.out.Flush()
}
