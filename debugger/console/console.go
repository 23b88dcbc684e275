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

package console

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/debugger/commands"
	"github.com/spam1/spamdbg/debugger/terminal"
)

// Console reads commands from a terminal and executes them against a
// session.
type Console struct {
	sess *debugger.Session
	term terminal.Terminal
	tab  *commands.TabCompletion

	// number of permits granted by RUN when no batch is given
	runBatch int

	// interrupt signals received while the console is running. nil if the
	// console has not been started
	intr chan os.Signal
}

// NewConsole is the preferred method of initialisation for the Console type.
func NewConsole(sess *debugger.Session, term terminal.Terminal, runBatch int) *Console {
	if runBatch <= 0 {
		runBatch = debugger.DefaultBatch
	}
	return &Console{
		sess:     sess,
		term:     term,
		tab:      commands.NewTabCompletion(),
		runBatch: runBatch,
	}
}

// TabCompletion returns the tab completion helper for the console's
// commands.
func (con *Console) TabCompletion() *commands.TabCompletion {
	return con.tab
}

// Start the input loop. The loop ends when the terminal reaches the end of
// input, the user quits or the context is done. Errors from individual
// commands are printed and do not end the loop.
//
// While the console is running an interrupt signal stops a STEP or RUN
// command in progress rather than ending the program.
func (con *Console) Start(ctx context.Context) error {
	con.intr = make(chan os.Signal, 1)
	signal.Notify(con.intr, os.Interrupt)
	defer func() {
		signal.Stop(con.intr)
		con.intr = nil
	}()

	for ctx.Err() == nil {
		input, err := con.term.TermRead(con.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || curated.Is(err, terminal.UserQuit) {
				return nil
			}
			if curated.Is(err, terminal.UserInterrupt) {
				continue // for loop
			}
			return curated.Errorf("console: %v", err)
		}

		quit, err := con.Execute(ctx, input)
		if err != nil {
			con.term.TermPrintLine(terminal.StyleError, err.Error())
		}
		if quit {
			return nil
		}
	}

	return nil
}

func (con *Console) prompt() terminal.Prompt {
	p := terminal.Prompt{
		State:   con.sess.State(),
		Permits: con.sess.Permits(),
		Empty:   con.sess.History().Len() == 0,
	}
	if !p.Empty {
		s := con.sess.History().Latest()
		p.Cycle = s.Cycle
		p.PC = s.PC
	}
	return p
}

// interruptible returns a context that is cancelled by an interrupt signal.
func (con *Console) interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	if con.intr == nil {
		return ctx, cancel
	}

	// discard interrupts received before the command started
	select {
	case <-con.intr:
	default:
	}

	go func(intr chan os.Signal) {
		select {
		case <-intr:
			cancel()
		case <-ctx.Done():
		}
	}(con.intr)

	return ctx, cancel
}

// styleWriter sends each line written to it to the terminal.
type styleWriter struct {
	term  terminal.Output
	style terminal.Style
}

func (w styleWriter) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.term.TermPrintLine(w.style, l)
	}
	return len(p), nil
}
