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
	"fmt"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger/commands"
	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/snapshot"
)

// default number of cells shown by MEM and log entries shown by LOG
const (
	defaultMemCount = 16
	defaultLogCount = 10
)

// number of addresses on each line of the RECENT output
const recentPerLine = 8

// Execute a single line of input. Returns true if the input was a request to
// quit.
func (con *Console) Execute(ctx context.Context, input string) (bool, error) {
	tk := tokeniseInput(input)

	command, ok := tk.get()
	if !ok {
		return false, nil
	}
	command = strings.ToUpper(command)

	con.term.TermPrintLine(terminal.StyleEcho, strings.TrimSpace(input))

	switch command {
	default:
		return false, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("unknown command %s", command))

	case commands.KeywordQuit:
		return true, nil

	case commands.KeywordHelp:
		con.help(tk)

	case commands.KeywordStep:
		n, err := tk.getInt("count", 1)
		if err != nil {
			return false, err
		}
		if err := con.sess.Step(n); err != nil {
			return false, con.ended(err)
		}

		wctx, cancel := con.interruptible(ctx)
		defer cancel()
		if err := con.sess.WaitIdle(wctx); err != nil {
			return false, con.ended(err)
		}
		con.printLatest()

	case commands.KeywordRun:
		batch, err := tk.getInt("batch", con.runBatch)
		if err != nil {
			return false, err
		}

		if reason := con.sess.BreakReason(); reason != "" {
			con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("break on %s is still set. use CONTINUE", reason))
			return false, nil
		}

		rctx, cancel := con.interruptible(ctx)
		defer cancel()
		if err := con.sess.Run(rctx, batch); err != nil {
			return false, con.ended(err)
		}

		if reason := con.sess.BreakReason(); reason != "" {
			con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("break on %s", reason))
		} else if con.sess.History().Latest().Registers.Halted() {
			con.term.TermPrintLine(terminal.StyleFeedback, "halted")
		}
		con.printLatest()

	case commands.KeywordContinue:
		con.sess.Continue()
		con.term.TermPrintLine(terminal.StyleFeedback, "break cleared")

	case commands.KeywordBreak:
		target, ok := tk.get()
		if ok {
			value := tk.remainder()
			var err error
			switch strings.ToUpper(target) {
			case commands.ArgCycle:
				err = con.sess.ConfigureBreakOnCycle(value)
			case commands.ArgPC:
				err = con.sess.ConfigureBreakOnProgramCounter(value)
			default:
				err = curated.Errorf(curated.InvalidArgument, fmt.Sprintf("break target %s", target))
			}
			if err != nil {
				return false, err
			}
		}
		con.term.TermPrintLine(terminal.StyleFeedback, con.sess.Breakpoints())

	case commands.KeywordReset:
		con.sess.ResetHighlights()
		con.term.TermPrintLine(terminal.StyleFeedback, "highlights cleared")

	case commands.KeywordMem:
		addr, err := tk.demandInt("address")
		if err != nil {
			return false, err
		}
		count, err := tk.getInt("count", defaultMemCount)
		if err != nil {
			return false, err
		}
		cells, err := con.sess.Memory().ReadRange(addr, count)
		if err != nil {
			return false, err
		}
		for _, c := range cells {
			if con.sess.Recent().Contains(c.Address) {
				con.term.TermPrintLine(terminal.StyleHighlight, c.String())
			} else {
				con.term.TermPrintLine(terminal.StyleMemory, c.String())
			}
		}

	case commands.KeywordSet:
		addr, err := tk.demandInt("address")
		if err != nil {
			return false, err
		}
		value, err := tk.demandInt("value")
		if err != nil {
			return false, err
		}
		if value < 0 || value > 0xff {
			return false, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("value %#x does not fit in a byte", value))
		}
		if err := con.sess.WriteMemory(addr, uint8(value)); err != nil {
			return false, err
		}
		c, _ := con.sess.Memory().Read(addr)
		con.term.TermPrintLine(terminal.StyleHighlight, c.String())

	case commands.KeywordHist:
		cycle, err := tk.demandInt("cycle")
		if err != nil {
			return false, err
		}
		s, err := con.sess.History().Get(cycle)
		if err != nil {
			return false, err
		}
		con.printSnapshot(s)

	case commands.KeywordLatest:
		con.printLatest()

	case commands.KeywordRecent:
		addrs := con.sess.Recent().Addresses()
		if len(addrs) == 0 {
			con.term.TermPrintLine(terminal.StyleFeedback, "no recent writes")
			break // switch
		}
		for i := 0; i < len(addrs); i += recentPerLine {
			l := make([]string, 0, recentPerLine)
			for _, a := range addrs[i:min(i+recentPerLine, len(addrs))] {
				l = append(l, fmt.Sprintf("%#04x", a))
			}
			con.term.TermPrintLine(terminal.StyleHighlight, strings.Join(l, " "))
		}

	case commands.KeywordAnnotate:
		addr, err := tk.demandInt("address")
		if err != nil {
			return false, err
		}
		if err := con.sess.Annotate(addr, tk.remainder()); err != nil {
			return false, err
		}
		c, _ := con.sess.Memory().Read(addr)
		con.term.TermPrintLine(terminal.StyleMemory, c.String())

	case commands.KeywordProgram:
		l := con.sess.Program().All()
		if len(l) == 0 {
			con.term.TermPrintLine(terminal.StyleFeedback, "no program loaded")
			break // switch
		}
		for i, in := range l {
			con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("%4d  %s", i, in))
		}

	case commands.KeywordState:
		con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("state: %s", con.sess.State()))
		con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("permits: %d", con.sess.Permits()))
		con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breaks: %s", con.sess.Breakpoints()))
		if reason := con.sess.BreakReason(); reason != "" {
			con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("latched: %s", reason))
		}
		con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("session: %s", con.sess.ID()))

	case commands.KeywordTimeline:
		con.term.TermPrintLine(terminal.StyleFeedback, con.sess.History().Timeline().String())

	case commands.KeywordDump:
		fn := tk.remainder()
		if fn == "" {
			return false, curated.Errorf(curated.InvalidArgument, "file required")
		}
		if err := con.dump(fn); err != nil {
			return false, err
		}
		con.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("snapshot graph written to %s", fn))

	case commands.KeywordLog:
		n, err := tk.getInt("count", defaultLogCount)
		if err != nil {
			return false, err
		}
		logger.Tail(styleWriter{term: con.term, style: terminal.StyleLog}, n)
	}

	return false, nil
}

// ended converts errors caused by the end of the simulation or by an
// interrupt into feedback. other errors are returned unchanged.
func (con *Console) ended(err error) error {
	switch {
	case errors.Is(err, clockgate.ErrClosed):
		con.term.TermPrintLine(terminal.StyleFeedback, "simulation has ended")
		return nil
	case errors.Is(err, context.Canceled):
		con.term.TermPrintLine(terminal.StyleFeedback, "interrupted")
		con.printLatest()
		return nil
	}
	return err
}

func (con *Console) help(tk *tokens) {
	keyword, ok := tk.get()
	if !ok {
		for _, k := range commands.DebuggerCommands {
			con.term.TermPrintLine(terminal.StyleHelp, fmt.Sprintf("%-10s %s", k, commands.Help[k]))
		}
		return
	}

	keyword = strings.ToUpper(keyword)
	txt, ok := commands.Help[keyword]
	if !ok {
		con.term.TermPrintLine(terminal.StyleHelp, fmt.Sprintf("no help for %s", keyword))
		return
	}
	con.term.TermPrintLine(terminal.StyleHelp, commands.Usage[keyword])
	con.term.TermPrintLine(terminal.StyleHelp, txt)
}

func (con *Console) printLatest() {
	if con.sess.History().Len() == 0 {
		con.term.TermPrintLine(terminal.StyleFeedback, "no cycles have been executed")
		return
	}
	con.printSnapshot(con.sess.History().Latest())
}

func (con *Console) printSnapshot(s snapshot.Snapshot) {
	con.term.TermPrintLine(terminal.StyleSnapshot, s.String())
	con.term.TermPrintLine(terminal.StyleSnapshot, fmt.Sprintf("  %s", s.Registers))
	if in, err := con.sess.Program().At(s.PC); err == nil {
		con.term.TermPrintLine(terminal.StyleSnapshot, fmt.Sprintf("  %s", in))
	}
	if len(s.Writes) > 0 {
		w := make([]string, 0, len(s.Writes))
		for _, v := range s.Writes {
			w = append(w, fmt.Sprintf("%#04x=%#02x", v.Address, v.Value))
		}
		con.term.TermPrintLine(terminal.StyleSnapshot, fmt.Sprintf("  writes: %s", strings.Join(w, " ")))
	}
}

// dump writes a graph of the latest snapshot to the named file.
func (con *Console) dump(fn string) error {
	if con.sess.History().Len() == 0 {
		return curated.Errorf(curated.NotFound, "no snapshot to dump")
	}
	s := con.sess.History().Latest()

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf("dump: %v", err)
	}
	memviz.Map(f, &s)
	if err := f.Close(); err != nil {
		return curated.Errorf("dump: %v", err)
	}
	return nil
}
