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

package console_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/debugger/console"
	"github.com/spam1/spamdbg/debugger/terminal/plainterm"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/snapshot"
	"github.com/spam1/spamdbg/test"
)

type fixture struct {
	sess   *debugger.Session
	con    *console.Console
	output *test.CompareWriter
	ctx    context.Context
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	sess, err := debugger.NewSession(debugger.WithLogPermission(logger.Deny))
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		sess.Close()
	})

	output := &test.CompareWriter{}
	term := &plainterm.PlainTerminal{
		Input:  strings.NewReader(input),
		Output: output,
	}
	test.DemandSuccess(t, term.Initialise())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return &fixture{
		sess:   sess,
		con:    console.NewConsole(sess, term, 100),
		output: output,
		ctx:    ctx,
	}
}

// simulate feeds n snapshots to the session. the program counter of each
// snapshot is twice the cycle number and cycle 1 writes to address 0x10
func (f *fixture) simulate(n int) {
	go func() {
		for i := range n {
			s := snapshot.Snapshot{PC: i * 2, Executed: true, Operation: snapshot.OpA}
			if i == 1 {
				s.Writes = []snapshot.Write{{Address: 0x10, Value: 5}}
			}
			if err := f.sess.OnCycleComplete(s, nil); err != nil {
				return
			}
		}
	}()
}

func (f *fixture) execute(t *testing.T, input string) error {
	t.Helper()
	quit, err := f.con.Execute(f.ctx, input)
	test.ExpectFailure(t, quit, input)
	return err
}

func (f *fixture) contains(t *testing.T, s string) {
	t.Helper()
	if !strings.Contains(f.output.String(), s) {
		t.Errorf("output does not contain %q:\n%s", s, f.output.String())
	}
}

func TestHelp(t *testing.T) {
	f := newFixture(t, "")
	test.ExpectSuccess(t, f.execute(t, "HELP"))
	f.contains(t, "STEP")
	f.contains(t, "TIMELINE")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "help break"))
	f.contains(t, "BREAK CYCLE|PC <value|NONE>")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "HELP FOO"))
	test.ExpectEquality(t, f.output.LastLine(), "no help for FOO")

	test.ExpectFailure(t, f.execute(t, "FOO"))
	test.ExpectSuccess(t, f.execute(t, "   "))
}

func TestStepAndInspect(t *testing.T) {
	f := newFixture(t, "")
	f.simulate(10)

	test.DemandSuccess(t, f.execute(t, "STEP 2"))
	test.ExpectEquality(t, f.sess.History().Len(), 3)
	f.contains(t, "cycle 2: pc=4")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "MEM $10 1"))
	c, err := f.sess.Memory().Read(0x10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.LastWrite, 1)
	test.ExpectEquality(t, f.output.LastLine(), fmt.Sprintf("%s *", c))

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "RECENT"))
	test.ExpectEquality(t, f.output.LastLine(), "0x10 *")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "RESET"))
	test.ExpectSuccess(t, f.execute(t, "RECENT"))
	test.ExpectEquality(t, f.output.LastLine(), "no recent writes")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "HIST 1"))
	f.contains(t, "writes: 0x10=0x5")

	test.ExpectFailure(t, f.execute(t, "HIST 99"))

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "TIMELINE"))
	test.ExpectEquality(t, f.output.LastLine(), "cycles 0 to 2 (3 executed, 0 skipped)")
}

func TestRunToBreak(t *testing.T) {
	f := newFixture(t, "")
	f.simulate(20)

	test.DemandSuccess(t, f.execute(t, "BREAK PC 6"))
	test.ExpectEquality(t, f.output.LastLine(), "cycle: none, pc: 6")

	test.DemandSuccess(t, f.execute(t, "RUN"))
	f.contains(t, "break on pc 0x06")
	test.ExpectEquality(t, f.sess.History().Latest().Cycle, 3)

	// the break is latched until CONTINUE
	f.output.Clear()
	test.DemandSuccess(t, f.execute(t, "RUN"))
	f.contains(t, "use CONTINUE")

	f.output.Clear()
	test.DemandSuccess(t, f.execute(t, "STATE"))
	f.contains(t, "state: TERMINATED")
	f.contains(t, "latched: pc 0x06")

	test.DemandSuccess(t, f.execute(t, "BREAK PC none"))
	test.DemandSuccess(t, f.execute(t, "CONTINUE"))
	test.DemandSuccess(t, f.execute(t, "RUN 4"))
	test.ExpectEquality(t, f.sess.History().Latest().Cycle, 7)

	test.ExpectFailure(t, f.execute(t, "BREAK PC foo"))
	test.ExpectFailure(t, f.execute(t, "BREAK SIDEWAYS 10"))
}

func TestRunAfterEnd(t *testing.T) {
	f := newFixture(t, "")
	f.sess.Shutdown()

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "RUN"))
	test.ExpectEquality(t, f.output.LastLine(), "simulation has ended")

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "STEP"))
	test.ExpectEquality(t, f.output.LastLine(), "simulation has ended")
}

func TestSetAndAnnotate(t *testing.T) {
	f := newFixture(t, "")

	test.DemandSuccess(t, f.execute(t, "SET 0x20 0xff"))
	c, _ := f.sess.Memory().Read(0x20)
	test.ExpectEquality(t, c.Value, uint8(0xff))
	test.ExpectEquality(t, c.LastWrite, 0)

	test.DemandSuccess(t, f.execute(t, "ANNOTATE 0x20 loop counter"))
	c, _ = f.sess.Memory().Read(0x20)
	test.ExpectEquality(t, c.Annotation, "loop counter")

	test.ExpectFailure(t, f.execute(t, "SET 0x20 300"))
	test.ExpectFailure(t, f.execute(t, "SET 0x10000 1"))
	test.ExpectFailure(t, f.execute(t, "SET 0x20"))
	test.ExpectFailure(t, f.execute(t, "MEM"))
	test.ExpectFailure(t, f.execute(t, "MEM zero"))
}

func TestProgramAndLatest(t *testing.T) {
	f := newFixture(t, "")

	test.ExpectSuccess(t, f.execute(t, "PROGRAM"))
	test.ExpectEquality(t, f.output.LastLine(), "no program loaded")
	test.ExpectSuccess(t, f.execute(t, "LATEST"))
	test.ExpectEquality(t, f.output.LastLine(), "no cycles have been executed")
	test.ExpectSuccess(t, f.execute(t, "TIMELINE"))
	test.ExpectEquality(t, f.output.LastLine(), "empty")

	in := program.Instruction{Target: "rega", Left: "immed", Right: "not_used", Operation: "A", Immediate: 1}
	f.sess.LoadProgram(in, in)

	f.output.Clear()
	test.ExpectSuccess(t, f.execute(t, "PROGRAM"))
	test.ExpectEquality(t, f.output.LastLine(), fmt.Sprintf("%4d  %s", 1, in))
}

func TestDump(t *testing.T) {
	f := newFixture(t, "")
	fn := filepath.Join(t.TempDir(), "latest.dot")

	test.ExpectFailure(t, f.execute(t, fmt.Sprintf("DUMP %s", fn)))

	f.simulate(2)
	test.DemandSuccess(t, f.execute(t, "STEP"))
	test.DemandSuccess(t, f.execute(t, fmt.Sprintf("DUMP %s", fn)))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "digraph"))
}

func TestInputLoop(t *testing.T) {
	f := newFixture(t, "SET 0x30 1\nFOO\nQUIT\nSET 0x31 1\n")
	test.DemandSuccess(t, f.con.Start(f.ctx))

	c, _ := f.sess.Memory().Read(0x30)
	test.ExpectEquality(t, c.Value, uint8(1))

	// input after QUIT is not executed
	c, _ = f.sess.Memory().Read(0x31)
	test.ExpectEquality(t, c.Value, uint8(0))

	f.contains(t, "* invalid argument: unknown command FOO")
}

func TestEndOfInput(t *testing.T) {
	f := newFixture(t, "SET 0x30 2")
	test.DemandSuccess(t, f.con.Start(f.ctx))
	c, _ := f.sess.Memory().Read(0x30)
	test.ExpectEquality(t, c.Value, uint8(2))
}
