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

package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/script"
	"github.com/spam1/spamdbg/snapshot"
	"github.com/spam1/spamdbg/test"
)

func newSession(t *testing.T, n int) *debugger.Session {
	t.Helper()
	sess, err := debugger.NewSession(debugger.WithLogPermission(logger.Deny))
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		sess.Close()
	})

	// the final cycle is halted and the simulation ends when it commits
	go func() {
		defer sess.Shutdown()
		for i := range n {
			s := snapshot.Snapshot{PC: i, Executed: true, Operation: snapshot.OpA}
			s.Registers.RegA = uint8(i)
			if i == 2 {
				s.Writes = []snapshot.Write{{Address: 0x80, Value: 9}}
			}
			if i == n-1 {
				s.Registers.Halt = 1
			}
			if sess.OnCycleComplete(s, nil) != nil {
				return
			}
		}
	}()

	return sess
}

func run(t *testing.T, sess *debugger.Session, source string) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return script.NewScript(sess, logger.Deny, 100).Run(ctx, source)
}

func TestStepAndInspect(t *testing.T) {
	sess := newSession(t, 10)

	err := run(t, sess, `
		assert(step(3))
		assert(cycle() == 3, "cycle")
		local s = latest()
		assert(s.pc == 3, "pc")
		assert(s.regs.a == 3, "rega")
		assert(s.exec)
		assert(state() == "PAUSED", state())

		local v, note = read(0x80)
		assert(v == 9, "memory")
		assert(note == "")

		annotate(0x80, "nine")
		v, note = read(0x80)
		assert(note == "nine")

		write(0x81, 200)
		v = read(0x81)
		assert(v == 200)

		reset_highlights()
		log("done")
	`)
	test.ExpectSuccess(t, err)

	c, _ := sess.Memory().Read(0x80)
	test.ExpectEquality(t, c.Annotation, "nine")
	test.ExpectEquality(t, sess.Recent().Size(), 0)
}

func TestRunToBreak(t *testing.T) {
	sess := newSession(t, 10)

	err := run(t, sess, `
		break_pc("0x04")
		assert(run())
		assert(cycle() == 4)
		assert(should_pause())
		assert(state() == "TERMINATED")

		break_pc("none")
		continue()
		assert(not should_pause())

		-- the run stops at the halt on the final cycle
		assert(run())
		assert(cycle() == 9)
		assert(latest().halted)

		-- committing the final cycle ends the simulation
		assert(step() == false)
		assert(run() == false)
	`)
	test.ExpectSuccess(t, err)
}

func TestErrors(t *testing.T) {
	sess := newSession(t, 2)

	test.ExpectFailure(t, run(t, sess, `break_cycle("soon")`))
	test.ExpectFailure(t, run(t, sess, `read(70000)`))
	test.ExpectFailure(t, run(t, sess, `write(1, 256)`))
	test.ExpectFailure(t, run(t, sess, `step(0)`))
	test.ExpectFailure(t, run(t, sess, `this is not lua`))

	// standard libraries with access to the system are not available
	test.ExpectFailure(t, run(t, sess, `os.exit(1)`))
	test.ExpectFailure(t, run(t, sess, `io.write("x")`))

	test.ExpectSuccess(t, run(t, sess, `assert(string.upper("a") == "A" and math.max(1, 2) == 2)`))
}

func TestLatestOfEmptyHistory(t *testing.T) {
	sess, err := debugger.NewSession(debugger.WithLogPermission(logger.Deny))
	test.DemandSuccess(t, err)
	defer sess.Close()

	// the zero snapshot stands in for the latest cycle
	test.ExpectSuccess(t, run(t, sess, `
		local s = latest()
		assert(s ~= nil)
		assert(s.cycle == 0 and s.pc == 0)
		assert(s.exec and s.op == "A")
		assert(not s.halted)
		assert(#s.writes == 0)
	`))
}

func TestCancel(t *testing.T) {
	sess := newSession(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := script.NewScript(sess, logger.Deny, 0).Run(ctx, `while true do end`)
	test.ExpectEquality(t, err, context.Canceled)
}

func TestRunFile(t *testing.T) {
	sess := newSession(t, 5)

	fn := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(`assert(step(2))`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	scr := script.NewScript(sess, logger.Deny, 0)
	test.ExpectSuccess(t, scr.RunFile(ctx, fn))
	test.ExpectEquality(t, sess.History().Len(), 3)

	test.ExpectFailure(t, scr.RunFile(ctx, filepath.Join(t.TempDir(), "missing.lua")))
}
