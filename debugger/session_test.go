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

package debugger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/snapshot"
	"github.com/spam1/spamdbg/test"
)

// simulator feeds snapshots to the session from its own goroutine in the same
// way as the real simulator. the number of commits is counted
type simulator struct {
	commits atomic.Int32
	done    chan error
}

func simulate(sess *debugger.Session, snaps []snapshot.Snapshot) *simulator {
	sim := &simulator{
		done: make(chan error, 1),
	}
	go func() {
		for _, s := range snaps {
			err := sess.OnCycleComplete(s, func() {
				sim.commits.Add(1)
			})
			if err != nil {
				sim.done <- err
				return
			}
		}
		sim.done <- nil
	}()
	return sim
}

// program counter values in sequence
func sequence(n int) []snapshot.Snapshot {
	l := make([]snapshot.Snapshot, n)
	for i := range l {
		l[i] = snapshot.Snapshot{PC: i, Executed: true, Operation: snapshot.OpA}
	}
	return l
}

func newSession(t *testing.T, opts ...debugger.Option) *debugger.Session {
	t.Helper()
	opts = append(opts, debugger.WithLogPermission(logger.Deny))
	sess, err := debugger.NewSession(opts...)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		sess.Close()
	})
	return sess
}

func timeout(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestInitialState(t *testing.T) {
	sess := newSession(t)
	test.ExpectEquality(t, sess.State(), govern.Init)
	test.ExpectFailure(t, sess.ShouldPause())
	test.ExpectEquality(t, sess.History().Len(), 0)
	test.ExpectSuccess(t, sess.History().Latest().Equal(snapshot.Zero()))
	test.ExpectInequality(t, sess.ID().String(), "")
}

// a permit granted before the simulator completes its first cycle allows that
// cycle to commit
func TestSingleStep(t *testing.T) {
	sess := newSession(t)
	test.DemandSuccess(t, sess.Step(1))
	test.ExpectEquality(t, sess.State(), govern.Running)

	s := snapshot.Snapshot{PC: 5, ALU: 0x12, Executed: true, Operation: snapshot.OpA}

	committed := false
	err := sess.OnCycleComplete(s, func() {
		committed = true
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, committed)

	latest := sess.History().Latest()
	test.ExpectEquality(t, latest.PC, 5)
	test.ExpectEquality(t, latest.Cycle, 0)

	first, err := sess.History().Get(0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, first.Equal(latest))
}

func TestCommitWaitsForPermit(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	sim := simulate(sess, sequence(3))

	test.DemandSuccess(t, sess.WaitIdle(ctx))
	test.ExpectEquality(t, sess.History().Len(), 1)
	test.ExpectEquality(t, sim.commits.Load(), int32(0))
	test.ExpectEquality(t, sess.State(), govern.Paused)

	test.DemandSuccess(t, sess.Step(1))
	test.DemandSuccess(t, sess.WaitIdle(ctx))
	test.ExpectEquality(t, sim.commits.Load(), int32(1))
	test.ExpectEquality(t, sess.History().Len(), 2)

	test.DemandSuccess(t, sess.Step(2))
	test.DemandSuccess(t, <-sim.done)
	test.ExpectEquality(t, sim.commits.Load(), int32(3))
}

func TestInvalidStep(t *testing.T) {
	sess := newSession(t)
	err := sess.Step(0)
	test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))
	test.ExpectEquality(t, sess.Permits(), 0)

	err = sess.Run(context.Background(), 0)
	test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))
}

func TestBreakOnProgramCounter(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	test.DemandSuccess(t, sess.ConfigureBreakOnProgramCounter("10"))
	sim := simulate(sess, sequence(20))

	test.DemandSuccess(t, sess.Run(ctx, 1000))

	test.ExpectSuccess(t, sess.ShouldPause())
	test.ExpectEquality(t, sess.History().Latest().PC, 10)
	test.ExpectEquality(t, sess.History().Len(), 11)
	test.ExpectEquality(t, sess.State(), govern.Terminated)
	test.ExpectEquality(t, sess.BreakReason(), "pc 0x0a")

	// run does nothing while the break is latched
	test.DemandSuccess(t, sess.Run(ctx, 1000))
	test.ExpectEquality(t, sess.History().Len(), 11)

	// explicit steps are always honoured
	test.DemandSuccess(t, sess.Step(1))
	test.DemandSuccess(t, sess.WaitIdle(ctx))
	test.ExpectEquality(t, sess.History().Len(), 12)

	sess.Continue()
	test.ExpectFailure(t, sess.ShouldPause())
	test.ExpectEquality(t, sess.State(), govern.Paused)

	test.DemandSuccess(t, sess.ConfigureBreakOnProgramCounter("none"))
	test.DemandSuccess(t, sess.Run(ctx, 8))
	test.ExpectEquality(t, sess.History().Len(), 20)

	// the final cycle needs a permit to commit
	test.DemandSuccess(t, sess.Step(1))
	test.DemandSuccess(t, <-sim.done)
	test.ExpectEquality(t, sim.commits.Load(), int32(20))
}

func TestBreakOnCycle(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	test.DemandSuccess(t, sess.ConfigureBreakOnCycle("0x3"))
	simulate(sess, sequence(10))

	test.DemandSuccess(t, sess.Run(ctx, 100))
	test.ExpectEquality(t, sess.History().Latest().Cycle, 3)
	test.ExpectEquality(t, sess.BreakReason(), "cycle 3")
}

// running out of batch is not the same as a break
func TestRunBatch(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	sim := simulate(sess, sequence(10))
	test.DemandSuccess(t, sess.Run(ctx, 4))
	test.ExpectEquality(t, sim.commits.Load(), int32(4))
	test.ExpectEquality(t, sess.History().Len(), 5)
	test.ExpectFailure(t, sess.ShouldPause())
}

func TestMalformedBreak(t *testing.T) {
	sess := newSession(t)

	test.DemandSuccess(t, sess.ConfigureBreakOnCycle("12"))
	test.DemandSuccess(t, sess.ConfigureBreakOnProgramCounter("0x20"))
	before := sess.Breakpoints()
	test.ExpectEquality(t, before, "cycle: 12, pc: 32")

	for _, v := range []string{"abc", "-1", "0x", "1.5", "12abc"} {
		err := sess.ConfigureBreakOnCycle(v)
		test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument), v)
		err = sess.ConfigureBreakOnProgramCounter(v)
		test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument), v)
	}
	test.ExpectEquality(t, sess.Breakpoints(), before)

	test.DemandSuccess(t, sess.ConfigureBreakOnCycle(""))
	test.DemandSuccess(t, sess.ConfigureBreakOnProgramCounter("NONE"))
	test.ExpectEquality(t, sess.Breakpoints(), "cycle: none, pc: none")
}

func TestHaltTerminates(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	snaps := sequence(10)
	snaps[6].Registers.Halt = 1
	simulate(sess, snaps)

	test.DemandSuccess(t, sess.Run(ctx, 100))
	test.ExpectEquality(t, sess.History().Latest().PC, 6)
	test.ExpectSuccess(t, sess.ShouldPause())
	test.ExpectEquality(t, sess.State(), govern.Terminated)

	// continue does not clear a halt
	sess.Continue()
	test.ExpectSuccess(t, sess.ShouldPause())
}

func TestWritesApplied(t *testing.T) {
	sess := newSession(t)
	test.DemandSuccess(t, sess.Step(2))

	s := snapshot.Snapshot{PC: 1, Writes: []snapshot.Write{
		{Address: 0x100, Value: 7},
		{Address: 0x100, Value: 9},
	}}
	test.DemandSuccess(t, sess.OnCycleComplete(snapshot.Snapshot{PC: 0}, nil))
	test.DemandSuccess(t, sess.OnCycleComplete(s, nil))

	c, err := sess.Memory().Read(0x100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Value, uint8(9))
	test.ExpectEquality(t, c.Previous, uint8(7))
	test.ExpectEquality(t, c.LastWrite, 1)
	test.ExpectSuccess(t, sess.Recent().Contains(0x100))

	sess.ResetHighlights()
	test.ExpectFailure(t, sess.Recent().Contains(0x100))

	// value is untouched by the highlight reset
	c, _ = sess.Memory().Read(0x100)
	test.ExpectEquality(t, c.Value, uint8(9))
}

func TestWriteMemory(t *testing.T) {
	sess := newSession(t)

	// before any cycles the write is attributed to cycle zero
	test.DemandSuccess(t, sess.WriteMemory(4, 1))
	c, _ := sess.Memory().Read(4)
	test.ExpectEquality(t, c.LastWrite, 0)

	test.DemandSuccess(t, sess.Step(3))
	for _, s := range sequence(3) {
		test.DemandSuccess(t, sess.OnCycleComplete(s, nil))
	}

	test.DemandSuccess(t, sess.WriteMemory(4, 2))
	c, _ = sess.Memory().Read(4)
	test.ExpectEquality(t, c.LastWrite, 2)
	test.ExpectEquality(t, c.Previous, uint8(1))

	err := sess.WriteMemory(-1, 0)
	test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))
}

func TestShutdownReleasesSimulator(t *testing.T) {
	sess := newSession(t)
	ctx := timeout(t)

	sim := simulate(sess, sequence(5))
	test.DemandSuccess(t, sess.WaitIdle(ctx))

	test.DemandSuccess(t, sess.Close())

	err := <-sim.done
	test.ExpectSuccess(t, errors.Is(err, clockgate.ErrClosed))
	test.ExpectEquality(t, sim.commits.Load(), int32(0))
	test.ExpectEquality(t, sess.State(), govern.Terminated)

	// the session can still be inspected after it is closed
	test.ExpectEquality(t, sess.History().Len(), 1)

	// and later cycles are refused without being recorded
	err = sess.OnCycleComplete(snapshot.Snapshot{}, nil)
	test.ExpectSuccess(t, errors.Is(err, clockgate.ErrClosed))
	test.ExpectEquality(t, sess.History().Len(), 1)

	err = sess.Run(ctx, 1)
	test.ExpectSuccess(t, errors.Is(err, clockgate.ErrClosed))
}

func TestLoadProgram(t *testing.T) {
	sess := newSession(t)
	sess.LoadProgram(program.Instruction{Target: "REGA", Operation: "A"})
	sess.LoadProgram(program.Instruction{Target: "REGB"}, program.Instruction{Target: "REGC"})
	test.ExpectEquality(t, sess.Program().Len(), 3)

	in, err := sess.Program().At(2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, in.Target, "REGC")
}

func TestAnnotationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.txt")
	test.DemandSuccess(t, os.WriteFile(path, []byte("1=one\nbad line\n2=two\n"), 0o600))

	sess := newSession(t, debugger.WithAnnotationsFile(path))
	test.ExpectEquality(t, len(sess.StartupWarnings()), 1)
	test.ExpectEquality(t, len(sess.Memory().Annotations()), 2)

	test.DemandSuccess(t, sess.Annotate(3, "three"))
	b, err := os.ReadFile(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "1=one\n2=two\n3=three\n")
}

func TestMissingAnnotationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	sess := newSession(t, debugger.WithAnnotationsFile(path))
	test.ExpectEquality(t, len(sess.StartupWarnings()), 0)
}

func TestInvalidOption(t *testing.T) {
	_, err := debugger.NewSession(debugger.WithBusDepth(0))
	test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))
}
