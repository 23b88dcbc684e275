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

package tracefeed

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/snapshot"
)

// Session is the part of the debugger session used by the feeder.
type Session interface {
	LoadProgram(instructions ...program.Instruction)
	OnCycleComplete(s snapshot.Snapshot, commit func()) error
	Shutdown()
}

// Feeder replays a trace.
type Feeder struct {
	trace *Trace
	perm  logger.Permission

	// number of cycles committed
	committed atomic.Int64
}

// NewFeeder is the preferred method of initialisation for the Feeder type.
func NewFeeder(trace *Trace, perm logger.Permission) *Feeder {
	return &Feeder{
		trace: trace,
		perm:  perm,
	}
}

// Committed returns the number of cycles that have been committed.
func (f *Feeder) Committed() int {
	return int(f.committed.Load())
}

// Run loads the program into the session and then presents each cycle. The
// session is shut down when the trace is exhausted or the context is done.
//
// Returns nil if the trace ends or the session is shut down by another
// goroutine. Returns the context error if the context is done.
func (f *Feeder) Run(ctx context.Context, sess Session) error {
	stop := context.AfterFunc(ctx, sess.Shutdown)
	defer stop()
	defer sess.Shutdown()

	if len(f.trace.Program) > 0 && f.Committed() == 0 {
		sess.LoadProgram(f.trace.Program...)
	}

	for _, c := range f.trace.Cycles[f.Committed():] {
		err := sess.OnCycleComplete(c.Snapshot(), func() {
			f.committed.Add(1)
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, clockgate.ErrClosed) {
				logger.Logf(f.perm, "tracefeed", "session closed after %d cycles", f.Committed())
				return nil
			}
			return curated.Errorf("tracefeed: %v", err)
		}
	}

	logger.Logf(f.perm, "tracefeed", "end of trace after %d cycles", f.Committed())

	return nil
}
