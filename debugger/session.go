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

package debugger

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/history"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/memory"
	"github.com/spam1/spamdbg/memory/annotations"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/recent"
	"github.com/spam1/spamdbg/snapshot"
)

// Session is the debugger session. The zero value is not usable, use
// NewSession().
type Session struct {
	id   uuid.UUID
	perm logger.Permission

	gate    *clockgate.Gate
	history *history.History
	memory  *memory.Store
	recent  *recent.Set
	bus     *bus.Bus
	program *program.Listing

	// annotations file. nil if annotations are not being persisted
	annotations *annotations.File

	// problems encountered during NewSession() that did not prevent the
	// session from being created
	warnings []error

	// crit protects the break conditions and the latched break
	crit   sync.Mutex
	breaks breakpoints

	// description of the break condition that has been satisfied. the empty
	// string if no break is latched
	latched string

	closeOnce sync.Once
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, curated.Errorf("debugger: %v", err)
		}
	}

	sess := &Session{
		id:      uuid.New(),
		perm:    cfg.perm,
		gate:    clockgate.NewGate(),
		history: history.NewHistory(),
		bus:     bus.NewBus(cfg.busDepth),
		program: program.NewListing(),
	}
	sess.recent = recent.NewSet(sess.bus)
	sess.memory = memory.NewStore(sess.bus, sess.recent)

	if cfg.annotationsFile != "" {
		sess.annotations = annotations.NewFile(cfg.annotationsFile)

		// problems with the annotations file are not fatal
		m, errs := sess.annotations.Load()
		for _, err := range errs {
			logger.Log(sess.perm, "annotations", err)
		}
		sess.warnings = append(sess.warnings, errs...)

		sess.memory.RestoreAnnotations(m)
		sess.memory.AttachPersister(sess.annotations)

		logger.Logf(sess.perm, "annotations", "%d annotations loaded from %s", len(m), cfg.annotationsFile)
	}

	logger.Logf(sess.perm, "session", "session %s created", sess.id)

	return sess, nil
}

// ID returns the unique identifier of the session.
func (sess *Session) ID() uuid.UUID {
	return sess.id
}

// StartupWarnings returns the problems encountered while creating the session
// that did not prevent the session from being created.
func (sess *Session) StartupWarnings() []error {
	return sess.warnings
}

// History returns the execution history.
func (sess *Session) History() *history.History {
	return sess.history
}

// Memory returns the memory store.
func (sess *Session) Memory() *memory.Store {
	return sess.memory
}

// Recent returns the set of recently written addresses.
func (sess *Session) Recent() *recent.Set {
	return sess.recent
}

// Bus returns the memory change bus.
func (sess *Session) Bus() *bus.Bus {
	return sess.bus
}

// Program returns the program listing.
func (sess *Session) Program() *program.Listing {
	return sess.program
}

// LoadProgram adds instructions to the end of the program listing. Repeated
// calls accumulate.
func (sess *Session) LoadProgram(instructions ...program.Instruction) {
	sess.program.Append(instructions...)
	logger.Logf(sess.perm, "program", "%d instructions loaded (%d total)", len(instructions), sess.program.Len())
}

// OnCycleComplete is called by the simulator once per retired cycle. The
// snapshot is recorded, any memory writes in the snapshot are applied and the
// break conditions are checked. The function then blocks until a permit is
// available, after which commit is called.
//
// If the session has been shut down the commit function is not called and an
// error wrapping clockgate.ErrClosed is returned.
func (sess *Session) OnCycleComplete(s snapshot.Snapshot, commit func()) error {
	if sess.gate.IsClosed() {
		return curated.Errorf(curated.Closed, clockgate.ErrClosed)
	}

	s = sess.history.Append(s)

	for _, w := range s.Writes {
		if err := sess.memory.Write(w.Address, w.Value, s.Cycle); err != nil {
			logger.Logf(sess.perm, "session", "cycle %d: %v", s.Cycle, err)
		}
	}

	sess.crit.Lock()
	if reason := sess.breaks.check(s); reason != "" {
		sess.latched = reason
		logger.Logf(sess.perm, "break", "break on %s", reason)
	}
	sess.crit.Unlock()

	if s.Registers.Halted() {
		logger.Logf(sess.perm, "session", "halted at cycle %d", s.Cycle)
	}

	if err := sess.gate.AcquireOne(); err != nil {
		return err
	}

	if commit != nil {
		commit()
	}

	return nil
}

// WriteMemory is called when memory is changed outside of the normal cycle
// retirement. The write is attributed to the most recent cycle.
func (sess *Session) WriteMemory(address int, value uint8) error {
	return sess.memory.Write(address, value, sess.history.Latest().Cycle)
}

// Annotate sets the annotation for a memory address.
func (sess *Session) Annotate(address int, text string) error {
	return sess.memory.SetAnnotation(address, text)
}

// Step allows the simulator to retire n more cycles.
func (sess *Session) Step(n int) error {
	if err := sess.gate.Grant(n); err != nil {
		return curated.Errorf("step: %v", err)
	}
	return nil
}

// Permits returns the number of cycles the simulator may retire before it
// must block.
func (sess *Session) Permits() int {
	return sess.gate.Available()
}

// Continue clears a satisfied break condition so that Run() will grant
// permits again.
func (sess *Session) Continue() {
	sess.crit.Lock()
	defer sess.crit.Unlock()
	if sess.latched != "" {
		logger.Logf(sess.perm, "break", "continuing after break on %s", sess.latched)
	}
	sess.latched = ""
}

// ResetHighlights empties the recent write set.
func (sess *Session) ResetHighlights() {
	sess.recent.Clear()
}

// ShouldPause returns true if a break condition has been satisfied and not
// yet cleared with Continue(), or if the halt register in the most recent
// snapshot is non-zero.
func (sess *Session) ShouldPause() bool {
	sess.crit.Lock()
	latched := sess.latched != ""
	sess.crit.Unlock()
	return latched || sess.history.Latest().Registers.Halted()
}

// State returns the current state of the session.
func (sess *Session) State() govern.State {
	if sess.gate.IsClosed() || sess.ShouldPause() {
		return govern.Terminated
	}

	permits := sess.gate.Available()

	if sess.history.Len() == 0 && permits == 0 {
		return govern.Init
	}

	if permits > 0 || !sess.gate.Waiting() {
		return govern.Running
	}

	return govern.Paused
}

// WaitIdle blocks until the simulator has consumed every outstanding permit
// and is waiting for another.
func (sess *Session) WaitIdle(ctx context.Context) error {
	return sess.gate.WaitIdle(ctx)
}

// Shutdown closes the clock gate. A simulator blocked in OnCycleComplete() is
// released and any further calls fail. The session can still be inspected.
func (sess *Session) Shutdown() {
	if !sess.gate.IsClosed() {
		sess.gate.Close()
		logger.Log(sess.perm, "session", "clock gate closed")
	}
}

// Close shuts down the session. The clock gate and bus are closed and any
// annotations that could not be saved earlier are saved again.
func (sess *Session) Close() error {
	var err error
	sess.closeOnce.Do(func() {
		sess.Shutdown()
		sess.bus.Close()
		err = sess.memory.Flush()
		if err != nil {
			err = curated.Errorf("debugger: %v", err)
		}
		logger.Logf(sess.perm, "session", "session %s closed", sess.id)
	})
	return err
}
