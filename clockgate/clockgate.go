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

// Package clockgate controls how many cycles the simulator may retire before
// it must block. The inspection surface adds permits with Grant() and the
// simulator consumes them, one per cycle, with AcquireOne().
//
// There is exactly one consumer. Any number of goroutines may call Grant().
//
// A gate can be shut down with Close(). A consumer blocked in AcquireOne() is
// released with an error and all further calls to AcquireOne() and Grant()
// fail. This is the only way other than Grant() to unblock the simulator.
package clockgate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/spam1/spamdbg/curated"
)

// ErrClosed is wrapped by the error returned from AcquireOne() and Grant()
// after the gate has been closed.
var ErrClosed = errors.New("clockgate")

// Gate is a counting-permit gate. The zero value is not usable, use NewGate().
type Gate struct {
	crit sync.Mutex
	cond *sync.Cond

	permits int
	waiting bool
	closed  bool

	// closed and replaced whenever the consumer starts waiting
	idle chan struct{}
}

// NewGate is the preferred method of initialisation for the Gate type. The
// gate starts with no permits.
func NewGate() *Gate {
	g := &Gate{
		idle: make(chan struct{}),
	}
	g.cond = sync.NewCond(&g.crit)
	return g
}

// Grant adds n permits to the gate. The value of n must be at least one.
func (g *Gate) Grant(n int) error {
	if n <= 0 {
		return curated.Errorf(curated.InvalidArgument, fmt.Sprintf("permit count must be positive (%d)", n))
	}

	g.crit.Lock()
	defer g.crit.Unlock()

	if g.closed {
		return curated.Errorf(curated.Closed, ErrClosed)
	}

	if g.permits > math.MaxInt-n {
		return curated.Errorf(curated.InvalidArgument, fmt.Sprintf("too many outstanding permits (%d + %d)", g.permits, n))
	}

	g.permits += n
	g.cond.Signal()

	return nil
}

// AcquireOne blocks until a permit is available and then consumes it.
func (g *Gate) AcquireOne() error {
	g.crit.Lock()
	defer g.crit.Unlock()

	for g.permits == 0 && !g.closed {
		g.waiting = true
		g.notifyIdle()
		g.cond.Wait()
		g.waiting = false
	}

	if g.closed {
		return curated.Errorf(curated.Closed, ErrClosed)
	}

	g.permits--

	return nil
}

// Available returns the number of outstanding permits.
func (g *Gate) Available() int {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.permits
}

// Waiting returns true if the consumer is currently blocked in AcquireOne().
func (g *Gate) Waiting() bool {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.waiting
}

// Drain removes all outstanding permits and returns how many there were. The
// consumer is not woken.
func (g *Gate) Drain() int {
	g.crit.Lock()
	defer g.crit.Unlock()
	n := g.permits
	g.permits = 0
	return n
}

// Close shuts down the gate. It is safe to call Close() more than once.
func (g *Gate) Close() {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.closed = true
	g.permits = 0
	g.cond.Broadcast()
	g.notifyIdle()
}

// notifyIdle must be called with the critical section locked.
func (g *Gate) notifyIdle() {
	close(g.idle)
	g.idle = make(chan struct{})
}

// WaitIdle blocks until the consumer is waiting in AcquireOne() and there are
// no outstanding permits. At that point the consumer has finished with every
// permit granted so far.
//
// Returns an error if the gate is closed or if the context is done.
func (g *Gate) WaitIdle(ctx context.Context) error {
	for {
		g.crit.Lock()
		if g.closed {
			g.crit.Unlock()
			return curated.Errorf(curated.Closed, ErrClosed)
		}
		if g.waiting && g.permits == 0 {
			g.crit.Unlock()
			return nil
		}
		ch := g.idle
		g.crit.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// IsClosed returns true if Close() has been called.
func (g *Gate) IsClosed() bool {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.closed
}
