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

package history

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/snapshot"
)

// number of snapshots in each chunk
const chunkSize = 4096

type chunk [chunkSize]snapshot.Snapshot

// view is an immutable description of the history at a point in time.
// snapshots at positions below length are never written to again
type view struct {
	chunks   []*chunk
	length   int
	executed int
	halted   bool
}

// History is the append-only log of snapshots. The zero value is not usable,
// use NewHistory().
type History struct {
	// serialises writers. readers do not use this mutex
	crit sync.Mutex

	current atomic.Pointer[view]

	changedCrit sync.Mutex
	changed     chan struct{}
}

// NewHistory is the preferred method of initialisation for the History type.
func NewHistory() *History {
	h := &History{
		changed: make(chan struct{}),
	}
	h.current.Store(&view{})
	return h
}

// Append adds the snapshot to the end of the history. The snapshot's Cycle
// field is set to the current length of the history. The snapshot as stored
// is returned.
func (h *History) Append(s snapshot.Snapshot) snapshot.Snapshot {
	h.crit.Lock()
	defer h.crit.Unlock()

	v := h.current.Load()

	s.Cycle = v.length

	// the list of writes is the only part of a snapshot that shares memory
	// with the caller
	if len(s.Writes) > 0 {
		w := make([]snapshot.Write, len(s.Writes))
		copy(w, s.Writes)
		s.Writes = w
	}

	chunks := v.chunks
	c, i := v.length/chunkSize, v.length%chunkSize
	if c == len(chunks) {
		// new directory. the chunks themselves are shared with the previous
		// view
		chunks = make([]*chunk, len(v.chunks)+1)
		copy(chunks, v.chunks)
		chunks[c] = &chunk{}
	}

	// the slot is beyond the length of every published view so no reader
	// can be looking at it
	chunks[c][i] = s

	n := &view{
		chunks:   chunks,
		length:   v.length + 1,
		executed: v.executed,
		halted:   s.Registers.Halted(),
	}
	if s.Executed {
		n.executed++
	}
	h.current.Store(n)

	h.changedCrit.Lock()
	close(h.changed)
	h.changed = make(chan struct{})
	h.changedCrit.Unlock()

	return s
}

// Len returns the number of snapshots in the history.
func (h *History) Len() int {
	return h.current.Load().length
}

// Get returns the snapshot for the specified cycle. A cycle outside of the
// history is a NotFound error.
func (h *History) Get(cycle int) (snapshot.Snapshot, error) {
	v := h.current.Load()
	if cycle < 0 || cycle >= v.length {
		return snapshot.Snapshot{}, curated.Errorf("history: %v", curated.Errorf(curated.NotFound, fmt.Sprintf("cycle %d", cycle)))
	}
	return v.at(cycle), nil
}

// Latest returns the most recent snapshot. If the history is empty then the
// zero snapshot is returned.
func (h *History) Latest() snapshot.Snapshot {
	v := h.current.Load()
	if v.length == 0 {
		return snapshot.Zero()
	}
	return v.at(v.length - 1)
}

// at returns a copy of the stored snapshot. the writes are cloned so that
// the caller cannot change the history
func (v *view) at(cycle int) snapshot.Snapshot {
	s := v.chunks[cycle/chunkSize][cycle%chunkSize]
	s.Writes = slices.Clone(s.Writes)
	return s
}

// Range returns the snapshots for cycles from (inclusive) to (exclusive).
func (h *History) Range(from int, to int) ([]snapshot.Snapshot, error) {
	v := h.current.Load()

	if from > to {
		return nil, curated.Errorf("history: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("range %d to %d", from, to)))
	}
	if from < 0 || to > v.length {
		return nil, curated.Errorf("history: %v", curated.Errorf(curated.NotFound, fmt.Sprintf("range %d to %d", from, to)))
	}

	r := make([]snapshot.Snapshot, 0, to-from)
	for c := from; c < to; c++ {
		r = append(r, v.at(c))
	}
	return r, nil
}

// Search returns the first snapshot at or after cycle from for which the match
// function returns true.
func (h *History) Search(from int, match func(snapshot.Snapshot) bool) (snapshot.Snapshot, bool) {
	v := h.current.Load()
	if from < 0 {
		from = 0
	}
	for c := from; c < v.length; c++ {
		s := v.at(c)
		if match(s) {
			return s, true
		}
	}
	return snapshot.Snapshot{}, false
}

// Changed returns a channel that is closed the next time a snapshot is
// appended.
func (h *History) Changed() <-chan struct{} {
	h.changedCrit.Lock()
	defer h.changedCrit.Unlock()
	return h.changed
}
