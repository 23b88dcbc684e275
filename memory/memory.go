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

package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/logger"
)

// Size is the number of addressable cells.
const Size = 65536

// NeverWritten is the LastWrite value of a cell that has not been written to
// since the session began.
const NeverWritten = -1

// Cell is a copy of a single memory location.
type Cell struct {
	Address    int    `json:"address"`
	Value      uint8  `json:"value"`
	Previous   uint8  `json:"previous"`
	LastWrite  int    `json:"lastWrite"`
	Annotation string `json:"annotation,omitempty"`
}

func (c Cell) String() string {
	s := fmt.Sprintf("%#04x: %#02x (was %#02x)", c.Address, c.Value, c.Previous)
	if c.LastWrite != NeverWritten {
		s = fmt.Sprintf("%s @ %d", s, c.LastWrite)
	}
	if c.Annotation != "" {
		s = fmt.Sprintf("%s ; %s", s, c.Annotation)
	}
	return s
}

// Publisher is the part of the bus used by the store.
type Publisher interface {
	Publish(bus.Event)
}

// Highlighter is told about every address that is written to.
type Highlighter interface {
	Add(address int) bool
}

// Persister stores the complete set of annotations.
type Persister interface {
	Persist(annotations map[int]string) error
}

// Store is the memory of the machine. The zero value is not usable, use
// NewStore().
type Store struct {
	crit  sync.RWMutex
	cells []Cell

	pub Publisher
	hl  Highlighter

	// serialises calls to the persister so that the most recent call always
	// sees the most recent annotations
	persistCrit sync.Mutex
	persister   Persister
	persistErr  error
}

// NewStore is the preferred method of initialisation for the Store type. Both
// arguments may be nil.
func NewStore(pub Publisher, hl Highlighter) *Store {
	s := &Store{
		cells: make([]Cell, Size),
		pub:   pub,
		hl:    hl,
	}
	for i := range s.cells {
		s.cells[i].Address = i
		s.cells[i].LastWrite = NeverWritten
	}
	return s
}

// AttachPersister sets the Persister used when annotations change.
func (s *Store) AttachPersister(p Persister) {
	s.persistCrit.Lock()
	defer s.persistCrit.Unlock()
	s.persister = p
}

func checkAddress(address int) error {
	if address < 0 || address >= Size {
		return curated.Errorf("memory: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("address %d", address)))
	}
	return nil
}

// Write value to address. The previous value of the cell becomes the
// Previous field.
func (s *Store) Write(address int, value uint8, cycle int) error {
	if err := checkAddress(address); err != nil {
		return err
	}

	s.crit.Lock()
	c := &s.cells[address]
	c.Previous = c.Value
	c.Value = value
	c.LastWrite = cycle
	s.crit.Unlock()

	if s.pub != nil {
		s.pub.Publish(bus.Event{Kind: bus.Written, Address: address})
	}
	if s.hl != nil {
		s.hl.Add(address)
	}

	return nil
}

// Read returns a copy of the cell at address.
func (s *Store) Read(address int) (Cell, error) {
	if err := checkAddress(address); err != nil {
		return Cell{}, err
	}

	s.crit.RLock()
	defer s.crit.RUnlock()
	return s.cells[address], nil
}

// ReadRange returns copies of count cells starting at address. The range is
// truncated at the end of memory.
func (s *Store) ReadRange(address int, count int) ([]Cell, error) {
	if err := checkAddress(address); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, curated.Errorf("memory: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("count %d", count)))
	}

	count = min(count, Size-address)
	end := address + count

	s.crit.RLock()
	defer s.crit.RUnlock()

	l := make([]Cell, end-address)
	copy(l, s.cells[address:end])
	return l, nil
}

// SetAnnotation changes the annotation for the cell. An empty string removes
// the annotation. Text containing a line break is an InvalidArgument error. The value and history of the cell are not affected and no
// event is published.
//
// Failure to persist the annotations is not returned as an error. It is
// logged and the write is tried again on the next change or on Flush().
func (s *Store) SetAnnotation(address int, text string) error {
	if err := checkAddress(address); err != nil {
		return err
	}
	if strings.ContainsAny(text, "\r\n") {
		return curated.Errorf("memory: %v", curated.Errorf(curated.InvalidArgument, "annotation contains a line break"))
	}

	s.crit.Lock()
	s.cells[address].Annotation = text
	s.crit.Unlock()

	s.persist()

	return nil
}

// RestoreAnnotations sets annotations without invoking the Persister.
// Addresses out of range are skipped.
func (s *Store) RestoreAnnotations(annotations map[int]string) {
	s.crit.Lock()
	defer s.crit.Unlock()
	for a, t := range annotations {
		if a >= 0 && a < Size {
			s.cells[a].Annotation = t
		}
	}
}

// Annotations returns all non-empty annotations keyed by address.
func (s *Store) Annotations() map[int]string {
	s.crit.RLock()
	defer s.crit.RUnlock()

	m := make(map[int]string)
	for i := range s.cells {
		if s.cells[i].Annotation != "" {
			m[i] = s.cells[i].Annotation
		}
	}
	return m
}

// Annotated returns the addresses with non-empty annotations in ascending
// order.
func (s *Store) Annotated() []int {
	m := s.Annotations()
	l := make([]int, 0, len(m))
	for a := range m {
		l = append(l, a)
	}
	sort.Ints(l)
	return l
}

func (s *Store) persist() {
	s.persistCrit.Lock()
	defer s.persistCrit.Unlock()

	if s.persister == nil {
		return
	}

	err := s.persister.Persist(s.Annotations())
	if err != nil {
		logger.Log(logger.Allow, "annotations", err)
	} else if s.persistErr != nil {
		logger.Log(logger.Allow, "annotations", "annotations saved after earlier failure")
	}
	s.persistErr = err
}

// PersistError returns the error from the most recent attempt to persist the
// annotations. It will be nil if the most recent attempt was successful.
func (s *Store) PersistError() error {
	s.persistCrit.Lock()
	defer s.persistCrit.Unlock()
	return s.persistErr
}

// Flush retries persisting the annotations if the most recent attempt failed.
func (s *Store) Flush() error {
	s.persistCrit.Lock()
	failed := s.persistErr != nil
	s.persistCrit.Unlock()

	if failed {
		s.persist()
	}

	return s.PersistError()
}
