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

// Package annotations reads and writes the annotation file.
//
// The file is a list of newline separated records of the form:
//
//	address=text
//
// The address is a decimal number. Only the first '=' is significant so the
// text can itself contain '=' characters. Empty annotations are never written.
package annotations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/memory"
)

// Load annotations from the reader. Malformed lines are reported in the list
// of errors but do not prevent the remaining lines from loading.
func Load(r io.Reader) (map[int]string, []error) {
	m := make(map[int]string)
	var errs []error

	b := bufio.NewReader(r)
	n := 0
	for {
		line, err := b.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			errs = append(errs, curated.Errorf("annotations: %v", err))
			break
		}
		if line == "" && err != nil {
			break
		}
		n++

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		addr, text, ok := strings.Cut(line, "=")
		if !ok {
			errs = append(errs, curated.Errorf("annotations: line %d: %v", n,
				curated.Errorf(curated.InvalidArgument, "missing '='")))
			continue
		}

		a, err := strconv.Atoi(strings.TrimSpace(addr))
		if err != nil {
			errs = append(errs, curated.Errorf("annotations: line %d: %v", n,
				curated.Errorf(curated.InvalidArgument, fmt.Sprintf("address %q", addr))))
			continue
		}
		if a < 0 || a >= memory.Size {
			errs = append(errs, curated.Errorf("annotations: line %d: %v", n,
				curated.Errorf(curated.InvalidArgument, fmt.Sprintf("address %d", a))))
			continue
		}

		if text == "" {
			continue
		}

		m[a] = text
	}

	return m, errs
}

// LoadFile loads annotations from the named file. A file that does not exist
// is not an error and results in an empty map.
func LoadFile(path string) (map[int]string, []error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[int]string), nil
		}
		return make(map[int]string), []error{curated.Errorf("annotations: %v", err)}
	}
	defer f.Close()

	return Load(f)
}

// Save annotations to the writer in ascending address order. Line breaks in
// the text are replaced with spaces. memory.Store never holds such text.
func Save(w io.Writer, annotations map[int]string) error {
	l := make([]int, 0, len(annotations))
	for a, t := range annotations {
		if t != "" {
			l = append(l, a)
		}
	}
	sort.Ints(l)

	flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

	b := bufio.NewWriter(w)
	for _, a := range l {
		if _, err := fmt.Fprintf(b, "%d=%s\n", a, flat.Replace(annotations[a])); err != nil {
			return curated.Errorf("annotations: %v", err)
		}
	}
	if err := b.Flush(); err != nil {
		return curated.Errorf("annotations: %v", err)
	}

	return nil
}

// SaveFile writes the annotations to a temporary file in the same directory
// as path and then renames it. The existing file is untouched if the write
// fails.
func SaveFile(path string, annotations map[int]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return curated.Errorf("annotations: %v", err)
	}

	f, err := os.CreateTemp(dir, ".annotations-*")
	if err != nil {
		return curated.Errorf("annotations: %v", err)
	}
	tmp := f.Name()

	err = Save(f, annotations)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = curated.Errorf("annotations: %v", cerr)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf("annotations: %v", err)
	}

	return nil
}

// File is an implementation of the memory.Persister interface.
type File struct {
	path string
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the annotation file.
func (f *File) Path() string {
	return f.path
}

// Persist implements the memory.Persister interface.
func (f *File) Persist(annotations map[int]string) error {
	return SaveFile(f.path, annotations)
}

// Load the annotation file.
func (f *File) Load() (map[int]string, []error) {
	return LoadFile(f.path)
}
