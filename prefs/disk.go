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

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/spam1/spamdbg/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences.yaml"

// NoPrefsFile is returned by Load() when the preferences file does not exist.
const NoPrefsFile = "prefs: no prefs file (%s)"

// WarningBoilerPlate is written at the top of every preferences file.
const WarningBoilerPlate = "# *** do not edit this file while spamdbg is running ***"

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref

	// values found in the file that have not been added to the Disk. they are
	// written back unchanged by Save()
	unknown map[string]any
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s: %s\n", k, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) *Disk {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
		unknown: make(map[string]any),
	}
}

// Path returns the location of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to list of values to store/load from Disk. The key
// value is the name of the value in the file.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t\n:") {
		return curated.Errorf("prefs: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("key %q", key)))
	}

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("key %q already added", key)))
	}

	dsk.entries[key] = p

	return nil
}

// Load preference values from disk. Values specified on the command line with
// PushCommandLineStack() take priority over values in the file.
//
// If the file does not exist then command line values are still applied and
// an error with the NoPrefsFile pattern is returned.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	var loadErr error

	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			loadErr = curated.Errorf(NoPrefsFile, dsk.path)
		} else {
			return curated.Errorf("prefs: %v", err)
		}
	}

	if loadErr == nil {
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return curated.Errorf("prefs: %v", err)
		}

		for k, v := range m {
			p, ok := dsk.entries[k]
			if !ok {
				dsk.unknown[k] = v
				continue
			}
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", k, err)
			}
		}
	}

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", k, err)
			}
		}
	}

	return loadErr
}

// Save current preference values to disk. Values in the file that have not
// been added to the Disk are preserved.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	m := make(map[string]any, len(dsk.entries)+len(dsk.unknown))
	for k, v := range dsk.unknown {
		m[k] = v
	}
	for k, p := range dsk.entries {
		m[k] = p.Get()
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	out := fmt.Appendf(nil, "%s\n", WarningBoilerPlate)
	out = append(out, data...)

	if err := os.WriteFile(dsk.path, out, 0o600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Reset all values added to the Disk to their defaults. The file is not
// changed.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf("prefs: %s: %v", k, err)
		}
	}

	return nil
}
