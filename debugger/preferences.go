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
	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/prefs"
)

// default values for preferences not covered elsewhere
const (
	DefaultInspectAddress = "localhost:8600"
	DefaultExportBatch    = 500
)

// Preferences defines and collates all the preference values used by the
// debugger and the programs that drive it.
type Preferences struct {
	dsk *prefs.Disk

	// file used for annotation persistence. an empty string means
	// annotations are kept in memory only
	AnnotationsFile *prefs.String

	// queue depth of each bus subscription
	BusDepth *prefs.Int

	// number of permits granted by the RUN command when no batch is given
	RunBatch *prefs.Int

	// listen address for the inspection server
	InspectAddress *prefs.String

	// number of snapshots inserted per transaction by the export
	ExportBatch *prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Preferences are loaded from the file at path. A missing
// file is not an error.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{
		dsk:             prefs.NewDisk(path),
		AnnotationsFile: prefs.NewString(""),
		BusDepth:        prefs.NewInt(bus.DefaultDepth),
		RunBatch:        prefs.NewInt(DefaultBatch),
		InspectAddress:  prefs.NewString(DefaultInspectAddress),
		ExportBatch:     prefs.NewInt(DefaultExportBatch),
	}

	positive := func(v prefs.Value) error {
		if n, ok := v.(int); ok && n <= 0 {
			return curated.Errorf(curated.InvalidArgument, "value must be positive")
		}
		return nil
	}
	p.BusDepth.SetHookPre(positive)
	p.RunBatch.SetHookPre(positive)
	p.ExportBatch.SetHookPre(positive)

	for _, e := range []struct {
		key string
		val prefsValue
	}{
		{"annotations.file", p.AnnotationsFile},
		{"bus.depth", p.BusDepth},
		{"run.batch", p.RunBatch},
		{"inspect.addr", p.InspectAddress},
		{"history.exportBatch", p.ExportBatch},
	} {
		if err := p.dsk.Add(e.key, e.val); err != nil {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	if err := p.dsk.Load(); err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	return p, nil
}

// prefsValue is the subset of the prefs types used by Preferences.
type prefsValue interface {
	String() string
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// SessionOptions returns the options for NewSession() implied by the
// preferences.
func (p *Preferences) SessionOptions() []Option {
	opts := []Option{WithBusDepth(p.BusDepth.Load())}
	if f := p.AnnotationsFile.Get().(string); f != "" {
		opts = append(opts, WithAnnotationsFile(f))
	}
	return opts
}
