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

package govern

import "strings"

// Mode indicates how the program was started.
type Mode int

func (m Mode) String() string {
	switch m {
	case ModeDebug:
		return "DEBUG"
	case ModeServe:
		return "SERVE"
	case ModeScript:
		return "SCRIPT"
	case ModeExport:
		return "EXPORT"
	}

	return ""
}

// List of defined modes.
const (
	ModeNone Mode = iota
	ModeDebug
	ModeServe
	ModeScript
	ModeExport
)

// Modes is the list of modes that can be selected on the command line. The
// first mode is the default.
var Modes = []Mode{ModeDebug, ModeServe, ModeScript, ModeExport}

// ParseMode returns the mode with the name s. The comparison is case
// insensitive. ModeNone is returned if there is no mode with that name.
func ParseMode(s string) Mode {
	s = strings.ToUpper(s)
	for _, m := range Modes {
		if m.String() == s {
			return m
		}
	}
	return ModeNone
}
