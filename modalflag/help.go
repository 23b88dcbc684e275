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

package modalflag

import (
	"flag"
	"fmt"
	"strings"
)

// help writes a description of the flags and sub-modes for the current layer
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	s := strings.Builder{}

	var flags []*flag.Flag
	md.flags.VisitAll(func(f *flag.Flag) {
		flags = append(flags, f)
	})

	if len(flags) == 0 && len(md.subModes) == 0 {
		s.WriteString("No help available")
		if md.Path() != "" {
			s.WriteString(fmt.Sprintf(" for %s mode", md.Path()))
		}
		s.WriteString("\n")
		md.Output.Write([]byte(s.String()))
		return
	}

	if md.Path() != "" {
		s.WriteString(fmt.Sprintf("Usage for %s mode:\n", md.Path()))
	} else {
		s.WriteString("Usage:\n")
	}

	for _, f := range flags {
		s.WriteString(fmt.Sprintf("  -%s\n", f.Name))
		s.WriteString(fmt.Sprintf("    \t%s", f.Usage))
		if f.DefValue != "" {
			s.WriteString(fmt.Sprintf(" (default %s)", f.DefValue))
		}
		s.WriteString("\n")
	}

	if len(md.subModes) > 0 {
		if len(flags) > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("  available sub-modes: %s\n", strings.Join(md.subModes, ", ")))
		s.WriteString(fmt.Sprintf("    default: %s\n", md.subModes[0]))
	}

	if md.additionalHelp != "" {
		s.WriteString("\n")
		s.WriteString(md.additionalHelp)
		s.WriteString("\n")
	}

	md.Output.Write([]byte(s.String()))
}
