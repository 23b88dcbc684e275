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

// Package ansi builds ANSI control sequences for styles and colours.
package ansi

import (
	"fmt"
	"strings"

	"github.com/spam1/spamdbg/curated"
)

// colour numbers. add to the target base to build the SGR parameter
var colours = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
	"NORMAL":  9,
}

var attributes = map[string]int{
	"BOLD":      1,
	"DIM":       2,
	"UNDERLINE": 4,
	"INVERSE":   7,
	"STRIKE":    9,
}

// NormalPen resets all colours and attributes.
const NormalPen = "\033[0m"

// Pens is the table of bright colours to be used for text. DimPens is the
// table of regular colours.
var (
	Pens    = make(map[string]string)
	DimPens = make(map[string]string)
)

func init() {
	for c := range colours {
		k := strings.ToLower(c)
		Pens[k], _ = Build(c, "", "", true)
		DimPens[k], _ = Build(c, "", "", false)
	}
}

// Build creates the ANSI sequence for the pen colour, paper colour and
// attribute. Any of the three can be the empty string. Names are case
// insensitive.
func Build(pen string, paper string, attribute string, bright bool) (string, error) {
	var params []string

	if pen != "" {
		c, ok := colours[strings.ToUpper(pen)]
		if !ok {
			return "", curated.Errorf("ansi: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("pen %q", pen)))
		}
		base := 30
		if bright {
			base = 90
		}
		params = append(params, fmt.Sprintf("%d", base+c))
	}

	if paper != "" {
		c, ok := colours[strings.ToUpper(paper)]
		if !ok {
			return "", curated.Errorf("ansi: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("paper %q", paper)))
		}
		params = append(params, fmt.Sprintf("%d", 40+c))
	}

	if attribute != "" {
		a, ok := attributes[strings.ToUpper(attribute)]
		if !ok {
			return "", curated.Errorf("ansi: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("attribute %q", attribute)))
		}
		params = append(params, fmt.Sprintf("%d", a))
	}

	return fmt.Sprintf("\033[%sm", strings.Join(params, ";")), nil
}

// Cursor movement and line clearing.
const (
	ClearLine   = "\033[2K"
	CursorStart = "\r"
)

// CursorBack moves the cursor n columns to the left.
func CursorBack(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\033[%dD", n)
}
