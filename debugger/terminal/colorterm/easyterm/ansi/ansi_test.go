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

package ansi_test

import (
	"testing"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger/terminal/colorterm/easyterm/ansi"
	"github.com/spam1/spamdbg/test"
)

func TestBuild(t *testing.T) {
	s, err := ansi.Build("red", "", "", false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "\033[31m")

	s, err = ansi.Build("Red", "blue", "bold", true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "\033[91;44;1m")

	_, err = ansi.Build("mauve", "", "", false)
	test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))

	test.ExpectEquality(t, ansi.Pens["yellow"], "\033[93m")
	test.ExpectEquality(t, ansi.DimPens["white"], "\033[37m")
	test.ExpectEquality(t, ansi.CursorBack(0), "")
	test.ExpectEquality(t, ansi.CursorBack(3), "\033[3D")
}
