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

//go:build !statsview

package statsview

import (
	"context"
	"io"

	"github.com/spam1/spamdbg/curated"
)

// Launch is not possible without the statsview build tag.
func Launch(_ context.Context, _ io.Writer, _ string) error {
	return curated.Errorf("statsview: %v", curated.Errorf(curated.NotFound, "not built with the statsview tag"))
}

// Available returns true if the statistics server can be launched.
func Available() bool {
	return false
}
