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
	"context"
	"fmt"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/logger"
)

// DefaultBatch is the number of cycles Run() is asked to execute by the
// front ends when the user does not say otherwise.
const DefaultBatch = 1000000

// Run grants up to batch permits, one at a time. Before each grant Run waits
// for the simulator to consume the previous permit and then consults
// ShouldPause(). Run returns early, with a nil error, if ShouldPause() is
// true.
//
// Returns an error if the context is done or the session is shut down.
func (sess *Session) Run(ctx context.Context, batch int) error {
	if batch <= 0 {
		return curated.Errorf("run: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("batch %d", batch)))
	}

	granted := 0
	defer func() {
		logger.Logf(sess.perm, "session", "run granted %d of %d cycles", granted, batch)
	}()

	for granted < batch {
		if err := sess.gate.WaitIdle(ctx); err != nil {
			return curated.Errorf("run: %v", err)
		}

		if sess.ShouldPause() {
			return nil
		}

		if err := sess.gate.Grant(1); err != nil {
			return curated.Errorf("run: %v", err)
		}
		granted++
	}

	if err := sess.gate.WaitIdle(ctx); err != nil {
		return curated.Errorf("run: %v", err)
	}

	return nil
}
