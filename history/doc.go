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

// Package history records the snapshot of every retired cycle. The history is
// append-only and randomly addressable by cycle number, which makes it
// suitable for timeline scrubbing by the inspection surface.
//
// There is a single writer, the goroutine calling Append(). Readers never
// take a lock: every Append() publishes a new immutable view of the history
// with a single atomic store, so a reader sees either the fully populated
// snapshot or no snapshot at all.
//
// Storage is split into fixed size chunks so that appending never copies
// previously recorded snapshots.
package history
