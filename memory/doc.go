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

// Package memory implements the 64K byte address space of the SPAM-1 machine as
// seen by the debugger.
//
// Every cell records its current value, the value it held immediately before
// the most recent write and the cycle on which that write took place. Cells
// can also carry a free text annotation. Annotations are metadata and are not
// announced on the bus, but are handed to a Persister whenever they change.
//
// Writes are announced on the bus by address only. Subscribers must call
// Read() to discover the new value.
package memory
