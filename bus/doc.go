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

// Package bus delivers memory change notifications to interested
// subscribers.
//
// Events carry only the address that changed, never the value. Subscribers
// are expected to re-read the authoritative state from the memory store or the
// recent write set. Because of this, losing a redundant notification is
// harmless and the bus can favour the publisher: Publish() never blocks.
//
// Each subscriber has its own bounded queue serviced by its own goroutine. If
// the queue is full when an event is published then the oldest queued event is
// dropped to make room.
package bus
