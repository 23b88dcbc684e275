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

// Package debugger implements the session that sits between the SPAM-1
// simulator and the inspection surface.
//
// A Session owns all mutable debugger state:
//
//	- the clock gate that paces the simulator
//	- the execution history
//	- the memory store and its annotations
//	- the recent write set
//	- the memory change bus
//	- the program listing
//	- break conditions
//
// Initialisation is done with the NewSession() function.
//
//	sess, err := debugger.NewSession(debugger.WithAnnotationsFile(path))
//
// The simulator calls OnCycleComplete() once per retired cycle from a single
// goroutine. The call blocks until the inspection surface has granted a
// permit with Step() or Run(), after which the commit function is called and
// the simulator may begin the next cycle.
//
// The inspection surface is free to call any other function from any number of
// goroutines.
package debugger
