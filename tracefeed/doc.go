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

// Package tracefeed replays a recorded trace into a debugger session. It
// stands in for the simulator: each cycle in the trace is presented to the
// session in turn and the feeder blocks until the session allows the cycle to
// commit.
//
// A trace is a YAML document:
//
//	program:
//	  - {target: rega, left: immed, right: not_used, op: A, immed: 1}
//	cycles:
//	  - pc: 0
//	    alu: 1
//	    a: 1
//	    exec: true
//	    regs: {rega: 1, pclo: 1}
//	    flagsOut: [Z]
//	    op: A
//	    writes: [{addr: 16, value: 1}]
//
// The outcome of each cycle is recorded in the trace. Instructions are not
// decoded and the ALU is not simulated.
package tracefeed
