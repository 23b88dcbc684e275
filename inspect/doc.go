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

// Package inspect serves a debugger session over HTTP. Responses are JSON
// and every response carries the session ID in the X-Session-ID header.
//
//	GET  /state
//	GET  /history/latest
//	GET  /history/{cycle}
//	GET  /history?from=&to=
//	GET  /timeline
//	GET  /memory/{addr}?count=
//	GET  /recent
//	GET  /program
//	GET  /wait?cycle=&timeout=
//	POST /step?n=
//	POST /run?batch=
//	POST /continue
//	POST /highlights/reset
//	PUT  /break/cycle              {"value": "12"}
//	PUT  /break/pc                 {"value": "0x10"}
//	PUT  /memory/{addr}            {"value": 255}
//	PUT  /memory/{addr}/annotation {"text": "loop counter"}
//
// Addresses and cycles in the path may be decimal or 0x hexadecimal.
package inspect
