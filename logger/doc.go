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

// Package logger is the central logging facility for spamdbg. Log entries are
// tagged with a short string identifying the component making the entry.
// Consecutive identical entries are folded into a single entry with a repeat
// count.
//
// Logging requests are accompanied by a Permission. The Allow value is a good
// default if an entry should always be made.
//
// The package level functions use a single central logger. Independent
// loggers can be created with NewLogger(), which is useful for testing.
package logger
