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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The Has() function is similar but checks if a pattern
// occurs somewhere in the error chain.
//
//	e := curated.Errorf(curated.NotFound, "cycle 10")
//	f := curated.Errorf("inspect: %v", e)
//
//	curated.Is(f, curated.NotFound)  // false
//	curated.Has(f, curated.NotFound) // true
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. So wrapping an error with the same prefix twice
// results in:
//
//	history: not found: cycle 10
//
// and not:
//
//	history: history: not found: cycle 10
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': '.
//
// Sentinel patterns are stored as const strings. The patterns shared by every
// package in spamdbg are InvalidArgument, NotFound and Closed. Curated errors
// also implement Unwrap() so plain sentinel errors placed among the values can
// be found with errors.Is() from the standard library.
package curated
