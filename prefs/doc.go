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

// Package prefs facilitates the storage of preference values. Preference
// values are typed and safe to read and write from more than one goroutine.
//
// Values are collated with a Disk instance, which saves and loads them as a
// YAML document keyed by a dotted name:
//
//	dsk := prefs.NewDisk(pth)
//	dsk.Add("bus.depth", &p.BusDepth)
//	err := dsk.Load()
//
// A preference can be overridden for the lifetime of the program from the
// command line. See PushCommandLineStack() for details.
package prefs
