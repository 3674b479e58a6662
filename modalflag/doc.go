// This file is part of Elfpack.
//
// Elfpack is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Elfpack is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Elfpack.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows different flags for each mode.
//
// Arguments are given with NewArgs() and then processed with Parse(). Flags
// for the current mode are added between those two calls:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("LOAD", "CHECK", "EXPORTS")
//	p, err := md.Parse()
//
// After Parse(), Mode() returns the selected mode. The first sub-mode given to
// AddSubModes() is the default and is selected when the first argument is not
// a mode name. Mode names are case insensitive.
//
// Flags for the selected mode are added after a call to NewMode(), followed by
// another call to Parse(). Non-flag arguments are available through
// RemainingArgs() and GetArg().
package modalflag
