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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure with t.Errorf() and return false so
// that the caller can decide whether to continue. The Demand*() functions call
// t.Fatalf() and should be used when later parts of the test depend on the
// value being correct. For example, testing the length of a slice before
// indexing it.
//
// ExpectSuccess() and ExpectFailure() interpret their argument according to its
// type:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> always success
//
// The nil case is not obvious but it is what makes those functions useful for
// error values, which are usually nil to indicate no error.
//
// ExpectNoDiff() compares structured values with the go-cmp package and prints
// a readable diff when they are not the same.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output. The Compare() function can then be used to test for
// equality.
package test
