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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is retained and is
// what identifies the error.
//
// Packages that return curated errors export their patterns as constants so
// that callers can test for them:
//
//	const SeekFailed = "seek failed: %v"
//
//	err := curated.Errorf(SeekFailed, io.ErrUnexpectedEOF)
//	if curated.Is(err, SeekFailed) {
//		...
//	}
//
// The Has() function is similar to Is() but checks if a pattern occurs
// somewhere in the error chain.
//
//	f := curated.Errorf("elf: %v", err)
//	curated.Is(f, SeekFailed)  // false
//	curated.Has(f, SeekFailed) // true
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts. This means wrapping with a common prefix at several levels
// of the call stack does not result in messages like "elf: elf: read failed".
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library see the first wrapped error value.
package curated
