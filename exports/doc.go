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

// Package exports reads and writes the export table supplied by the firmware
// library. The table maps function and data names to addresses in the
// firmware.
//
// The binary format, with all integers in target byte order:
//
//	u32 count
//	count x { u32 name_offset, u32 address }
//	names: packed NUL terminated strings
//
// Name offsets are relative to the start of the names. Structural problems
// (a count that does not fit the data) are reported by Parse(). A name offset
// outside the names, or a name that is not terminated, only makes that entry
// unusable. Lookup() never reads out of bounds.
//
// Lookup is a linear scan over every entry. Names are compared byte for byte.
// When a name appears more than once the Policy decides which entry wins.
// Shipped firmware libraries are built assuming the last entry wins.
package exports
