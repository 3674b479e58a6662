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

// Package elf32 decodes the fixed-layout structures of 32-bit ELF files
// produced for the target. Only the structures the loader needs are
// supported: the file header, program headers, section headers, dynamic
// entries, REL relocations and symbols.
//
// Constants are those of the debug/elf package. Decoding functions take a
// binary.ByteOrder so that the caller decides how target-order data is
// adapted to the host (see the endian package).
//
// The debug/elf package itself is not used to open files because the loader
// must read only what it needs, in a fixed order, from a seekable stream and
// must report each kind of I/O failure separately.
package elf32
