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

// Package loader places relocatable ARM ELF modules in target memory, binds
// their references to firmware functions and data, and transfers control to
// them.
//
// A load runs through the following steps:
//
//	open stream -> read header -> place image -> link -> entry transfer
//
// Placing reads the program headers, computes the image window from the
// PT_LOAD segments (lowest p_vaddr to highest p_vaddr+p_memsz), allocates a
// zero filled block of that size and copies each segment's file content to
// its position in the window. Every link address is translated to the image
// with a single checked function. A link address outside of the window is
// malformed input.
//
// Linking depends on the ABI flavor, chosen once from e_type:
//
// ADS modules (ET_EXEC) carry their relocation table inside a PT_DYNAMIC
// segment that is read into scratch memory. R_ARM_RABS32 and R_ARM_RELATIVE
// entries are rebased. Imports are then found through the section symbol
// table: global functions, and global data objects of size zero, whose names
// are in the export table. Addresses above the data shift threshold are data
// and are written, less the threshold, over the symbol itself. Other
// addresses are functions and are written into the symbol's stub, twelve
// bytes after the symbol.
//
// GCC modules (ET_DYN) are linked through their dynamic segment, in place.
// R_ARM_RABS32 and R_ARM_RELATIVE entries are rebased. R_ARM_ABS32 entries
// are bound to the export table, falling back to the module's own base when
// the name is not exported. Procedure linkage table slots listed in DT_JMPREL
// are rewritten with a fixed "ldr ip, [pc]; bx ip; .word addr" trampoline and
// the matching GOT entry receives the address.
//
// When the Commit field of Config is false nothing in the image is written
// during linking. The load still runs to completion and the Report of the
// Image records everything that would have been bound. The Check() function
// uses this for offline validation.
//
// Modules can ask to be placed in fast memory by storing an address in
// e_ident[12:16]. The existing fast memory content is saved to a shadow block
// in RAM and restored by Unload().
//
// Errors are curated errors. The sentinel patterns in this package identify
// the kind of failure and StatusOf() maps an error to the numeric status used
// by application hosts. Any failure releases the stream and all memory
// acquired by the load.
package loader
