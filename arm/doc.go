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

// Package arm contains the few ARM instruction encodings the loader writes or
// recognises when binding procedure linkage table (PLT) entries.
//
// A bound PLT slot is replaced with a fixed three word trampoline:
//
//	ldr ip, [pc]   ; E59FC000, loads the literal two words ahead
//	bx  ip         ; E12FFF1C
//	.word target
//
// The trampoline works from ARM and, because of the bx, can target Thumb
// functions. Slots called from Thumb code are preceded by a two instruction
// Thumb veneer (bx pc; b .-6) which is left in place and skipped.
package arm
