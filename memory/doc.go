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

// Package memory models target memory for the loader.
//
// The loader needs two capabilities from the platform: an Allocator for
// general RAM and, optionally, FastMemory for the on-chip IRAM window. Both
// hand out Blocks, a byte slice paired with the runtime address of its first
// byte.
//
// Space implements both capabilities for hosts. It is a simulated address
// space with a heap region and a fixed fast memory region. Like the real
// allocator, memory returned by Allocate() is not cleared. Addresses in
// either region can be mapped back to the underlying bytes with
// MapAddress().
package memory
