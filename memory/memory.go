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

package memory

//go:generate mockgen -destination=mock_memory/mock_memory.go -package=mock_memory github.com/jetsetilly/elfpack/memory Allocator,FastMemory

import "fmt"

// Sentinel error patterns.
const (
	OutOfMemory  = "memory: out of memory (%d bytes requested)"
	NotAllocated = "memory: block at %#08x is not allocated"
	OutOfRange   = "memory: %#08x to %#08x is outside of fast memory"
	ZeroSize     = "memory: zero sized request"
)

// Block is a contiguous region of target memory.
type Block struct {
	// runtime address of the first byte of Data
	Origin uint32
	Data   []byte
}

func (blk *Block) String() string {
	return fmt.Sprintf("%08x to %08x (%d)", blk.Origin, blk.Memtop(), len(blk.Data))
}

// Size returns the size of the block in bytes.
func (blk *Block) Size() uint32 {
	return uint32(len(blk.Data))
}

// Memtop returns the address of the last byte in the block.
func (blk *Block) Memtop() uint32 {
	return blk.Origin + uint32(len(blk.Data)) - 1
}

// Contains returns true if addr is inside the block.
func (blk *Block) Contains(addr uint32) bool {
	return len(blk.Data) > 0 && addr >= blk.Origin && addr <= blk.Memtop()
}

// Allocator is the general RAM allocation capability.
type Allocator interface {
	// Allocate size bytes. The contents of the returned block are undefined
	Allocate(size uint32) (*Block, error)

	// Free a block returned by Allocate()
	Free(blk *Block) error
}

// FastMemory gives access to the on-chip fast memory.
type FastMemory interface {
	// FastRegion returns a live view of fast memory. The region is not
	// reserved and the caller is responsible for saving and restoring the
	// previous contents
	FastRegion(origin uint32, size uint32) (*Block, error)
}
