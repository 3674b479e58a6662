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

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/jetsetilly/elfpack/curated"
)

// all allocations are aligned to this many bytes.
const alignment = 4

// Config describes the regions of a Space.
type Config struct {
	HeapOrigin uint32
	HeapSize   uint32
	FastOrigin uint32
	FastSize   uint32
}

type span struct {
	off  uint32
	size uint32
}

// Space is a simulated target address space. It implements the Allocator and
// FastMemory interfaces.
type Space struct {
	crit sync.Mutex
	cfg  Config

	heap []byte
	fast []byte

	// free spans in the heap, sorted by offset
	free []span

	// allocated blocks indexed by origin
	live map[uint32]*Block
}

// NewSpace is the preferred method of initialisation for the Space type.
func NewSpace(cfg Config) *Space {
	spc := &Space{
		cfg:  cfg,
		heap: make([]byte, cfg.HeapSize),
		fast: make([]byte, cfg.FastSize),
		live: make(map[uint32]*Block),
	}
	if cfg.HeapSize > 0 {
		spc.free = []span{{off: 0, size: cfg.HeapSize}}
	}
	return spc
}

// Config returns the configuration the Space was created with.
func (spc *Space) Config() Config {
	return spc.cfg
}

// Allocate implements the Allocator interface. Allocation is first fit.
func (spc *Space) Allocate(size uint32) (*Block, error) {
	spc.crit.Lock()
	defer spc.crit.Unlock()

	if size == 0 {
		return nil, curated.Errorf(ZeroSize)
	}

	asize := (uint64(size) + alignment - 1) &^ (alignment - 1)

	for i, s := range spc.free {
		if uint64(s.size) < asize {
			continue
		}

		blk := &Block{
			Origin: spc.cfg.HeapOrigin + s.off,
			Data:   spc.heap[s.off : s.off+size : s.off+size],
		}

		if uint64(s.size) == asize {
			spc.free = append(spc.free[:i], spc.free[i+1:]...)
		} else {
			spc.free[i] = span{off: s.off + uint32(asize), size: s.size - uint32(asize)}
		}

		spc.live[blk.Origin] = blk
		return blk, nil
	}

	return nil, curated.Errorf(OutOfMemory, size)
}

// Free implements the Allocator interface. Freeing a block that is not
// allocated is an error.
func (spc *Space) Free(blk *Block) error {
	spc.crit.Lock()
	defer spc.crit.Unlock()

	if blk == nil {
		return curated.Errorf(NotAllocated, 0)
	}

	b, ok := spc.live[blk.Origin]
	if !ok || b != blk {
		return curated.Errorf(NotAllocated, blk.Origin)
	}
	delete(spc.live, blk.Origin)

	asize := (uint32(len(blk.Data)) + alignment - 1) &^ (alignment - 1)
	spc.free = append(spc.free, span{off: blk.Origin - spc.cfg.HeapOrigin, size: asize})
	sort.Slice(spc.free, func(i, j int) bool {
		return spc.free[i].off < spc.free[j].off
	})

	// coalesce adjacent spans
	merged := spc.free[:1]
	for _, s := range spc.free[1:] {
		last := &merged[len(merged)-1]
		if last.off+last.size == s.off {
			last.size += s.size
		} else {
			merged = append(merged, s)
		}
	}
	spc.free = merged

	return nil
}

// FastRegion implements the FastMemory interface.
func (spc *Space) FastRegion(origin uint32, size uint32) (*Block, error) {
	if size == 0 {
		return nil, curated.Errorf(ZeroSize)
	}

	end := uint64(origin) + uint64(size)
	if origin < spc.cfg.FastOrigin || end > uint64(spc.cfg.FastOrigin)+uint64(spc.cfg.FastSize) {
		return nil, curated.Errorf(OutOfRange, origin, end-1)
	}

	off := origin - spc.cfg.FastOrigin
	return &Block{
		Origin: origin,
		Data:   spc.fast[off : off+size : off+size],
	}, nil
}

// Live returns the number of allocated blocks.
func (spc *Space) Live() int {
	spc.crit.Lock()
	defer spc.crit.Unlock()
	return len(spc.live)
}

// Available returns the size of the largest free span in the heap.
func (spc *Space) Available() uint32 {
	spc.crit.Lock()
	defer spc.crit.Unlock()

	var largest uint32
	for _, s := range spc.free {
		if s.size > largest {
			largest = s.size
		}
	}
	return largest
}

// MapAddress returns the memory and the offset into that memory for the
// address. Returns nil if the address is not in the heap or in fast memory.
func (spc *Space) MapAddress(addr uint32) (*[]byte, uint32) {
	if addr >= spc.cfg.HeapOrigin && uint64(addr) < uint64(spc.cfg.HeapOrigin)+uint64(spc.cfg.HeapSize) {
		return &spc.heap, addr - spc.cfg.HeapOrigin
	}
	if addr >= spc.cfg.FastOrigin && uint64(addr) < uint64(spc.cfg.FastOrigin)+uint64(spc.cfg.FastSize) {
		return &spc.fast, addr - spc.cfg.FastOrigin
	}
	return nil, addr
}

// Read32bit returns the word at addr in the given byte order.
func (spc *Space) Read32bit(addr uint32, order binary.ByteOrder) (uint32, bool) {
	mem, off := spc.MapAddress(addr)
	if mem == nil || uint64(off)+4 > uint64(len(*mem)) {
		return 0, false
	}
	return order.Uint32((*mem)[off:]), true
}
