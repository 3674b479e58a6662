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

package memory_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/memory"
	"github.com/jetsetilly/elfpack/test"
)

var cfg = memory.Config{
	HeapOrigin: 0x12000000,
	HeapSize:   0x1000,
	FastOrigin: 0x03fc0000,
	FastSize:   0x100,
}

func TestAllocate(t *testing.T) {
	spc := memory.NewSpace(cfg)

	a, err := spc.Allocate(10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.Origin, uint32(0x12000000))
	test.ExpectEquality(t, a.Size(), uint32(10))

	// allocations are word aligned
	b, err := spc.Allocate(8)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Origin, uint32(0x1200000c))
	test.ExpectEquality(t, spc.Live(), 2)

	// the block data is the address space
	a.Data[0] = 0xaa
	mem, off := spc.MapAddress(a.Origin)
	test.DemandSuccess(t, mem != nil)
	test.ExpectEquality(t, (*mem)[off], uint8(0xaa))

	test.ExpectSuccess(t, spc.Free(a))
	test.ExpectSuccess(t, spc.Free(b))
	test.ExpectEquality(t, spc.Live(), 0)
	test.ExpectEquality(t, spc.Available(), cfg.HeapSize)

	// double free
	err = spc.Free(a)
	test.ExpectSuccess(t, curated.Is(err, memory.NotAllocated))
}

func TestOutOfMemory(t *testing.T) {
	spc := memory.NewSpace(cfg)

	_, err := spc.Allocate(cfg.HeapSize + 1)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfMemory))

	_, err = spc.Allocate(0)
	test.ExpectSuccess(t, curated.Is(err, memory.ZeroSize))

	a, err := spc.Allocate(cfg.HeapSize)
	test.DemandSuccess(t, err)
	_, err = spc.Allocate(4)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfMemory))
	test.ExpectSuccess(t, spc.Free(a))
}

func TestFirstFit(t *testing.T) {
	spc := memory.NewSpace(cfg)

	a, _ := spc.Allocate(0x100)
	b, _ := spc.Allocate(0x100)
	c, _ := spc.Allocate(0x100)

	test.ExpectSuccess(t, spc.Free(b))

	// fits in the hole left by b
	d, err := spc.Allocate(0x80)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Origin, b.Origin)

	// memory is not cleared on allocation
	a.Data[0] = 0x55
	test.ExpectSuccess(t, spc.Free(a))
	e, _ := spc.Allocate(0x10)
	test.ExpectEquality(t, e.Data[0], uint8(0x55))

	for _, blk := range []*memory.Block{c, d, e} {
		test.ExpectSuccess(t, spc.Free(blk))
	}
	test.ExpectEquality(t, spc.Available(), cfg.HeapSize)
}

func TestFastRegion(t *testing.T) {
	spc := memory.NewSpace(cfg)

	f, err := spc.FastRegion(0x03fc0010, 0x20)
	test.DemandSuccess(t, err)
	f.Data[0] = 0x77

	// a second view sees the same memory
	g, err := spc.FastRegion(0x03fc0000, 0x100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Data[0x10], uint8(0x77))

	_, err = spc.FastRegion(0x03fc00f0, 0x20)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfRange))

	binary.BigEndian.PutUint32(g.Data[0x20:], 0xe59fc000)
	v, ok := spc.Read32bit(0x03fc0020, binary.BigEndian)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint32(0xe59fc000))

	_, ok = spc.Read32bit(0x03fc00fe, binary.BigEndian)
	test.ExpectFailure(t, ok)

	// fast memory regions are not allocations
	test.ExpectEquality(t, spc.Live(), 0)
}

func TestBlock(t *testing.T) {
	blk := &memory.Block{Origin: 0x100, Data: make([]byte, 0x10)}
	test.ExpectEquality(t, blk.Memtop(), uint32(0x10f))
	test.ExpectSuccess(t, blk.Contains(0x10f))
	test.ExpectFailure(t, blk.Contains(0x110))
	test.ExpectFailure(t, blk.Contains(0xff))
}
