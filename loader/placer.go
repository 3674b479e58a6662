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

package loader

import (
	"debug/elf"
	"math"

	"github.com/jetsetilly/elfpack/curated"
)

// place computes the image window from the PT_LOAD segments, acquires memory
// for it and copies the segment contents from the file.
func (ld *load) place() error {
	var minVaddr uint64 = math.MaxUint64
	var maxExtent uint64
	var loadable int

	for _, p := range ld.progs {
		if elf.ProgType(p.Type) != elf.PT_LOAD {
			continue
		}
		if p.Filesz > p.Memsz {
			return malformed("segment file size larger than memory size (%v)", p)
		}

		loadable++
		if uint64(p.Vaddr) < minVaddr {
			minVaddr = uint64(p.Vaddr)
		}
		if ext := uint64(p.Vaddr) + uint64(p.Memsz); ext > maxExtent {
			maxExtent = ext
		}
	}

	if loadable == 0 {
		return curated.Errorf(NoLoadableSegments)
	}

	if maxExtent > math.MaxUint32+1 {
		return malformed("image extends beyond address space (%#x)", maxExtent)
	}

	size := maxExtent - minVaddr
	if size == 0 {
		return malformed("image is empty")
	}

	img := &Image{
		URI:      ld.uri,
		Hash:     ld.stream.Hash(),
		Flavor:   ld.flavour.Flavor(),
		MinVaddr: uint32(minVaddr),
		Size:     uint32(size),
		order:    ld.order,
	}
	img.Report.Flavor = img.Flavor

	err := ld.acquire(img)
	if err != nil {
		return err
	}
	ld.img = img

	img.Base = Addr(img.block.Origin)

	for _, p := range ld.progs {
		if elf.ProgType(p.Type) != elf.PT_LOAD || p.Filesz == 0 {
			continue
		}

		dst, err := img.slice(Offset(uint64(p.Vaddr)-minVaddr), p.Filesz)
		if err != nil {
			return err
		}

		err = ld.seek(uint64(p.Offset))
		if err != nil {
			return err
		}

		err = ld.read(dst)
		if err != nil {
			return err
		}
	}

	off, err := img.Offset(ld.hdr.Entry)
	if err != nil {
		return malformed("entry point %#08x outside of image", ld.hdr.Entry)
	}
	img.Entry = img.AddrOf(off)

	return nil
}

// acquire memory for the image. the memory is zeroed.
func (ld *load) acquire(img *Image) error {
	fastAddr := ld.hdr.FastMemory(ld.order)

	if fastAddr != 0 {
		if ld.ldr.fast == nil {
			ld.warn("IRAM", "%s: requests fast memory at %#08x but none is available, using RAM", ld.uri, fastAddr)
		} else {
			view, err := ld.ldr.fast.FastRegion(fastAddr, img.Size)
			if err != nil {
				return curated.Errorf(AllocationFailed, err)
			}

			shadow, err := ld.ldr.mem.Allocate(img.Size)
			if err != nil {
				return curated.Errorf(AllocationFailed, err)
			}

			copy(shadow.Data, view.Data)
			clear(view.Data)

			img.block = view
			img.shadow = shadow
			img.fast = true

			ld.warn("IRAM", "%s: placed in fast memory at %s, shadow at %#08x", ld.uri, view, shadow.Origin)
			return nil
		}
	}

	blk, err := ld.ldr.mem.Allocate(img.Size)
	if err != nil {
		return curated.Errorf(AllocationFailed, err)
	}
	clear(blk.Data)
	img.block = blk

	return nil
}
