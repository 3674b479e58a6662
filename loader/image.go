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
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/jetsetilly/elfpack/memory"
)

// Addr is a runtime address in target memory.
type Addr uint32

func (a Addr) String() string {
	return fmt.Sprintf("%#08x", uint32(a))
}

// Offset is a byte offset into a placed image.
type Offset uint32

func (o Offset) String() string {
	return fmt.Sprintf("+%#x", uint32(o))
}

// Flavor is the ABI flavor of a module. It is chosen from the ELF file type.
type Flavor int

// List of valid Flavor values.
const (
	FlavorUnknown Flavor = iota
	FlavorADS
	FlavorGCC
)

func (f Flavor) String() string {
	switch f {
	case FlavorADS:
		return "ADS"
	case FlavorGCC:
		return "GCC"
	}
	return "unknown"
}

// flavorOf returns the flavor for the ELF file type.
func flavorOf(typ uint16) (Flavor, error) {
	switch elf.Type(typ) {
	case elf.ET_EXEC:
		return FlavorADS, nil
	case elf.ET_DYN:
		return FlavorGCC, nil
	}
	return FlavorUnknown, malformed("unsupported file type (%v)", elf.Type(typ))
}

// Image is a module placed in target memory.
type Image struct {
	// where the module was loaded from
	URI  string
	Hash string

	Flavor Flavor

	// runtime address of the first byte of the image
	Base Addr

	// link address of the first byte of the image
	MinVaddr uint32

	// size of the image window in bytes
	Size uint32

	// runtime address of the entry point
	Entry Addr

	// what the linker did, or would have done in a dry run
	Report Report

	order binary.ByteOrder

	// the image memory. a block returned by the allocator or a fast memory
	// view. in the fast memory case the previous contents of the view are
	// kept in the shadow block
	block  *memory.Block
	shadow *memory.Block

	fast bool

	crit     sync.Mutex
	released bool
}

func (img *Image) String() string {
	return fmt.Sprintf("%s [%v] %v to %#08x", img.URI, img.Flavor, img.Base, uint32(img.Base)+img.Size-1)
}

// Offset translates a link address to an offset in the image. The address must
// be inside the image window.
func (img *Image) Offset(vaddr uint32) (Offset, error) {
	if vaddr < img.MinVaddr || vaddr-img.MinVaddr >= img.Size {
		return 0, malformed("address %#08x outside of image (%#08x to %#08x)", vaddr, img.MinVaddr, uint64(img.MinVaddr)+uint64(img.Size)-1)
	}
	return Offset(vaddr - img.MinVaddr), nil
}

// AddrOf returns the runtime address of an offset in the image.
func (img *Image) AddrOf(off Offset) Addr {
	return img.Base + Addr(off)
}

// delta is the value added to link addresses to get runtime addresses.
func (img *Image) delta() uint32 {
	return uint32(img.Base) - img.MinVaddr
}

// slice returns size bytes of the image at off.
func (img *Image) slice(off Offset, size uint32) ([]byte, error) {
	end := uint64(off) + uint64(size)
	if end > uint64(len(img.block.Data)) {
		return nil, malformed("%d bytes at %v outside of image (%d bytes)", size, off, len(img.block.Data))
	}
	return img.block.Data[off:end:end], nil
}

// tail returns the image from off to the end.
func (img *Image) tail(off Offset) ([]byte, error) {
	if uint64(off) > uint64(len(img.block.Data)) {
		return nil, malformed("%v outside of image (%d bytes)", off, len(img.block.Data))
	}
	return img.block.Data[off:], nil
}

func (img *Image) word(off Offset) (uint32, error) {
	b, err := img.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return img.order.Uint32(b), nil
}

func (img *Image) putWord(off Offset, v uint32) error {
	b, err := img.slice(off, 4)
	if err != nil {
		return err
	}
	img.order.PutUint32(b, v)
	return nil
}

// Word returns the 32bit word at off in target byte order.
func (img *Image) Word(off Offset) (uint32, error) {
	img.crit.Lock()
	defer img.crit.Unlock()
	if img.released {
		return 0, malformed("image has been unloaded")
	}
	return img.word(off)
}

// Bytes returns a copy of the image memory. Returns nil if the image has been
// unloaded.
func (img *Image) Bytes() []byte {
	img.crit.Lock()
	defer img.crit.Unlock()
	if img.released || img.block == nil {
		return nil
	}
	b := make([]byte, len(img.block.Data))
	copy(b, img.block.Data)
	return b
}

// InFastMemory returns true if the image was placed in fast memory.
func (img *Image) InFastMemory() bool {
	return img.fast
}

// Released returns true if the image has been unloaded.
func (img *Image) Released() bool {
	img.crit.Lock()
	defer img.crit.Unlock()
	return img.released
}

// checkWord returns an error if a word cannot be written at off.
func (img *Image) checkWord(off Offset) error {
	_, err := img.slice(off, 4)
	return err
}
