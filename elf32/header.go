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

package elf32

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetsetilly/elfpack/curated"
)

// Sizes of the on-disk structures.
const (
	HeaderSize        = 52
	ProgHeaderSize    = 32
	SectionHeaderSize = 40
	DynSize           = 8
	RelSize           = 8
	SymSize           = 16
)

// Malformed is the pattern for errors caused by structurally invalid input.
const Malformed = "elf32: %v"

// Header is the ELF file header.
type Header struct {
	Ident     [elf.EI_NIDENT]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// ReadHeader reads a Header from the current position of r. Errors from r are
// returned unchanged.
func ReadHeader(r io.Reader, order binary.ByteOrder) (Header, error) {
	var h Header
	err := binary.Read(r, order, &h)
	return h, err
}

// Validate checks that the header describes a big-endian 32-bit ARM file
// with usable table entry sizes.
func (h Header) Validate() error {
	if !bytes.Equal(h.Ident[:elf.EI_CLASS], []byte(elf.ELFMAG)) {
		return curated.Errorf(Malformed, "not an ELF file")
	}
	if elf.Class(h.Ident[elf.EI_CLASS]) != elf.ELFCLASS32 {
		return curated.Errorf(Malformed, fmt.Sprintf("unsupported class (%v)", elf.Class(h.Ident[elf.EI_CLASS])))
	}
	if elf.Data(h.Ident[elf.EI_DATA]) != elf.ELFDATA2MSB {
		return curated.Errorf(Malformed, fmt.Sprintf("unsupported data encoding (%v)", elf.Data(h.Ident[elf.EI_DATA])))
	}
	if elf.Machine(h.Machine) != elf.EM_ARM {
		return curated.Errorf(Malformed, fmt.Sprintf("unsupported machine (%v)", elf.Machine(h.Machine)))
	}
	if h.Phnum > 0 && h.Phentsize < ProgHeaderSize {
		return curated.Errorf(Malformed, fmt.Sprintf("program header entry size too small (%d)", h.Phentsize))
	}
	if h.Shnum > 0 && h.Shentsize < SectionHeaderSize {
		return curated.Errorf(Malformed, fmt.Sprintf("section header entry size too small (%d)", h.Shentsize))
	}
	return nil
}

// FastMemory returns the fast memory address requested by the module. The
// address is stored in the padding bytes of the identification array. Zero
// indicates no request.
func (h Header) FastMemory(order binary.ByteOrder) uint32 {
	return order.Uint32(h.Ident[12:16])
}

// ProgHeader is a program header table entry.
type ProgHeader struct {
	Type   uint32
	Offset uint32
	Vaddr  uint32
	Paddr  uint32
	Filesz uint32
	Memsz  uint32
	Flags  uint32
	Align  uint32
}

// ReadProgHeader reads a ProgHeader from the current position of r.
func ReadProgHeader(r io.Reader, order binary.ByteOrder) (ProgHeader, error) {
	var p ProgHeader
	err := binary.Read(r, order, &p)
	return p, err
}

func (p ProgHeader) String() string {
	return fmt.Sprintf("%v offset=%#08x vaddr=%#08x filesz=%#x memsz=%#x", elf.ProgType(p.Type), p.Offset, p.Vaddr, p.Filesz, p.Memsz)
}

// SectionHeader is a section header table entry.
type SectionHeader struct {
	Name      uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

// ReadSectionHeader reads a SectionHeader from the current position of r.
func ReadSectionHeader(r io.Reader, order binary.ByteOrder) (SectionHeader, error) {
	var s SectionHeader
	err := binary.Read(r, order, &s)
	return s, err
}
