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
	"debug/elf"
	"encoding/binary"
)

// Put encodes the Dyn into the start of b.
func (d Dyn) Put(b []byte, order binary.ByteOrder) {
	order.PutUint32(b[0:], uint32(d.Tag))
	order.PutUint32(b[4:], d.Val)
}

// Put encodes the Rel into the start of b.
func (r Rel) Put(b []byte, order binary.ByteOrder) {
	order.PutUint32(b[0:], r.Offset)
	order.PutUint32(b[4:], r.Info)
}

// Put encodes the Sym into the start of b.
func (s Sym) Put(b []byte, order binary.ByteOrder) {
	order.PutUint32(b[0:], s.Name)
	order.PutUint32(b[4:], s.Value)
	order.PutUint32(b[8:], s.Size)
	b[12] = s.Info
	b[13] = s.Other
	order.PutUint16(b[14:], s.Shndx)
}

// EncodeDyns returns the dynamic entries as a segment, followed by a DT_NULL
// terminator.
func EncodeDyns(dyns []Dyn, order binary.ByteOrder) []byte {
	b := make([]byte, (len(dyns)+1)*DynSize)
	for i, d := range dyns {
		d.Put(b[i*DynSize:], order)
	}
	Dyn{Tag: int32(elf.DT_NULL)}.Put(b[len(dyns)*DynSize:], order)
	return b
}

// EncodeRels returns the relocation entries as a table.
func EncodeRels(rels []Rel, order binary.ByteOrder) []byte {
	b := make([]byte, len(rels)*RelSize)
	for i, r := range rels {
		r.Put(b[i*RelSize:], order)
	}
	return b
}

// EncodeSyms returns the symbols as a table.
func EncodeSyms(syms []Sym, order binary.ByteOrder) []byte {
	b := make([]byte, len(syms)*SymSize)
	for i, s := range syms {
		s.Put(b[i*SymSize:], order)
	}
	return b
}

// StringTable accumulates NUL terminated strings. The first byte of a new
// table is always the empty string.
type StringTable struct {
	data []byte
}

// Add a string to the table and return its offset.
func (st *StringTable) Add(s string) uint32 {
	if len(st.data) == 0 {
		st.data = append(st.data, 0x00)
	}
	off := uint32(len(st.data))
	st.data = append(st.data, s...)
	st.data = append(st.data, 0x00)
	return off
}

// Bytes returns the table.
func (st *StringTable) Bytes() []byte {
	if len(st.data) == 0 {
		return []byte{0x00}
	}
	return st.data
}

// Segment is a program segment for the Builder.
type Segment struct {
	Type  elf.ProgType
	Vaddr uint32
	Data  []byte

	// size in memory. a value less than the length of Data means the length
	// of Data is used
	Memsz uint32
}

// Section is a section for the Builder. Only the type and content is
// recorded.
type Section struct {
	Type elf.SectionType
	Data []byte
}

// Builder creates ELF files in memory. The files are laid out as header,
// program headers, segment data, section data and finally section headers.
type Builder struct {
	Type       elf.Type
	Entry      uint32
	FastMemory uint32
	Segments   []Segment
	Sections   []Section
	Shstrndx   uint16

	// Order defaults to binary.BigEndian
	Order binary.ByteOrder
}

func align4(n int) int {
	return (n + 3) &^ 3
}

// Build the ELF file.
func (bld Builder) Build() []byte {
	order := bld.Order
	if order == nil {
		order = binary.BigEndian
	}

	phoff := HeaderSize
	off := align4(phoff + len(bld.Segments)*ProgHeaderSize)

	segOffsets := make([]int, len(bld.Segments))
	for i, s := range bld.Segments {
		segOffsets[i] = off
		off = align4(off + len(s.Data))
	}

	secOffsets := make([]int, len(bld.Sections))
	for i, s := range bld.Sections {
		secOffsets[i] = off
		off = align4(off + len(s.Data))
	}

	shoff := off
	if len(bld.Sections) > 0 {
		off += len(bld.Sections) * SectionHeaderSize
	}

	b := make([]byte, off)

	// header
	copy(b[0:], elf.ELFMAG)
	b[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	b[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	b[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	order.PutUint32(b[12:], bld.FastMemory)
	order.PutUint16(b[16:], uint16(bld.Type))
	order.PutUint16(b[18:], uint16(elf.EM_ARM))
	order.PutUint32(b[20:], uint32(elf.EV_CURRENT))
	order.PutUint32(b[24:], bld.Entry)
	order.PutUint32(b[28:], uint32(phoff))
	if len(bld.Sections) > 0 {
		order.PutUint32(b[32:], uint32(shoff))
	}
	order.PutUint16(b[40:], HeaderSize)
	order.PutUint16(b[42:], ProgHeaderSize)
	order.PutUint16(b[44:], uint16(len(bld.Segments)))
	order.PutUint16(b[46:], SectionHeaderSize)
	order.PutUint16(b[48:], uint16(len(bld.Sections)))
	order.PutUint16(b[50:], bld.Shstrndx)

	// program headers and segment data
	for i, s := range bld.Segments {
		memsz := s.Memsz
		if memsz < uint32(len(s.Data)) {
			memsz = uint32(len(s.Data))
		}
		p := b[phoff+i*ProgHeaderSize:]
		order.PutUint32(p[0:], uint32(s.Type))
		order.PutUint32(p[4:], uint32(segOffsets[i]))
		order.PutUint32(p[8:], s.Vaddr)
		order.PutUint32(p[12:], s.Vaddr)
		order.PutUint32(p[16:], uint32(len(s.Data)))
		order.PutUint32(p[20:], memsz)
		order.PutUint32(p[24:], uint32(elf.PF_R|elf.PF_W|elf.PF_X))
		order.PutUint32(p[28:], 4)
		copy(b[segOffsets[i]:], s.Data)
	}

	// section data and headers
	for i, s := range bld.Sections {
		copy(b[secOffsets[i]:], s.Data)
		h := b[shoff+i*SectionHeaderSize:]
		order.PutUint32(h[4:], uint32(s.Type))
		order.PutUint32(h[16:], uint32(secOffsets[i]))
		order.PutUint32(h[20:], uint32(len(s.Data)))
		if s.Type == elf.SHT_SYMTAB {
			order.PutUint32(h[36:], SymSize)
		}
	}

	return b
}
