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

package loader_test

import (
	"debug/elf"
	"encoding/binary"

	"github.com/jetsetilly/elfpack/arm"
	"github.com/jetsetilly/elfpack/elf32"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/memory"
)

var order = binary.BigEndian

var spaceConfig = memory.Config{
	HeapOrigin: 0x12000000,
	HeapSize:   0x4000,
	FastOrigin: 0x03fc0000,
	FastSize:   0x400,
}

// library is the export table used by most tests.
func library() *exports.Table {
	var b exports.Builder
	b.Add("printf", 0x10080001)
	b.Add("strlen", 0x10090000)
	b.Add("dataX", 0x30000100)
	b.Add("dataY", 0x30000200)
	b.Add("sized", 0x12345678)
	return b.Table(order)
}

func putWords(b []byte, off int, words ...uint32) {
	for i, w := range words {
		order.PutUint32(b[off+i*4:], w)
	}
}

func rel(offset uint32, sym uint32, typ elf.R_ARM) elf32.Rel {
	return elf32.Rel{Offset: offset, Info: elf.R_INFO32(sym, uint32(typ))}
}

func sym(name uint32, value uint32, size uint32, bind elf.SymBind, typ elf.SymType) elf32.Sym {
	return elf32.Sym{Name: name, Value: value, Size: size, Info: elf.ST_INFO(bind, typ)}
}

// ADS module linked at 0x1000:
//
//	0x1000	pointer to 0x1020 (R_ARM_RABS32)
//	0x1004	pointer to 0x1030 (R_ARM_RELATIVE)
//	0x1008	word with unsupported relocation
//	0x1010	printf import, stub word at 0x101c
//	0x1020	dataX import
//	0x1024	local function
//	0x1028	sized object
//	0x102c	function that is not an import
//	0x1040	bss to 0x1050
const (
	adsVaddr  = 0x1000
	adsFilesz = 0x40
	adsMemsz  = 0x50
	adsDyn    = 0x2000
)

type adsModule struct {
	rels     []elf32.Rel
	fastAddr uint32
	noLoad   bool
	dynamic  []byte
}

func (m adsModule) segment() []byte {
	data := make([]byte, adsFilesz)
	putWords(data, 0x00, 0x1020, 0x1030, 0xcafef00d)
	putWords(data, 0x10, 0xe1a00000, 0xe1a00000, 0xe1a00000, 0xdeadbeef)
	putWords(data, 0x20, 0xdeadbeef, 0xe12fff1e, 0x00000004, 0xe12fff1e)
	return data
}

func (m adsModule) build() []byte {
	rels := m.rels
	if rels == nil {
		rels = []elf32.Rel{
			rel(0x1000, 0, elf.R_ARM_RABS32),
			rel(0x1004, 0, elf.R_ARM_RELATIVE),
			rel(0x1008, 0, elf.R_ARM_PC24),
		}
	}

	relTab := elf32.EncodeRels(rels, order)

	// three dynamic entries including the terminator, followed by the table
	dynamic := m.dynamic
	if dynamic == nil {
		dynamic = elf32.EncodeDyns([]elf32.Dyn{
			{Tag: int32(elf.DT_REL), Val: adsDyn + 3*elf32.DynSize},
			{Tag: int32(elf.DT_RELSZ), Val: uint32(len(relTab))},
		}, order)
		dynamic = append(dynamic, relTab...)
	}

	var shstr elf32.StringTable
	shstr.Add(".symtab")
	shstr.Add(".strtab")

	var str elf32.StringTable
	syms := []elf32.Sym{
		{},
		sym(str.Add("printf"), 0x1010, 0, elf.STB_GLOBAL, elf.STT_FUNC),
		sym(str.Add("dataX"), 0x1020, 0, elf.STB_GLOBAL, elf.STT_OBJECT),
		sym(str.Add("strlen"), 0x1024, 0, elf.STB_LOCAL, elf.STT_FUNC),
		sym(str.Add("sized"), 0x1028, 4, elf.STB_GLOBAL, elf.STT_OBJECT),
		sym(str.Add("main"), 0x102c, 0, elf.STB_GLOBAL, elf.STT_FUNC),
	}

	bld := elf32.Builder{
		Type:       elf.ET_EXEC,
		Entry:      0x102c,
		FastMemory: m.fastAddr,
		Sections: []elf32.Section{
			{Type: elf.SHT_NULL},
			{Type: elf.SHT_STRTAB, Data: shstr.Bytes()},
			{Type: elf.SHT_SYMTAB, Data: elf32.EncodeSyms(syms, order)},
			{Type: elf.SHT_STRTAB, Data: str.Bytes()},
		},
		Shstrndx: 1,
	}

	if !m.noLoad {
		bld.Segments = append(bld.Segments, elf32.Segment{
			Type: elf.PT_LOAD, Vaddr: adsVaddr, Data: m.segment(), Memsz: adsMemsz,
		})
	}
	bld.Segments = append(bld.Segments, elf32.Segment{
		Type: elf.PT_DYNAMIC, Vaddr: adsDyn, Data: dynamic,
	})

	return bld.Build()
}

// GCC module linked at zero:
//
//	0x010	PLT header, with a thumb veneer as the sixth word
//	0x028	PLT slot for printf
//	0x034	thumb veneer
//	0x038	PLT slot for strlen
//	0x100	GOT
//	0x120	pointer to 0x40 (R_ARM_RELATIVE)
//	0x124	dataY (R_ARM_ABS32)
//	0x128	missing (R_ARM_ABS32)
//	0x140	dynamic symbols
//	0x190	dynamic strings
//	0x1c0	dynamic relocations
//	0x1d8	PLT relocations
//	0x1e8	dynamic segment
//	0x240	bss to 0x260
const (
	gccFilesz  = 0x240
	gccMemsz   = 0x260
	gccPLT     = 0x10
	gccSlot0   = 0x28
	gccSlot1   = 0x38
	gccGOT     = 0x100
	gccSymtab  = 0x140
	gccStrtab  = 0x190
	gccRel     = 0x1c0
	gccJmprel  = 0x1d8
	gccDynamic = 0x1e8
)

type gccModule struct {
	noVeneer bool
	fastAddr uint32
}

func (m gccModule) segment() ([]byte, []byte) {
	data := make([]byte, gccFilesz)

	putWords(data, 0x00, 0xe1a00000, 0xe12fff1e)

	// PLT header
	putWords(data, gccPLT, 0xe52de004, 0xe59fe004, 0xe08fe00e, 0xe5bef008, gccGOT-gccPLT-16)

	slot0 := uint32(gccSlot0)
	slot1 := uint32(gccSlot1)
	if m.noVeneer {
		slot0 = gccPLT + arm.PLTHeaderWords*4
		slot1 = slot0 + arm.TrampolineSize
	} else {
		putWords(data, gccPLT+arm.PLTHeaderWords*4, arm.ThumbVeneer)
		putWords(data, gccSlot1-4, arm.ThumbVeneer)
	}
	w := arm.EncodePLTEntry(slot0, gccGOT+0x0c)
	putWords(data, int(slot0), w[:]...)
	w = arm.EncodePLTEntry(slot1, gccGOT+0x10)
	putWords(data, int(slot1), w[:]...)

	// GOT. jump slots initially point to the PLT header
	putWords(data, gccGOT, gccDynamic, 0, 0, gccPLT, gccPLT)

	putWords(data, 0x120, 0x40, 0, 0)

	var str elf32.StringTable
	syms := []elf32.Sym{
		{},
		sym(str.Add("printf"), 0, 0, elf.STB_GLOBAL, elf.STT_FUNC),
		sym(str.Add("dataY"), 0, 0, elf.STB_GLOBAL, elf.STT_OBJECT),
		sym(str.Add("missing"), 0, 0, elf.STB_GLOBAL, elf.STT_OBJECT),
		sym(str.Add("strlen"), 0, 0, elf.STB_GLOBAL, elf.STT_FUNC),
	}
	copy(data[gccSymtab:], elf32.EncodeSyms(syms, order))
	copy(data[gccStrtab:], str.Bytes())

	copy(data[gccRel:], elf32.EncodeRels([]elf32.Rel{
		rel(0x120, 0, elf.R_ARM_RELATIVE),
		rel(0x124, 2, elf.R_ARM_ABS32),
		rel(0x128, 3, elf.R_ARM_ABS32),
	}, order))

	copy(data[gccJmprel:], elf32.EncodeRels([]elf32.Rel{
		rel(gccGOT+0x0c, 1, elf.R_ARM_JUMP_SLOT),
		rel(gccGOT+0x10, 4, elf.R_ARM_JUMP_SLOT),
	}, order))

	dynamic := elf32.EncodeDyns([]elf32.Dyn{
		{Tag: int32(elf.DT_SYMTAB), Val: gccSymtab},
		{Tag: int32(elf.DT_STRTAB), Val: gccStrtab},
		{Tag: int32(elf.DT_STRSZ), Val: uint32(len(str.Bytes()))},
		{Tag: int32(elf.DT_REL), Val: gccRel},
		{Tag: int32(elf.DT_RELSZ), Val: 3 * elf32.RelSize},
		{Tag: int32(elf.DT_JMPREL), Val: gccJmprel},
		{Tag: int32(elf.DT_PLTRELSZ), Val: 2 * elf32.RelSize},
		{Tag: int32(elf.DT_PLTREL), Val: uint32(elf.DT_REL)},
		{Tag: 0x6ffffffe, Val: 0x12345678},
	}, order)
	copy(data[gccDynamic:], dynamic)

	return data, dynamic
}

func (m gccModule) build() []byte {
	data, dynamic := m.segment()
	return elf32.Builder{
		Type:       elf.ET_DYN,
		Entry:      0x0,
		FastMemory: m.fastAddr,
		Segments: []elf32.Segment{
			{Type: elf.PT_LOAD, Vaddr: 0, Data: data, Memsz: gccMemsz},
			{Type: elf.PT_DYNAMIC, Vaddr: gccDynamic, Data: dynamic},
		},
	}.Build()
}
