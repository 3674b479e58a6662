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

package elf32_test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
	"github.com/jetsetilly/elfpack/endian"
	"github.com/jetsetilly/elfpack/test"
)

func TestHeader(t *testing.T) {
	bld := elf32.Builder{
		Type:       elf.ET_DYN,
		Entry:      0x100,
		FastMemory: 0x03fc0000,
		Segments: []elf32.Segment{
			{Type: elf.PT_LOAD, Vaddr: 0x0, Data: []byte{1, 2, 3, 4}, Memsz: 8},
		},
	}
	data := bld.Build()

	order := endian.NewAdapter()
	r := bytes.NewReader(data)
	h, err := elf32.ReadHeader(r, order)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, h.Validate())
	test.ExpectEquality(t, elf.Type(h.Type), elf.ET_DYN)
	test.ExpectEquality(t, h.Entry, uint32(0x100))
	test.ExpectEquality(t, h.Phnum, uint16(1))
	test.ExpectEquality(t, h.FastMemory(order), uint32(0x03fc0000))

	_, err = r.Seek(int64(h.Phoff), 0)
	test.DemandSuccess(t, err)
	p, err := elf32.ReadProgHeader(r, order)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, elf.ProgType(p.Type), elf.PT_LOAD)
	test.ExpectEquality(t, p.Filesz, uint32(4))
	test.ExpectEquality(t, p.Memsz, uint32(8))
	test.ExpectEquality(t, data[p.Offset+3], byte(4))
}

func TestValidate(t *testing.T) {
	order := binary.BigEndian
	good := elf32.Builder{Type: elf.ET_EXEC}.Build()

	// the validation functions require a reader of the data
	check := func(data []byte) error {
		h, err := elf32.ReadHeader(bytes.NewReader(data), order)
		test.DemandSuccess(t, err)
		return h.Validate()
	}

	test.ExpectSuccess(t, check(good))

	bad := bytes.Clone(good)
	bad[0] = 'X'
	test.ExpectSuccess(t, curated.Is(check(bad), elf32.Malformed))

	bad = bytes.Clone(good)
	bad[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	test.ExpectSuccess(t, curated.Is(check(bad), elf32.Malformed))

	bad = bytes.Clone(good)
	bad[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	test.ExpectSuccess(t, curated.Is(check(bad), elf32.Malformed))

	bad = bytes.Clone(good)
	order.PutUint16(bad[18:], uint16(elf.EM_386))
	test.ExpectSuccess(t, curated.Is(check(bad), elf32.Malformed))

	// a short file is an I/O error and not a validation error
	_, err := elf32.ReadHeader(bytes.NewReader(good[:20]), order)
	test.ExpectFailure(t, err)
}

func TestRels(t *testing.T) {
	order := endian.NewAdapter()
	rels := []elf32.Rel{
		{Offset: 0x10, Info: elf.R_INFO32(0, uint32(elf.R_ARM_RELATIVE))},
		{Offset: 0x20, Info: elf.R_INFO32(3, uint32(elf.R_ARM_ABS32))},
	}
	b := elf32.EncodeRels(rels, order)

	// trailing bytes are ignored
	b = append(b, 0xff, 0xff)

	d := elf32.Rels(b, order)
	test.DemandEquality(t, len(d), 2)
	test.ExpectEquality(t, d[0].Type(), elf.R_ARM_RELATIVE)
	test.ExpectEquality(t, d[1].Type(), elf.R_ARM_ABS32)
	test.ExpectEquality(t, d[1].Sym(), uint32(3))
	test.ExpectEquality(t, d[1].Offset, uint32(0x20))
}

func TestSyms(t *testing.T) {
	order := endian.NewAdapter()
	var st elf32.StringTable
	n := st.Add("printf")
	syms := []elf32.Sym{
		{},
		{Name: n, Value: 0x40, Info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC), Shndx: 1},
	}
	b := elf32.EncodeSyms(syms, order)

	s, err := elf32.SymAt(b, 1, order)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.Bind(), elf.STB_GLOBAL)
	test.ExpectEquality(t, s.Type(), elf.STT_FUNC)
	test.ExpectEquality(t, s.Value, uint32(0x40))
	test.ExpectEquality(t, s.Shndx, uint16(1))

	name, err := elf32.CString(st.Bytes(), s.Name)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, name, "printf")

	_, err = elf32.SymAt(b, 2, order)
	test.ExpectSuccess(t, curated.Is(err, elf32.Malformed))
}

func TestCString(t *testing.T) {
	table := []byte("\x00abc\x00def")

	s, err := elf32.CString(table, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "abc")

	s, err = elf32.CString(table, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "")

	// not terminated within the table
	_, err = elf32.CString(table, 5)
	test.ExpectSuccess(t, curated.Is(err, elf32.Malformed))

	// out of range
	_, err = elf32.CString(table, 100)
	test.ExpectSuccess(t, curated.Is(err, elf32.Malformed))
}

func TestDyns(t *testing.T) {
	order := endian.NewAdapter()
	b := elf32.EncodeDyns([]elf32.Dyn{{Tag: int32(elf.DT_REL), Val: 0x200}}, order)
	test.DemandEquality(t, len(b), 16)
	d := elf32.DecodeDyn(b, order)
	test.ExpectEquality(t, elf.DynTag(d.Tag), elf.DT_REL)
	test.ExpectEquality(t, d.Val, uint32(0x200))
	test.ExpectEquality(t, elf32.DecodeDyn(b[8:], order).Tag, int32(0))
}
