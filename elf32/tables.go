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
	"fmt"

	"github.com/jetsetilly/elfpack/curated"
)

// Dyn is an entry in the dynamic segment.
type Dyn struct {
	Tag int32
	Val uint32
}

// DecodeDyn decodes the Dyn at the start of b. The slice must be at least
// DynSize bytes long.
func DecodeDyn(b []byte, order binary.ByteOrder) Dyn {
	return Dyn{
		Tag: int32(order.Uint32(b[0:])),
		Val: order.Uint32(b[4:]),
	}
}

// Rel is a relocation entry without addend.
type Rel struct {
	Offset uint32
	Info   uint32
}

// DecodeRel decodes the Rel at the start of b. The slice must be at least
// RelSize bytes long.
func DecodeRel(b []byte, order binary.ByteOrder) Rel {
	return Rel{
		Offset: order.Uint32(b[0:]),
		Info:   order.Uint32(b[4:]),
	}
}

// Sym returns the symbol index of the relocation.
func (r Rel) Sym() uint32 {
	return elf.R_SYM32(r.Info)
}

// Type returns the relocation type.
func (r Rel) Type() elf.R_ARM {
	return elf.R_ARM(elf.R_TYPE32(r.Info))
}

func (r Rel) String() string {
	return fmt.Sprintf("%v offset=%#08x sym=%d", r.Type(), r.Offset, r.Sym())
}

// Rels decodes the relocation table in b. Trailing bytes that do not make up a
// complete entry are ignored.
func Rels(b []byte, order binary.ByteOrder) []Rel {
	n := len(b) / RelSize
	rels := make([]Rel, n)
	for i := range rels {
		rels[i] = DecodeRel(b[i*RelSize:], order)
	}
	return rels
}

// Sym is a symbol table entry.
type Sym struct {
	Name  uint32
	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

// DecodeSym decodes the Sym at the start of b. The slice must be at least
// SymSize bytes long.
func DecodeSym(b []byte, order binary.ByteOrder) Sym {
	return Sym{
		Name:  order.Uint32(b[0:]),
		Value: order.Uint32(b[4:]),
		Size:  order.Uint32(b[8:]),
		Info:  b[12],
		Other: b[13],
		Shndx: order.Uint16(b[14:]),
	}
}

// SymAt decodes symbol number idx in the symbol table b.
func SymAt(b []byte, idx uint32, order binary.ByteOrder) (Sym, error) {
	off := uint64(idx) * SymSize
	if off+SymSize > uint64(len(b)) {
		return Sym{}, curated.Errorf(Malformed, fmt.Sprintf("symbol index out of range (%d)", idx))
	}
	return DecodeSym(b[off:], order), nil
}

// Bind returns the binding of the symbol.
func (s Sym) Bind() elf.SymBind {
	return elf.ST_BIND(s.Info)
}

// Type returns the type of the symbol.
func (s Sym) Type() elf.SymType {
	return elf.ST_TYPE(s.Info)
}

// CString returns the NUL terminated string at offset in table. The string
// must be terminated inside the table.
func CString(table []byte, offset uint32) (string, error) {
	if uint64(offset) >= uint64(len(table)) {
		return "", curated.Errorf(Malformed, fmt.Sprintf("string offset out of range (%#x)", offset))
	}
	for i := offset; i < uint32(len(table)); i++ {
		if table[i] == 0x00 {
			return string(table[offset:i]), nil
		}
	}
	return "", curated.Errorf(Malformed, fmt.Sprintf("unterminated string at offset %#x", offset))
}
