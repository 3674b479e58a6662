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

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
)

// relocate applies a relocation table to the image. syms is nil for modules
// without dynamic symbols, in which case symbol relocations are unsupported.
func (ld *load) relocate(rels []elf32.Rel, syms *dynSymbols) error {
	img := ld.img
	delta := img.delta()

	for i, r := range rels {
		switch r.Type() {
		case elf.R_ARM_RABS32, elf.R_ARM_RELATIVE:
			off, err := img.Offset(r.Offset)
			if err != nil {
				return err
			}

			w, err := img.word(off)
			if err != nil {
				return err
			}

			ld.trace("ELF", "reloc %d: %v %v: %08x => %08x", i, r.Type(), off, w, w+delta)

			if ld.commit {
				err = img.putWord(off, w+delta)
				if err != nil {
					return err
				}
			}
			img.Report.Relocated++

		case elf.R_ARM_ABS32:
			if syms == nil {
				ld.unknown(i, r)
				continue
			}

			err := ld.bindAbsolute(i, r, syms)
			if err != nil {
				return err
			}

		default:
			ld.unknown(i, r)
		}
	}

	return nil
}

func (ld *load) unknown(i int, r elf32.Rel) {
	ld.warn("ELF", "reloc %d: unsupported relocation (%v)", i, r)
	ld.img.Report.Unknown++
}

// bindAbsolute binds an R_ARM_ABS32 relocation to the export table. If the
// name is not exported the word is set to the image base.
func (ld *load) bindAbsolute(i int, r elf32.Rel, syms *dynSymbols) error {
	img := ld.img

	off, err := img.Offset(r.Offset)
	if err != nil {
		return err
	}

	name, err := syms.name(r.Sym(), ld.order)
	if err != nil {
		return err
	}

	e, ok := ld.lib.Lookup(name, ld.ldr.cfg.Policy)
	if !ok {
		if ld.ldr.cfg.Strict {
			return curated.Errorf(UnresolvedReference, name)
		}

		ld.warn("ELF", "reloc %d: %s not exported, using image base %v", i, name, img.Base)
		img.Report.Unresolved = append(img.Report.Unresolved, name)

		if ld.commit {
			return img.putWord(off, uint32(img.Base))
		}
		return img.checkWord(off)
	}

	v := ld.ldr.cfg.value(e.Addr)
	ld.trace("ELF", "reloc %d: %v %v: %s = %08x", i, r.Type(), off, name, v)

	if ld.commit {
		err = img.putWord(off, v)
	} else {
		err = img.checkWord(off)
	}
	if err != nil {
		return err
	}

	img.Report.Bindings = append(img.Report.Bindings, Binding{
		Name:   name,
		Kind:   BindAbsolute,
		Offset: off,
		Value:  v,
	})

	return nil
}

// dynSymbols are the dynamic symbol and string tables of a placed image.
type dynSymbols struct {
	symtab []byte
	strtab []byte
}

// dynamicSymbols finds the dynamic symbol tables named by the dynamic table.
// Missing tables are not an error until a symbol is required.
func (ld *load) dynamicSymbols(dyn *dynTable) (*dynSymbols, error) {
	syms := &dynSymbols{}

	if a := dyn.get(elf.DT_SYMTAB); a != 0 {
		off, err := ld.img.Offset(a)
		if err != nil {
			return nil, err
		}
		syms.symtab, err = ld.img.tail(off)
		if err != nil {
			return nil, err
		}
	}

	if a := dyn.get(elf.DT_STRTAB); a != 0 {
		off, err := ld.img.Offset(a)
		if err != nil {
			return nil, err
		}
		if sz := dyn.get(elf.DT_STRSZ); sz != 0 {
			syms.strtab, err = ld.img.slice(off, sz)
		} else {
			syms.strtab, err = ld.img.tail(off)
		}
		if err != nil {
			return nil, err
		}
	}

	return syms, nil
}

// name returns the name of dynamic symbol idx.
func (syms *dynSymbols) name(idx uint32, order binary.ByteOrder) (string, error) {
	sym, err := elf32.SymAt(syms.symtab, idx, order)
	if err != nil {
		return "", curated.Errorf(MalformedInput, err)
	}
	name, err := elf32.CString(syms.strtab, sym.Name)
	if err != nil {
		return "", curated.Errorf(MalformedInput, err)
	}
	return name, nil
}
