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

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
)

// adsCandidate returns true if the symbol may be an import. Data imports are
// declared as objects without a size.
func adsCandidate(sym elf32.Sym) bool {
	if sym.Bind() != elf.STB_GLOBAL {
		return false
	}
	switch sym.Type() {
	case elf.STT_FUNC:
		return true
	case elf.STT_OBJECT:
		return sym.Size == 0
	}
	return false
}

// bindSections binds the imports of an ADS module through the symbol table
// found in the section headers.
func (ld *load) bindSections() error {
	var symtab []byte
	var strtab []byte

	for i := 0; i < int(ld.hdr.Shnum); i++ {
		err := ld.seek(uint64(ld.hdr.Shoff) + uint64(i)*uint64(ld.hdr.Shentsize))
		if err != nil {
			return err
		}

		sh, err := elf32.ReadSectionHeader(ld.stream, ld.order)
		if err != nil {
			return curated.Errorf(ReadFailed, err)
		}

		switch elf.SectionType(sh.Type) {
		case elf.SHT_SYMTAB:
			symtab, err = ld.readScratch(sh.Offset, sh.Size)
			if err != nil {
				return err
			}
		case elf.SHT_STRTAB:
			if i == int(ld.hdr.Shstrndx) {
				continue
			}
			strtab, err = ld.readScratch(sh.Offset, sh.Size)
			if err != nil {
				return err
			}
		}
	}

	img := ld.img
	cfg := ld.ldr.cfg

	for i := 0; i+elf32.SymSize <= len(symtab); i += elf32.SymSize {
		sym := elf32.DecodeSym(symtab[i:], ld.order)
		if !adsCandidate(sym) {
			continue
		}

		name, err := elf32.CString(strtab, sym.Name)
		if err != nil {
			return curated.Errorf(MalformedInput, err)
		}

		e, ok := ld.lib.Lookup(name, cfg.Policy)
		if !ok {
			ld.trace("ELF", "symbol %s (%v) is not an import", name, sym.Type())
			continue
		}

		off, err := img.Offset(sym.Value)
		if err != nil {
			return err
		}

		b := Binding{Name: name}

		if cfg.isData(e.Addr) {
			b.Kind = BindData
			b.Offset = off
			b.Value = e.Addr - cfg.DataShift
		} else {
			b.Kind = BindFunction
			b.Offset = off + FunctionStubOffset
			b.Value = e.Addr
		}

		if ld.commit {
			err = img.putWord(b.Offset, b.Value)
		} else {
			err = img.checkWord(b.Offset)
		}
		if err != nil {
			return err
		}

		ld.trace("ELF", "bind %s", b)
		img.Report.Bindings = append(img.Report.Bindings, b)
	}

	return nil
}
