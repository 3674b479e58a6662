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

	"github.com/jetsetilly/elfpack/elf32"
)

// flavour links a placed image according to the module's ABI.
type flavour interface {
	Flavor() Flavor
	link(ld *load) error
}

// adsFlavour modules carry their relocation table in a dynamic segment that
// is not part of the image and bind imports through the section symbol table.
type adsFlavour struct{}

func (adsFlavour) Flavor() Flavor {
	return FlavorADS
}

func (adsFlavour) link(ld *load) error {
	for _, p := range ld.progs {
		if elf.ProgType(p.Type) != elf.PT_DYNAMIC {
			continue
		}

		seg, err := ld.readScratch(p.Offset, p.Filesz)
		if err != nil {
			return err
		}

		dyn, err := buildDynTable(seg, ld.order)
		if err != nil {
			return err
		}

		relsz := dyn.get(elf.DT_RELSZ)
		if relsz == 0 {
			continue
		}

		rel := dyn.get(elf.DT_REL)
		if rel < p.Vaddr || uint64(rel-p.Vaddr)+uint64(relsz) > uint64(len(seg)) {
			return malformed("relocation table %#08x (%d bytes) outside of dynamic segment", rel, relsz)
		}

		start := rel - p.Vaddr
		err = ld.relocate(elf32.Rels(seg[start:start+relsz], ld.order), nil)
		if err != nil {
			return err
		}
	}

	return ld.bindSections()
}

// gccFlavour modules are linked through their dynamic segment, which is part
// of the image.
type gccFlavour struct{}

func (gccFlavour) Flavor() Flavor {
	return FlavorGCC
}

func (gccFlavour) link(ld *load) error {
	img := ld.img

	for _, p := range ld.progs {
		if elf.ProgType(p.Type) != elf.PT_DYNAMIC {
			continue
		}

		off, err := img.Offset(p.Vaddr)
		if err != nil {
			return err
		}

		seg, err := img.slice(off, p.Filesz)
		if err != nil {
			return err
		}

		dyn, err := buildDynTable(seg, ld.order)
		if err != nil {
			return err
		}

		syms, err := ld.dynamicSymbols(&dyn)
		if err != nil {
			return err
		}

		if relsz := dyn.get(elf.DT_RELSZ); relsz != 0 {
			off, err := img.Offset(dyn.get(elf.DT_REL))
			if err != nil {
				return err
			}

			tab, err := img.slice(off, relsz)
			if err != nil {
				return err
			}

			// decoded before relocation in case the table itself is a target
			rels := elf32.Rels(tab, ld.order)

			err = ld.relocate(rels, syms)
			if err != nil {
				return err
			}
		}

		err = ld.bindPLT(&dyn, syms)
		if err != nil {
			return err
		}
	}

	return nil
}
