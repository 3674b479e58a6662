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

	"github.com/jetsetilly/elfpack/arm"
	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
)

// pltStart returns the offset of the first PLT slot. The first GOT entry
// named by the jump slot relocations initially holds the link address of
// the PLT header.
func (ld *load) pltStart(first elf32.Rel) (Offset, error) {
	img := ld.img

	got, err := img.Offset(first.Offset)
	if err != nil {
		return 0, err
	}

	plt0, err := img.word(got)
	if err != nil {
		return 0, err
	}

	slot, err := img.Offset(plt0)
	if err != nil {
		return 0, malformed("PLT header: %v", err)
	}

	w, err := img.word(slot + arm.PLTHeaderWords*4)
	if err != nil {
		return 0, malformed("PLT header: %v", err)
	}

	if w == arm.ThumbVeneer {
		return slot + (arm.PLTHeaderWords+1)*4, nil
	}
	return slot + arm.PLTHeaderWords*4, nil
}

// bindPLT binds the jump slot relocations of a GCC module. Bound slots are
// rewritten with a trampoline and the GOT entry receives the address.
func (ld *load) bindPLT(dyn *dynTable, syms *dynSymbols) error {
	img := ld.img
	cfg := ld.ldr.cfg

	relsz := dyn.get(elf.DT_PLTRELSZ)
	if dyn.get(elf.DT_JMPREL) == 0 || relsz == 0 {
		return nil
	}

	off, err := img.Offset(dyn.get(elf.DT_JMPREL))
	if err != nil {
		return err
	}

	tab, err := img.slice(off, relsz)
	if err != nil {
		return err
	}

	rels := elf32.Rels(tab, ld.order)
	if len(rels) == 0 {
		return nil
	}

	slot, err := ld.pltStart(rels[0])
	if err != nil {
		return err
	}

	for i, r := range rels {
		if r.Type() != elf.R_ARM_JUMP_SLOT {
			ld.warn("PLT", "slot %d: unexpected relocation type (%v)", i, r)
		}

		if w, err := img.word(slot); err == nil && w == arm.ThumbVeneer {
			slot += 4
		}

		mem, err := img.slice(slot, arm.TrampolineSize)
		if err != nil {
			return malformed("PLT slot %d: %v", i, err)
		}

		got, err := img.Offset(r.Offset)
		if err != nil {
			return err
		}

		words, err := arm.ReadWords(mem, ld.order)
		if err != nil {
			return malformed("PLT slot %d: %v", i, err)
		}
		if target, ok := arm.DecodePLTEntry(img.MinVaddr+uint32(slot), words); ok {
			if target != r.Offset {
				ld.warn("PLT", "slot %d: loads from %#08x but relocation is for %#08x", i, target, r.Offset)
			}
		} else if _, ok := arm.DecodeTrampoline(words); !ok {
			ld.warn("PLT", "slot %d: unrecognised instructions at %v", i, slot)
		}

		name, err := syms.name(r.Sym(), ld.order)
		if err != nil {
			return err
		}

		e, ok := ld.lib.Lookup(name, cfg.Policy)
		if !ok {
			if cfg.Strict {
				return curated.Errorf(UnresolvedReference, name)
			}
			ld.warn("PLT", "slot %d: %s not exported", i, name)
			img.Report.Unresolved = append(img.Report.Unresolved, name)
			slot += arm.TrampolineSize
			continue
		}

		if ld.commit {
			_, err = arm.PatchTrampoline(mem, ld.order, e.Addr)
			if err != nil {
				return malformed("PLT slot %d: %v", i, err)
			}
			err = img.putWord(got, e.Addr)
		} else {
			err = img.checkWord(got)
		}
		if err != nil {
			return err
		}

		b := Binding{
			Name:   name,
			Kind:   BindPLT,
			Offset: slot,
			Value:  e.Addr,
		}
		ld.trace("PLT", "slot %d: bind %s", i, b)
		img.Report.Bindings = append(img.Report.Bindings, b)

		slot += arm.TrampolineSize
	}

	return nil
}
