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

	"github.com/jetsetilly/elfpack/elf32"
)

// dynTable is indexed by dynamic tag. only the tags up to DT_BIND_NOW are
// recorded.
type dynTable [elf.DT_BIND_NOW + 1]uint32

// buildDynTable walks the dynamic entries in seg. The walk stops at the
// DT_NULL entry, which must occur inside seg.
func buildDynTable(seg []byte, order binary.ByteOrder) (dynTable, error) {
	var tab dynTable

	for off := 0; ; off += elf32.DynSize {
		if off+elf32.DynSize > len(seg) {
			return tab, malformed("dynamic segment is not terminated")
		}

		d := elf32.DecodeDyn(seg[off:], order)
		if d.Tag == int32(elf.DT_NULL) {
			return tab, nil
		}

		if d.Tag > 0 && d.Tag < int32(len(tab)) {
			tab[d.Tag] = d.Val
		}
	}
}

func (tab *dynTable) get(tag elf.DynTag) uint32 {
	return tab[tag]
}
