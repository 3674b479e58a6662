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

package exports

import (
	"encoding/binary"
)

// Builder creates export tables.
type Builder struct {
	entries []Entry
}

// Add an entry to the table. Duplicate names are allowed.
func (b *Builder) Add(name string, addr uint32) *Builder {
	b.entries = append(b.entries, Entry{Name: name, Addr: addr})
	return b
}

// Bytes returns the table in the binary format. Identical names share the
// same name offset.
func (b *Builder) Bytes(order binary.ByteOrder) []byte {
	offsets := make(map[string]uint32)
	var names []byte
	for _, e := range b.entries {
		if _, ok := offsets[e.Name]; ok {
			continue
		}
		offsets[e.Name] = uint32(len(names))
		names = append(names, e.Name...)
		names = append(names, 0x00)
	}

	data := make([]byte, 4+len(b.entries)*entrySize, 4+len(b.entries)*entrySize+len(names))
	order.PutUint32(data, uint32(len(b.entries)))
	for i, e := range b.entries {
		order.PutUint32(data[4+i*entrySize:], offsets[e.Name])
		order.PutUint32(data[8+i*entrySize:], e.Addr)
	}

	return append(data, names...)
}

// Table returns the built table, parsed.
func (b *Builder) Table(order binary.ByteOrder) *Table {
	tab, err := Parse(b.Bytes(order), order)
	if err != nil {
		panic(err)
	}
	return tab
}
