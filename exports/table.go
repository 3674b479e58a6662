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
	"fmt"
	"io"

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
)

// Sentinel error patterns.
const (
	Malformed = "exports: %v"
	ReadError = "exports: read: %v"
)

// size of an entry in the table.
const entrySize = 8

// Policy decides which entry is returned when a name appears more than once.
type Policy int

// List of valid Policy values.
const (
	LastMatch Policy = iota
	FirstMatch
)

func (p Policy) String() string {
	switch p {
	case LastMatch:
		return "last match"
	case FirstMatch:
		return "first match"
	}
	return fmt.Sprintf("unknown policy (%d)", int(p))
}

// Entry is a single name/address pair.
type Entry struct {
	Name string
	Addr uint32
}

// Table is a parsed export table. The zero value is an empty table.
type Table struct {
	order   binary.ByteOrder
	count   uint32
	entries []byte
	names   []byte
}

// Parse the export table in data. The data is not copied.
func Parse(data []byte, order binary.ByteOrder) (*Table, error) {
	if len(data) < 4 {
		return nil, curated.Errorf(Malformed, "table too short")
	}

	count := order.Uint32(data)
	end := 4 + uint64(count)*entrySize
	if end > uint64(len(data)) {
		return nil, curated.Errorf(Malformed, fmt.Sprintf("count of %d entries exceeds table size", count))
	}

	return &Table{
		order:   order,
		count:   count,
		entries: data[4:end],
		names:   data[end:],
	}, nil
}

// Read the export table from r.
func Read(r io.Reader, order binary.ByteOrder) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}
	return Parse(data, order)
}

// Len returns the number of entries in the table, including unusable entries.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	return int(tab.count)
}

func (tab *Table) raw(i uint32) (nameOff uint32, addr uint32) {
	e := tab.entries[i*entrySize:]
	return tab.order.Uint32(e), tab.order.Uint32(e[4:])
}

// match returns true if the name at offset in the names area is equal to
// name. out of range offsets and unterminated names never match.
func (tab *Table) match(off uint32, name string) bool {
	end := uint64(off) + uint64(len(name))
	if end >= uint64(len(tab.names)) {
		return false
	}
	if tab.names[end] != 0x00 {
		return false
	}
	return string(tab.names[off:end]) == name
}

// Lookup returns the entry for name. Every entry is compared, the policy
// decides which of several matching entries is returned.
func (tab *Table) Lookup(name string, policy Policy) (Entry, bool) {
	if tab == nil {
		return Entry{}, false
	}

	var found Entry
	var ok bool

	for i := uint32(0); i < tab.count; i++ {
		off, addr := tab.raw(i)
		if !tab.match(off, name) {
			continue
		}
		if policy == FirstMatch && ok {
			continue
		}
		found = Entry{Name: name, Addr: addr}
		ok = true
	}

	return found, ok
}

// Entry returns entry i of the table.
func (tab *Table) Entry(i int) (Entry, error) {
	if i < 0 || i >= tab.Len() {
		return Entry{}, curated.Errorf(Malformed, fmt.Sprintf("entry %d out of range", i))
	}
	off, addr := tab.raw(uint32(i))
	name, err := elf32.CString(tab.names, off)
	if err != nil {
		return Entry{}, curated.Errorf(Malformed, fmt.Sprintf("entry %d: %v", i, err))
	}
	return Entry{Name: name, Addr: addr}, nil
}

// Entries returns all usable entries in table order. The error is for the
// first unusable entry, if any.
func (tab *Table) Entries() ([]Entry, error) {
	var firstErr error
	ents := make([]Entry, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		e, err := tab.Entry(i)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ents = append(ents, e)
	}
	return ents, firstErr
}
