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
	"fmt"
	"strings"
)

// BindingKind says how an import was bound.
type BindingKind int

// List of valid BindingKind values.
const (
	// ADS data import. the shifted address replaces the symbol word
	BindData BindingKind = iota

	// ADS function import. the address is written into the stub
	BindFunction

	// GCC R_ARM_ABS32 relocation
	BindAbsolute

	// GCC procedure linkage table slot
	BindPLT
)

func (k BindingKind) String() string {
	switch k {
	case BindData:
		return "data"
	case BindFunction:
		return "function"
	case BindAbsolute:
		return "abs32"
	case BindPLT:
		return "plt"
	}
	return "unknown"
}

// Binding is a single import bound to the export table.
type Binding struct {
	Name string
	Kind BindingKind

	// where in the image the value was (or would have been) written
	Offset Offset
	Value  uint32
}

func (b Binding) String() string {
	return fmt.Sprintf("%-8s %v %08x %s", b.Kind, b.Offset, b.Value, b.Name)
}

// Report is the summary of a link.
type Report struct {
	Flavor Flavor

	// number of base relative relocations applied
	Relocated int

	// number of relocation entries of unsupported type
	Unknown int

	Bindings []Binding

	// names that could not be found in the export table
	Unresolved []string

	// false if this was a dry run
	Committed bool
}

func (r Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("flavor: %v\n", r.Flavor))
	s.WriteString(fmt.Sprintf("committed: %v\n", r.Committed))
	s.WriteString(fmt.Sprintf("relocated: %d\n", r.Relocated))
	if r.Unknown > 0 {
		s.WriteString(fmt.Sprintf("unknown relocations: %d\n", r.Unknown))
	}
	s.WriteString(fmt.Sprintf("bindings: %d\n", len(r.Bindings)))
	for _, b := range r.Bindings {
		s.WriteString(fmt.Sprintf("  %s\n", b))
	}
	if len(r.Unresolved) > 0 {
		s.WriteString(fmt.Sprintf("unresolved: %d\n", len(r.Unresolved)))
		for _, n := range r.Unresolved {
			s.WriteString(fmt.Sprintf("  %s\n", n))
		}
	}
	return s.String()
}

// Bound returns the binding for name and whether it exists.
func (r Report) Bound(name string) (Binding, bool) {
	for _, b := range r.Bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}
