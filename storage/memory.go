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

package storage

import (
	"github.com/jetsetilly/elfpack/curated"
)

// Memory is a Provider of named byte slices. The slices are not copied and
// should not be changed while a stream is open.
type Memory map[string][]byte

// Open implements the Provider interface.
func (m Memory) Open(uri string) (Stream, error) {
	data, ok := m[uri]
	if !ok {
		return nil, curated.Errorf(NotFound, uri)
	}
	return newStream(uri, data), nil
}
