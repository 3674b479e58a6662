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

// Package endian adapts big-endian target data to the host.
//
// Every multi-byte field in a module file, in an export library and in a
// placed image is big-endian. On the device that is also the native order and
// reading a field is a plain load. On a little-endian host the native load is
// followed by a byte swap. The Adapter type does exactly that and implements
// the binary.ByteOrder interface so that it can be used anywhere the standard
// library accepts a byte order.
//
// For any input, an Adapter produces the same values as binary.BigEndian.
package endian

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// Target is the byte order of the target device.
var Target binary.ByteOrder = binary.BigEndian

// Adapter reads and writes target-order integers through native loads and
// stores, swapping bytes when the host order differs.
type Adapter struct {
	swap bool
}

// NewAdapter returns an Adapter for the host the program is running on.
func NewAdapter() Adapter {
	return Adapter{swap: !cpu.IsBigEndian}
}

// Swapping returns true if the Adapter swaps bytes.
func (a Adapter) Swapping() bool {
	return a.swap
}

func (a Adapter) String() string {
	if a.swap {
		return "Adapter(swap)"
	}
	return "Adapter(native)"
}

func (a Adapter) Uint16(b []byte) uint16 {
	v := binary.NativeEndian.Uint16(b)
	if a.swap {
		v = bits.ReverseBytes16(v)
	}
	return v
}

func (a Adapter) Uint32(b []byte) uint32 {
	v := binary.NativeEndian.Uint32(b)
	if a.swap {
		v = bits.ReverseBytes32(v)
	}
	return v
}

func (a Adapter) Uint64(b []byte) uint64 {
	v := binary.NativeEndian.Uint64(b)
	if a.swap {
		v = bits.ReverseBytes64(v)
	}
	return v
}

func (a Adapter) PutUint16(b []byte, v uint16) {
	if a.swap {
		v = bits.ReverseBytes16(v)
	}
	binary.NativeEndian.PutUint16(b, v)
}

func (a Adapter) PutUint32(b []byte, v uint32) {
	if a.swap {
		v = bits.ReverseBytes32(v)
	}
	binary.NativeEndian.PutUint32(b, v)
}

func (a Adapter) PutUint64(b []byte, v uint64) {
	if a.swap {
		v = bits.ReverseBytes64(v)
	}
	binary.NativeEndian.PutUint64(b, v)
}
