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
	"encoding/binary"

	"github.com/jetsetilly/elfpack/endian"
	"github.com/jetsetilly/elfpack/exports"
)

// Data shift thresholds for the firmware families. Export addresses above the
// threshold are data and the threshold is subtracted from them before use.
const (
	// EP1 and EG1 firmware
	DataShiftEP1 uint32 = 0x30000000

	// EA1 firmware
	DataShiftEA1 uint32 = 0xc0000000
)

// FunctionStubOffset is the offset from an ADS function import symbol to the
// word that receives the function address.
const FunctionStubOffset = 0x0c

// Config controls a Loader.
type Config struct {
	// export addresses above this value are data
	DataShift uint32

	// which export table entry wins when a name is exported more than once
	Policy exports.Policy

	// unresolved ABS32 and PLT references are errors rather than being logged
	Strict bool

	// when false no writes are made to the image during linking
	Commit bool

	// log every relocation and candidate symbol
	Trace bool

	// byte order adapter for target data
	Order binary.ByteOrder
}

// DefaultConfig returns the configuration for EP1 firmware.
func DefaultConfig() Config {
	return Config{
		DataShift: DataShiftEP1,
		Policy:    exports.LastMatch,
		Commit:    true,
		Order:     endian.NewAdapter(),
	}
}

// isData returns true if the export address is a data address.
func (cfg Config) isData(addr uint32) bool {
	return addr > cfg.DataShift
}

// value returns the value written for an absolute reference to addr.
func (cfg Config) value(addr uint32) uint32 {
	if cfg.isData(addr) {
		return addr - cfg.DataShift
	}
	return addr
}
