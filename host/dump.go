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

package host

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/elfpack/loader"
	"github.com/jetsetilly/elfpack/logger"
	"github.com/jetsetilly/elfpack/paths"
)

// DumpFilename is the name of the file written by DumpInvoker.
const DumpFilename = "ELF_MEMORY_DUMP.bin"

// DumpInvoker writes the linked image to a file instead of running it.
type DumpInvoker struct {
	// directory to write to
	Dir string

	// use a unique filename for every dump rather than DumpFilename
	Unique bool

	// files written so far
	Written []string
}

// Invoke implements the loader.Invoker interface.
func (d *DumpInvoker) Invoke(img *loader.Image, entry loader.Addr, uri string, params string, reserve uint32) uint32 {
	fn := DumpFilename
	if d.Unique {
		fn = paths.UniqueFilename("ELF_MEMORY_DUMP", uri, "bin")
	}
	fn = filepath.Join(d.Dir, fn)

	err := os.WriteFile(fn, img.Bytes(), 0o644)
	if err != nil {
		logger.Logf(logger.Allow, "dump", "%s: %v", uri, err)
		return 1
	}

	d.Written = append(d.Written, fn)
	logger.Logf(logger.Allow, "dump", "%s: %d bytes at %v (entry %v, reserve %#x) written to %s",
		uri, img.Size, img.Base, entry, reserve, fn)

	return 0
}
