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
	"github.com/jetsetilly/elfpack/logger"
)

// Invoker transfers control to a loaded module. The return value is the
// module's result, which is logged.
type Invoker interface {
	Invoke(img *Image, entry Addr, uri string, params string, reserve uint32) uint32
}

// InvokerFunc allows a function to be used as an Invoker.
type InvokerFunc func(img *Image, entry Addr, uri string, params string, reserve uint32) uint32

// Invoke implements the Invoker interface.
func (f InvokerFunc) Invoke(img *Image, entry Addr, uri string, params string, reserve uint32) uint32 {
	return f(img, entry, uri, params, reserve)
}

// transfer control to the image's entry point.
func (ldr *Loader) transfer(img *Image, uri string, params string, reserve uint32) {
	if ldr.invoker == nil {
		ldr.log.Logf(logger.Allow, "ELF", "%s: no invoker, entry point %v not called", uri, img.Entry)
		return
	}

	ldr.log.Logf(logger.Allow, "ELF", "%s: calling %v (reserve %#x)", uri, img.Entry, reserve)
	r := ldr.invoker.Invoke(img, img.Entry, uri, params, reserve)
	ldr.log.Logf(logger.Allow, "ELF", "%s: returned %#x", uri, r)
}

// Unload releases the memory of an image. If the image was placed in fast
// memory the current contents of the shadow are restored to the fast memory.
// Unloading an image twice has no effect.
func (ldr *Loader) Unload(img *Image) {
	if img == nil {
		return
	}

	img.crit.Lock()
	defer img.crit.Unlock()

	if img.released {
		ldr.log.Logf(logger.Allow, "ELF", "%s: already unloaded", img.URI)
		return
	}
	img.released = true

	ldr.release(img)
	ldr.log.Logf(logger.Allow, "ELF", "%s: unloaded", img.URI)
}

// release the memory held by img. the released field should be set by the
// caller.
func (ldr *Loader) release(img *Image) {
	if img.shadow != nil {
		copy(img.block.Data, img.shadow.Data)
		if err := ldr.mem.Free(img.shadow); err != nil {
			ldr.log.Logf(logger.Allow, "IRAM", "%s: freeing shadow: %v", img.URI, err)
		}
		img.shadow = nil
		img.block = nil
		return
	}

	if img.block != nil {
		if err := ldr.mem.Free(img.block); err != nil {
			ldr.log.Logf(logger.Allow, "ELF", "%s: freeing image: %v", img.URI, err)
		}
		img.block = nil
	}
}
