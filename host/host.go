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
	"sort"
	"sync"

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/loader"
	"github.com/jetsetilly/elfpack/logger"
	"github.com/jetsetilly/elfpack/memory"
	"github.com/jetsetilly/elfpack/profile"
	"github.com/jetsetilly/elfpack/storage"
)

// Sentinel error patterns.
const (
	LibraryError  = "host: export library: %v"
	UnknownHandle = "host: unknown image handle (%v)"
)

// Reservation values. Each load attempt is given the next value.
const (
	FirstReserve uint32 = 0xa000 + ReserveStep
	ReserveStep  uint32 = 0x40
)

// Host drives the loader for a device.
type Host struct {
	crit sync.Mutex

	prof     profile.Profile
	provider storage.Provider
	spc      *memory.Space
	ldr      *loader.Loader
	lib      *exports.Table

	reserve uint32
	images  map[loader.Addr]*loader.Image
}

// NewHost is the preferred method of initialisation for the Host type. The
// loader configuration is adjusted for the profile.
func NewHost(prof profile.Profile, cfg loader.Config, provider storage.Provider) (*Host, error) {
	cfg, err := prof.Config(cfg)
	if err != nil {
		return nil, err
	}

	h := &Host{
		prof:     prof,
		provider: provider,
		spc:      memory.NewSpace(prof.Space()),
		reserve:  FirstReserve,
		images:   make(map[loader.Addr]*loader.Image),
	}

	h.ldr = loader.NewLoader(cfg, provider, h.spc)
	if prof.Fast.Size == 0 {
		h.ldr.SetFastMemory(nil)
	}

	return h, nil
}

// Loader returns the loader used by the host.
func (h *Host) Loader() *loader.Loader {
	return h.ldr
}

// Space returns the device memory.
func (h *Host) Space() *memory.Space {
	return h.spc
}

// Profile returns the device profile.
func (h *Host) Profile() profile.Profile {
	return h.prof
}

// LoadLibrary reads the export table from the URI. It replaces any previously
// loaded table.
func (h *Host) LoadLibrary(uri string) error {
	s, err := h.provider.Open(uri)
	if err != nil {
		return curated.Errorf(LibraryError, err)
	}
	defer s.Close()

	lib, err := exports.Read(s, h.ldr.Config().Order)
	if err != nil {
		return curated.Errorf(LibraryError, err)
	}

	h.crit.Lock()
	h.lib = lib
	h.crit.Unlock()

	logger.Logf(logger.Allow, "host", "%s: %d exports (%s)", uri, lib.Len(), s.Hash())

	return nil
}

// SetLibrary sets the export table.
func (h *Host) SetLibrary(lib *exports.Table) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.lib = lib
}

// Library returns the export table. Returns nil if no table has been loaded.
func (h *Host) Library() *exports.Table {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.lib
}

// Load a module. The returned handle is only valid if the status is
// loader.StatusSuccess. The reservation value advances for every call, whether
// the load succeeds or not.
func (h *Host) Load(uri string, params string) (loader.Status, loader.Addr) {
	h.crit.Lock()
	reserve := h.reserve
	h.reserve += ReserveStep
	lib := h.lib
	h.crit.Unlock()

	if lib == nil {
		logger.Logf(logger.Allow, "host", "%s: loading without an export table", uri)
	}

	img, err := h.ldr.Load(uri, params, lib, reserve)
	if err != nil {
		logger.Logf(logger.Allow, "host", "%s: %v", uri, err)
		return loader.StatusOf(err), 0
	}

	h.crit.Lock()
	h.images[img.Base] = img
	h.crit.Unlock()

	return loader.StatusSuccess, img.Base
}

// Check a module against the export table without starting it.
func (h *Host) Check(uri string) (*loader.Report, loader.Status) {
	rep, err := h.ldr.Check(uri, h.Library())
	if err != nil {
		logger.Logf(logger.Allow, "host", "%s: %v", uri, err)
		return nil, loader.StatusOf(err)
	}
	return rep, loader.StatusSuccess
}

// Image returns the image for the handle.
func (h *Host) Image(handle loader.Addr) (*loader.Image, bool) {
	h.crit.Lock()
	defer h.crit.Unlock()
	img, ok := h.images[handle]
	return img, ok
}

// Images returns the loaded images in order of base address.
func (h *Host) Images() []*loader.Image {
	h.crit.Lock()
	defer h.crit.Unlock()

	imgs := make([]*loader.Image, 0, len(h.images))
	for _, img := range h.images {
		imgs = append(imgs, img)
	}
	sort.Slice(imgs, func(i, j int) bool {
		return imgs[i].Base < imgs[j].Base
	})

	return imgs
}

// Unload the image with the handle.
func (h *Host) Unload(handle loader.Addr) error {
	h.crit.Lock()
	img, ok := h.images[handle]
	delete(h.images, handle)
	h.crit.Unlock()

	if !ok {
		return curated.Errorf(UnknownHandle, handle)
	}

	h.ldr.Unload(img)

	return nil
}

// UnloadAll unloads every image, most recently loaded first.
func (h *Host) UnloadAll() {
	imgs := h.Images()
	for i := len(imgs) - 1; i >= 0; i-- {
		_ = h.Unload(imgs[i].Base)
	}
}

// PhoneName returns the name of the handset.
func (h *Host) PhoneName() string {
	return h.prof.Phone
}

// Platform returns the name of the handset platform.
func (h *Host) Platform() string {
	return h.prof.Platform
}

// FirmwareMajor returns the major firmware version.
func (h *Host) FirmwareMajor() string {
	return h.prof.FirmwareMajor
}

// FirmwareMinor returns the minor firmware version.
func (h *Host) FirmwareMinor() string {
	return h.prof.FirmwareMinor
}
