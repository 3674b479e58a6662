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
	"io"

	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/elf32"
	"github.com/jetsetilly/elfpack/endian"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/logger"
	"github.com/jetsetilly/elfpack/memory"
	"github.com/jetsetilly/elfpack/storage"
)

// Loader places, links and starts modules. Loads must be made one at a time.
type Loader struct {
	cfg Config

	storage storage.Provider
	mem     memory.Allocator
	fast    memory.FastMemory
	invoker Invoker

	log *logger.Logger
}

// NewLoader is the preferred method of initialisation for the Loader type. If
// the allocator also implements memory.FastMemory then it is used for modules
// that request fast memory.
func NewLoader(cfg Config, provider storage.Provider, mem memory.Allocator) *Loader {
	if cfg.Order == nil {
		cfg.Order = endian.NewAdapter()
	}

	ldr := &Loader{
		cfg:     cfg,
		storage: provider,
		mem:     mem,
		log:     logger.Central(),
	}

	if f, ok := mem.(memory.FastMemory); ok {
		ldr.fast = f
	}

	return ldr
}

// SetFastMemory sets the fast memory capability. A nil value means modules
// requesting fast memory are placed in RAM.
func (ldr *Loader) SetFastMemory(fast memory.FastMemory) {
	ldr.fast = fast
}

// SetInvoker sets how control is transferred to a loaded module.
func (ldr *Loader) SetInvoker(inv Invoker) {
	ldr.invoker = inv
}

// SetLogger sets the logger used for diagnostics.
func (ldr *Loader) SetLogger(log *logger.Logger) {
	ldr.log = log
}

// Config returns a copy of the loader configuration.
func (ldr *Loader) Config() Config {
	return ldr.cfg
}

// AllowLogging implements the logger.Permission interface. Per-entry trace
// output is only logged when the Trace field of Config is true.
func (ldr *Loader) AllowLogging() bool {
	return ldr.cfg.Trace
}

// Load a module from the URI, link it against the export table and transfer
// control to it. The params and reserve values are passed to the module's
// entry point.
//
// If Commit in the loader's Config is false, the image is placed and checked
// but not linked or started.
func (ldr *Loader) Load(uri string, params string, lib *exports.Table, reserve uint32) (*Image, error) {
	img, err := ldr.link(uri, lib, ldr.cfg.Commit)
	if err != nil {
		ldr.log.Logf(logger.Allow, "ELF", "%s: %v", uri, err)
		return nil, err
	}

	if !img.Report.Committed {
		ldr.log.Logf(logger.Allow, "ELF", "%s: dry run, not starting", uri)
		return img, nil
	}

	ldr.transfer(img, uri, params, reserve)

	return img, nil
}

// Check runs the loader without writing to the image and without starting
// it. The image is unloaded before returning. Useful for checking that a
// module's imports can be satisfied.
func (ldr *Loader) Check(uri string, lib *exports.Table) (*Report, error) {
	img, err := ldr.link(uri, lib, false)
	if err != nil {
		return nil, err
	}
	rep := img.Report
	ldr.Unload(img)
	return &rep, nil
}

// link places and links a module. On error, everything acquired by the load
// has been released.
func (ldr *Loader) link(uri string, lib *exports.Table, commit bool) (*Image, error) {
	ld := &load{
		ldr:    ldr,
		uri:    uri,
		lib:    lib,
		commit: commit,
		order:  ldr.cfg.Order,
	}
	defer ld.cleanup()

	var err error

	ld.stream, err = ldr.storage.Open(uri)
	if err != nil {
		return nil, curated.Errorf(OpenFailed, uri, err)
	}

	err = ld.readHeader()
	if err != nil {
		return nil, err
	}

	err = ld.readProgHeaders()
	if err != nil {
		return nil, err
	}

	err = ld.place()
	if err != nil {
		ld.abandon()
		return nil, err
	}

	err = ld.flavour.link(ld)
	if err != nil {
		ld.abandon()
		return nil, err
	}

	ld.img.Report.Committed = commit

	ldr.log.Logf(logger.Allow, "ELF", "%s: %s", uri, ld.img)
	ldr.log.Logf(logger.Allow, "ELF", "%s: %d relocations, %d bindings, %d unresolved",
		uri, ld.img.Report.Relocated, len(ld.img.Report.Bindings), len(ld.img.Report.Unresolved))

	return ld.img, nil
}

// load is the state of a single load operation.
type load struct {
	ldr    *Loader
	uri    string
	lib    *exports.Table
	commit bool
	order  binary.ByteOrder

	stream  storage.Stream
	hdr     elf32.Header
	flavour flavour
	progs   []elf32.ProgHeader

	img *Image

	// scratch allocations freed at the end of the load
	scratch []*memory.Block
}

// cleanup releases the stream and the scratch allocations.
func (ld *load) cleanup() {
	for _, blk := range ld.scratch {
		if err := ld.ldr.mem.Free(blk); err != nil {
			ld.ldr.log.Logf(logger.Allow, "ELF", "freeing scratch memory: %v", err)
		}
	}
	ld.scratch = nil

	if ld.stream != nil {
		if err := ld.stream.Close(); err != nil {
			ld.ldr.log.Logf(logger.Allow, "ELF", "closing %s: %v", ld.uri, err)
		}
		ld.stream = nil
	}
}

// abandon releases a partially loaded image.
func (ld *load) abandon() {
	if ld.img == nil {
		return
	}
	ld.img.released = true
	ld.ldr.release(ld.img)
	ld.img = nil
}

// trace logs with the loader's permission.
func (ld *load) trace(tag string, detail string, args ...any) {
	ld.ldr.log.Logf(ld.ldr, tag, detail, args...)
}

// warn logs unconditionally.
func (ld *load) warn(tag string, detail string, args ...any) {
	ld.ldr.log.Logf(logger.Allow, tag, detail, args...)
}

func (ld *load) seek(offset uint64) error {
	_, err := ld.stream.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return curated.Errorf(SeekFailed, err)
	}
	return nil
}

func (ld *load) read(b []byte) error {
	_, err := io.ReadFull(ld.stream, b)
	if err != nil {
		return curated.Errorf(ReadFailed, err)
	}
	return nil
}

// readScratch reads size bytes at offset in the file into a scratch
// allocation.
func (ld *load) readScratch(offset uint32, size uint32) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	blk, err := ld.ldr.mem.Allocate(size)
	if err != nil {
		return nil, curated.Errorf(AllocationFailed, err)
	}
	ld.scratch = append(ld.scratch, blk)

	err = ld.seek(uint64(offset))
	if err != nil {
		return nil, err
	}

	err = ld.read(blk.Data)
	if err != nil {
		return nil, err
	}

	return blk.Data, nil
}

func (ld *load) readHeader() error {
	var err error

	ld.hdr, err = elf32.ReadHeader(ld.stream, ld.order)
	if err != nil {
		return curated.Errorf(ReadHeaderFailed, err)
	}

	err = ld.hdr.Validate()
	if err != nil {
		return curated.Errorf(MalformedInput, err)
	}

	flavor, err := flavorOf(ld.hdr.Type)
	if err != nil {
		return err
	}

	switch flavor {
	case FlavorADS:
		ld.flavour = adsFlavour{}
	case FlavorGCC:
		ld.flavour = gccFlavour{}
	}

	return nil
}

func (ld *load) readProgHeaders() error {
	ld.progs = make([]elf32.ProgHeader, 0, ld.hdr.Phnum)

	for i := 0; i < int(ld.hdr.Phnum); i++ {
		err := ld.seek(uint64(ld.hdr.Phoff) + uint64(i)*uint64(ld.hdr.Phentsize))
		if err != nil {
			return err
		}

		p, err := elf32.ReadProgHeader(ld.stream, ld.order)
		if err != nil {
			return curated.Errorf(ReadFailed, err)
		}

		ld.trace("ELF", "program header %d: %v", i, p)
		ld.progs = append(ld.progs, p)
	}

	return nil
}
