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

package loader_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jetsetilly/elfpack/arm"
	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/loader"
	"github.com/jetsetilly/elfpack/logger"
	"github.com/jetsetilly/elfpack/memory"
	"github.com/jetsetilly/elfpack/storage"
	"github.com/jetsetilly/elfpack/test"
)

// newLoader returns a loader for the files using a fresh address space. The
// loader logs to its own logger.
func newLoader(t *testing.T, cfg loader.Config, files storage.Memory) (*loader.Loader, *memory.Space, *logger.Logger) {
	t.Helper()
	spc := memory.NewSpace(spaceConfig)
	log := logger.NewLogger(1000)
	ldr := loader.NewLoader(cfg, files, spc)
	ldr.SetLogger(log)
	return ldr, spc, log
}

func word(t *testing.T, img *loader.Image, off loader.Offset) uint32 {
	t.Helper()
	w, err := img.Word(off)
	test.DemandSuccess(t, err)
	return w
}

func logged(log *logger.Logger, tag string, detail string) bool {
	for _, e := range log.Find(tag) {
		if strings.Contains(e.Detail, detail) {
			return true
		}
	}
	return false
}

func TestPlacement(t *testing.T) {
	m := adsModule{}
	ldr, spc, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{"/a/Elf/ads.elf": m.build()})

	img, err := ldr.Load("/a/Elf/ads.elf", "", nil, 0)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, img.Flavor, loader.FlavorADS)
	test.ExpectEquality(t, img.Base, loader.Addr(spaceConfig.HeapOrigin))
	test.ExpectEquality(t, img.MinVaddr, uint32(adsVaddr))
	test.ExpectEquality(t, img.Size, uint32(adsMemsz))
	test.ExpectEquality(t, img.Entry, img.Base+0x2c)
	test.ExpectFailure(t, img.InFastMemory())

	// the scratch memory for the dynamic segment and the symbol tables has
	// been released
	test.ExpectEquality(t, spc.Live(), 1)

	// with no export table nothing is bound so only the relocations differ
	// from the file content
	b := img.Bytes()
	test.DemandEquality(t, len(b), adsMemsz)
	seg := m.segment()
	test.ExpectSuccess(t, bytes.Equal(b[0x08:adsFilesz], seg[0x08:]))
	test.ExpectSuccess(t, bytes.Equal(b[adsFilesz:], make([]byte, adsMemsz-adsFilesz)))

	ldr.Unload(img)
	test.ExpectSuccess(t, img.Released())
	test.ExpectEquality(t, spc.Live(), 0)
	test.ExpectEquality(t, img.Bytes() == nil, true)
}

func TestADS(t *testing.T) {
	ldr, _, log := newLoader(t, loader.DefaultConfig(), storage.Memory{"ads.elf": adsModule{}.build()})

	img, err := ldr.Load("ads.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	delta := uint32(img.Base) - adsVaddr

	// base relocations
	test.ExpectEquality(t, word(t, img, 0x00), 0x1020+delta)
	test.ExpectEquality(t, word(t, img, 0x04), 0x1030+delta)

	// unsupported relocation is left alone
	test.ExpectEquality(t, word(t, img, 0x08), uint32(0xcafef00d))
	test.ExpectSuccess(t, logged(log, "ELF", "unsupported relocation"))

	// function address is written to the stub
	test.ExpectEquality(t, word(t, img, 0x10), uint32(0xe1a00000))
	test.ExpectEquality(t, word(t, img, 0x1c), uint32(0x10080001))

	// data address is shifted and written over the symbol
	test.ExpectEquality(t, word(t, img, 0x20), uint32(0x100))

	// local and sized symbols are not imports
	test.ExpectEquality(t, word(t, img, 0x24), uint32(0xe12fff1e))
	test.ExpectEquality(t, word(t, img, 0x28), uint32(0x00000004))

	rep := img.Report
	test.ExpectEquality(t, rep.Flavor, loader.FlavorADS)
	test.ExpectEquality(t, rep.Relocated, 2)
	test.ExpectEquality(t, rep.Unknown, 1)
	test.ExpectEquality(t, rep.Committed, true)
	test.ExpectNoDiff(t, rep.Bindings, []loader.Binding{
		{Name: "printf", Kind: loader.BindFunction, Offset: 0x1c, Value: 0x10080001},
		{Name: "dataX", Kind: loader.BindData, Offset: 0x20, Value: 0x100},
	})
	test.ExpectEquality(t, len(rep.Unresolved), 0)
}

func TestADSDuplicateExports(t *testing.T) {
	var b exports.Builder
	b.Add("printf", 0x10000001).Add("printf", 0x10000002)
	lib := b.Table(order)

	files := storage.Memory{"ads.elf": adsModule{}.build()}

	ldr, _, _ := newLoader(t, loader.DefaultConfig(), files)
	img, err := ldr.Load("ads.elf", "", lib, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, word(t, img, 0x1c), uint32(0x10000002))

	cfg := loader.DefaultConfig()
	cfg.Policy = exports.FirstMatch
	ldr, _, _ = newLoader(t, cfg, files)
	img, err = ldr.Load("ads.elf", "", lib, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, word(t, img, 0x1c), uint32(0x10000001))
}

func TestDataShift(t *testing.T) {
	var b exports.Builder
	b.Add("dataX", 0xc0000010).Add("printf", 0x30000100)
	lib := b.Table(order)

	// with the EA1 threshold 0x30000100 is a function address
	cfg := loader.DefaultConfig()
	cfg.DataShift = loader.DataShiftEA1
	ldr, _, _ := newLoader(t, cfg, storage.Memory{"ads.elf": adsModule{}.build()})

	img, err := ldr.Load("ads.elf", "", lib, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, word(t, img, 0x1c), uint32(0x30000100))
	test.ExpectEquality(t, word(t, img, 0x20), uint32(0x10))
}

func checkGCC(t *testing.T, img *loader.Image, slot0 loader.Offset, slot1 loader.Offset) {
	t.Helper()

	test.ExpectEquality(t, word(t, img, 0x120), uint32(img.Base)+0x40)
	test.ExpectEquality(t, word(t, img, 0x124), uint32(0x200))

	// unresolved ABS32 falls back to the image base
	test.ExpectEquality(t, word(t, img, 0x128), uint32(img.Base))

	test.ExpectEquality(t, word(t, img, slot0), arm.LdrIPPC)
	test.ExpectEquality(t, word(t, img, slot0+4), arm.BxIP)
	test.ExpectEquality(t, word(t, img, slot0+8), uint32(0x10080001))
	test.ExpectEquality(t, word(t, img, gccGOT+0x0c), uint32(0x10080001))

	test.ExpectEquality(t, word(t, img, slot1), arm.LdrIPPC)
	test.ExpectEquality(t, word(t, img, slot1+4), arm.BxIP)
	test.ExpectEquality(t, word(t, img, slot1+8), uint32(0x10090000))
	test.ExpectEquality(t, word(t, img, gccGOT+0x10), uint32(0x10090000))

	rep := img.Report
	test.ExpectEquality(t, rep.Flavor, loader.FlavorGCC)
	test.ExpectEquality(t, rep.Relocated, 1)
	test.ExpectNoDiff(t, rep.Bindings, []loader.Binding{
		{Name: "dataY", Kind: loader.BindAbsolute, Offset: 0x124, Value: 0x200},
		{Name: "printf", Kind: loader.BindPLT, Offset: slot0, Value: 0x10080001},
		{Name: "strlen", Kind: loader.BindPLT, Offset: slot1, Value: 0x10090000},
	})
	test.ExpectNoDiff(t, rep.Unresolved, []string{"missing"})
}

func TestGCC(t *testing.T) {
	ldr, _, log := newLoader(t, loader.DefaultConfig(), storage.Memory{"gcc.elf": gccModule{}.build()})

	img, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Flavor, loader.FlavorGCC)
	test.ExpectEquality(t, img.Size, uint32(gccMemsz))
	test.ExpectEquality(t, img.Entry, img.Base)

	checkGCC(t, img, gccSlot0, gccSlot1)

	// the PLT slots in the test module are well formed
	test.ExpectFailure(t, logged(log, "PLT", "loads from"))
	test.ExpectFailure(t, logged(log, "PLT", "unrecognised"))
	test.ExpectSuccess(t, logged(log, "ELF", "missing not exported"))
}

func TestGCCWithoutVeneers(t *testing.T) {
	ldr, _, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{"gcc.elf": gccModule{noVeneer: true}.build()})

	img, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	slot0 := loader.Offset(gccPLT + arm.PLTHeaderWords*4)
	checkGCC(t, img, slot0, slot0+arm.TrampolineSize)
}

func TestStrict(t *testing.T) {
	cfg := loader.DefaultConfig()
	cfg.Strict = true
	ldr, spc, _ := newLoader(t, cfg, storage.Memory{
		"gcc.elf": gccModule{}.build(),
		"ads.elf": adsModule{}.build(),
	})

	_, err := ldr.Load("gcc.elf", "", library(), 0)
	test.ExpectSuccess(t, curated.Is(err, loader.UnresolvedReference))
	test.ExpectEquality(t, loader.StatusOf(err), loader.StatusUnresolvedReference)
	test.ExpectEquality(t, spc.Live(), 0)

	// symbols in ADS modules that are not exported are the module's own
	img, err := ldr.Load("ads.elf", "", library(), 0)
	test.ExpectSuccess(t, err)
	ldr.Unload(img)
	test.ExpectEquality(t, spc.Live(), 0)
}

func TestDryRun(t *testing.T) {
	for _, m := range []struct {
		name string
		data []byte
	}{
		{name: "ads.elf", data: adsModule{}.build()},
		{name: "gcc.elf", data: gccModule{}.build()},
	} {
		cfg := loader.DefaultConfig()
		ldr, _, _ := newLoader(t, cfg, storage.Memory{m.name: m.data})
		committed, err := ldr.Load(m.name, "", library(), 0)
		test.DemandSuccess(t, err, m.name)

		cfg.Commit = false
		ldr, spc, _ := newLoader(t, cfg, storage.Memory{m.name: m.data})

		var called bool
		ldr.SetInvoker(loader.InvokerFunc(func(_ *loader.Image, _ loader.Addr, _ string, _ string, _ uint32) uint32 {
			called = true
			return 0
		}))

		img, err := ldr.Load(m.name, "", library(), 0)
		test.DemandSuccess(t, err, m.name)
		test.ExpectFailure(t, called, m.name)
		test.ExpectFailure(t, img.Report.Committed, m.name)

		// a dry run reports the same work without doing it
		test.ExpectNoDiff(t, img.Report.Bindings, committed.Report.Bindings)
		test.ExpectNoDiff(t, img.Report.Unresolved, committed.Report.Unresolved)
		test.ExpectEquality(t, img.Report.Relocated, committed.Report.Relocated, m.name)

		// the image is as it is in the file
		ldr.Unload(img)
		test.ExpectEquality(t, spc.Live(), 0, m.name)

		rep, err := ldr.Check(m.name, library())
		test.DemandSuccess(t, err, m.name)
		test.ExpectEquality(t, len(rep.Bindings), len(committed.Report.Bindings), m.name)
		test.ExpectEquality(t, spc.Live(), 0, m.name)
	}
}

func TestCheckFlavor(t *testing.T) {
	var zero loader.Report
	test.ExpectEquality(t, zero.Flavor, loader.FlavorUnknown)
	test.ExpectEquality(t, zero.Flavor.String(), "unknown")

	for _, m := range []struct {
		name   string
		data   []byte
		flavor loader.Flavor
	}{
		{name: "ads.elf", data: adsModule{}.build(), flavor: loader.FlavorADS},
		{name: "gcc.elf", data: gccModule{}.build(), flavor: loader.FlavorGCC},
	} {
		ldr, _, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{m.name: m.data})

		rep, err := ldr.Check(m.name, library())
		test.DemandSuccess(t, err, m.name)
		test.ExpectEquality(t, rep.Flavor, m.flavor)
		test.ExpectSuccess(t, strings.Contains(rep.String(), fmt.Sprintf("flavor: %v", m.flavor)), m.name)
	}
}

func TestDryRunDoesNotWrite(t *testing.T) {
	m := gccModule{}
	data, _ := m.segment()

	cfg := loader.DefaultConfig()
	cfg.Commit = false
	ldr, _, _ := newLoader(t, cfg, storage.Memory{"gcc.elf": m.build()})

	img, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	b := img.Bytes()
	test.ExpectSuccess(t, bytes.Equal(b[:gccFilesz], data))
	test.ExpectSuccess(t, bytes.Equal(b[gccFilesz:], make([]byte, gccMemsz-gccFilesz)))
}

func TestEntry(t *testing.T) {
	ldr, _, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{"/a/Elf/ads.elf": adsModule{}.build()})

	type call struct {
		Entry   loader.Addr
		URI     string
		Params  string
		Reserve uint32
	}
	var calls []call

	ldr.SetInvoker(loader.InvokerFunc(func(img *loader.Image, entry loader.Addr, uri string, params string, reserve uint32) uint32 {
		calls = append(calls, call{Entry: entry, URI: uri, Params: params, Reserve: reserve})

		// the module is linked before it is called
		w, err := img.Word(0x1c)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, w, uint32(0x10080001))
		return 0
	}))

	img, err := ldr.Load("/a/Elf/ads.elf", "-x", library(), 0xa040)
	test.DemandSuccess(t, err)
	test.ExpectNoDiff(t, calls, []call{
		{Entry: img.Base + 0x2c, URI: "/a/Elf/ads.elf", Params: "-x", Reserve: 0xa040},
	})
}

func TestUnloadTwice(t *testing.T) {
	ldr, spc, log := newLoader(t, loader.DefaultConfig(), storage.Memory{"ads.elf": adsModule{}.build()})

	img, err := ldr.Load("ads.elf", "", nil, 0)
	test.DemandSuccess(t, err)

	ldr.Unload(img)
	ldr.Unload(img)
	ldr.Unload(nil)
	test.ExpectEquality(t, spc.Live(), 0)
	test.ExpectSuccess(t, logged(log, "ELF", "already unloaded"))

	_, err = img.Word(0)
	test.ExpectFailure(t, err)
}

func TestFastMemory(t *testing.T) {
	ldr, spc, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{
		"ads.elf": adsModule{fastAddr: spaceConfig.FastOrigin + 0x10}.build(),
	})

	view, err := spc.FastRegion(spaceConfig.FastOrigin, spaceConfig.FastSize)
	test.DemandSuccess(t, err)
	for i := range view.Data {
		view.Data[i] = byte(i)
	}
	before := bytes.Clone(view.Data)

	img, err := ldr.Load("ads.elf", "", library(), 0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, img.InFastMemory())
	test.ExpectEquality(t, img.Base, loader.Addr(spaceConfig.FastOrigin+0x10))

	// the shadow is the only RAM allocation
	test.ExpectEquality(t, spc.Live(), 1)

	// relocated against the fast memory address
	test.ExpectEquality(t, word(t, img, 0x00), uint32(img.Base)+0x20)

	// the image is in fast memory and the rest of fast memory is untouched
	test.ExpectEquality(t, order.Uint32(view.Data[0x10+0x1c:]), uint32(0x10080001))
	test.ExpectSuccess(t, bytes.Equal(view.Data[:0x10], before[:0x10]))
	test.ExpectSuccess(t, bytes.Equal(view.Data[0x10+adsMemsz:], before[0x10+adsMemsz:]))

	ldr.Unload(img)
	test.ExpectSuccess(t, bytes.Equal(view.Data, before))
	test.ExpectEquality(t, spc.Live(), 0)
}

func TestFastMemoryUnavailable(t *testing.T) {
	files := storage.Memory{"ads.elf": adsModule{fastAddr: spaceConfig.FastOrigin}.build()}
	ldr, spc, log := newLoader(t, loader.DefaultConfig(), files)
	ldr.SetFastMemory(nil)

	img, err := ldr.Load("ads.elf", "", library(), 0)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, img.InFastMemory())
	test.ExpectEquality(t, img.Base, loader.Addr(spaceConfig.HeapOrigin))
	test.ExpectSuccess(t, logged(log, "IRAM", "none is available"))
	ldr.Unload(img)
	test.ExpectEquality(t, spc.Live(), 0)

	// fast memory request outside of the fast memory region
	files["ads.elf"] = adsModule{fastAddr: spaceConfig.FastOrigin + spaceConfig.FastSize - 4}.build()
	ldr, spc, _ = newLoader(t, loader.DefaultConfig(), files)
	_, err = ldr.Load("ads.elf", "", library(), 0)
	test.ExpectEquality(t, loader.StatusOf(err), loader.StatusAllocationFailed)
	test.ExpectEquality(t, spc.Live(), 0)
}

func TestByteOrderAdapter(t *testing.T) {
	files := storage.Memory{"gcc.elf": gccModule{}.build()}

	ldr, _, _ := newLoader(t, loader.DefaultConfig(), files)
	a, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	cfg := loader.DefaultConfig()
	cfg.Order = order
	ldr, _, _ = newLoader(t, cfg, files)
	b, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, bytes.Equal(a.Bytes(), b.Bytes()))
	test.ExpectNoDiff(t, a.Report, b.Report)
}

func TestSequentialLoads(t *testing.T) {
	ldr, spc, _ := newLoader(t, loader.DefaultConfig(), storage.Memory{
		"ads.elf": adsModule{}.build(),
		"gcc.elf": gccModule{}.build(),
	})

	a, err := ldr.Load("ads.elf", "", library(), 0)
	test.DemandSuccess(t, err)
	b, err := ldr.Load("gcc.elf", "", library(), 0)
	test.DemandSuccess(t, err)

	test.ExpectInequality(t, a.Base, b.Base)
	test.ExpectEquality(t, spc.Live(), 2)

	// the second image is linked at its own base
	test.ExpectEquality(t, word(t, b, 0x128), uint32(b.Base))

	ldr.Unload(a)
	ldr.Unload(b)
	test.ExpectEquality(t, spc.Live(), 0)
}
