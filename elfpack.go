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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/host"
	"github.com/jetsetilly/elfpack/loader"
	"github.com/jetsetilly/elfpack/logger"
	"github.com/jetsetilly/elfpack/modalflag"
	"github.com/jetsetilly/elfpack/paths"
	"github.com/jetsetilly/elfpack/prefs"
	"github.com/jetsetilly/elfpack/profile"
	"github.com/jetsetilly/elfpack/statsview"
	"github.com/jetsetilly/elfpack/storage"
	"github.com/jetsetilly/elfpack/version"
	"github.com/xyproto/env/v2"
)

// environment variables.
const (
	envRoot    = "ELFPACK_ROOT"
	envProfile = "ELFPACK_PROFILE"
	envLibrary = "ELFPACK_LIBRARY"
	envLog     = "ELFPACK_LOG"
)

func main() {
	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Println("\r")
		os.Exit(0)
	}()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("LOAD", "CHECK", "EXPORTS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "LOAD":
		err = load(md)

	case "CHECK":
		err = check(md)

	case "EXPORTS":
		err = listExports(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// flags shared by all modes.
type common struct {
	root     *string
	lib      *string
	prof     *string
	prefs    *string
	log      *bool
}

func addCommon(md *modalflag.Modes) *common {
	return &common{
		root:  md.AddString("root", env.Str(envRoot, "."), "host directory containing the device drives"),
		lib:   md.AddString("lib", env.Str(envLibrary), "URI of the firmware export table (default from profile)"),
		prof:  md.AddString("profile", env.Str(envProfile), "firmware profile (TOML)"),
		prefs: md.AddString("prefs", "", "preferences for this run (eg. \"loader.strict::true\")"),
		log:   md.AddBool("log", env.Bool(envLog), "echo log to stdout"),
	}
}

// setup the host for the command line.
func (c *common) setup(withLibrary bool) (*host.Host, error) {
	if *c.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	prof := profile.Default()
	if *c.prof != "" {
		var err error
		prof, err = profile.Load(*c.prof)
		if err != nil {
			return nil, err
		}
	}

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*c.prefs)
	lp, err := loader.NewPreferences(pth)
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return nil, err
	}
	if unused != "" {
		fmt.Printf("! unused preferences: %s\n", unused)
	}

	h, err := host.NewHost(prof, lp.Apply(loader.DefaultConfig()), storage.Dir{Root: *c.root})
	if err != nil {
		return nil, err
	}

	if withLibrary {
		lib := *c.lib
		if lib == "" {
			lib = prof.Library
		}
		err = h.LoadLibrary(lib)
		if err != nil {
			return nil, err
		}
	}

	return h, nil
}

func load(md *modalflag.Modes) error {
	md.NewMode()

	cmn := addCommon(md)
	params := md.AddString("params", "", "parameter string passed to every module")
	dump := md.AddString("dump", "", "write linked images to directory instead of running them")
	unload := md.AddBool("unload", true, "unload modules before exiting")
	viz := md.AddString("memviz", "", "write a graphviz file of the loaded images")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one module is required for %s mode", md)
	}

	if *stats {
		stop := statsview.Launch(os.Stdout)
		defer stop()
	}

	h, err := cmn.setup(true)
	if err != nil {
		return err
	}

	if *dump != "" {
		h.Loader().SetInvoker(&host.DumpInvoker{Dir: *dump, Unique: len(md.RemainingArgs()) > 1})
	}

	fmt.Printf("%s\n", h.Profile())

	// modules that fail are skipped
	var failed int
	for _, uri := range md.RemainingArgs() {
		status, handle := h.Load(uri, *params)
		if status != loader.StatusSuccess {
			fmt.Printf("! %s: %s\n", uri, status)
			failed++
			continue
		}

		img, _ := h.Image(handle)
		fmt.Printf("%s\n", img)
	}

	if *viz != "" {
		f, err := os.Create(*viz)
		if err != nil {
			return err
		}
		memviz.Map(f, h.Images())
		if err := f.Close(); err != nil {
			return err
		}
	}

	if *unload {
		h.UnloadAll()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed to load", failed, len(md.RemainingArgs()))
	}

	return nil
}

func check(md *modalflag.Modes) error {
	md.NewMode()

	cmn := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one module is required for %s mode", md)
	}

	h, err := cmn.setup(true)
	if err != nil {
		return err
	}

	var failed int
	for _, uri := range md.RemainingArgs() {
		rep, status := h.Check(uri)
		if status != loader.StatusSuccess {
			fmt.Printf("! %s: %s\n", uri, status)
			failed++
			continue
		}
		fmt.Printf("%s\n%s", uri, rep)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed", failed, len(md.RemainingArgs()))
	}

	return nil
}

func listExports(md *modalflag.Modes) error {
	md.NewMode()

	cmn := addCommon(md)
	prefix := md.AddString("prefix", "", "only list names with prefix")
	out := md.AddString("out", "", "write the listed entries as a new export table")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		*cmn.lib = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	h, err := cmn.setup(true)
	if err != nil {
		return err
	}

	entries, err := h.Library().Entries()
	if err != nil {
		return err
	}

	var b exports.Builder
	var n int
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, *prefix) {
			continue
		}
		b.Add(e.Name, e.Addr)
		n++
		fmt.Printf("%08x %s\n", e.Addr, e.Name)
	}
	fmt.Printf("%d of %d entries\n", n, len(entries))

	if *out != "" {
		err = os.WriteFile(*out, b.Bytes(h.Loader().Config().Order), 0o644)
		if err != nil {
			return err
		}
	}

	return nil
}
