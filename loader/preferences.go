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
	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/exports"
	"github.com/jetsetilly/elfpack/prefs"
)

// Preferences are the persisted user preferences for the loader.
type Preferences struct {
	dsk *prefs.Disk

	// unresolved references fail the load
	Strict prefs.Bool

	// first export table entry wins instead of the last
	FirstMatch prefs.Bool

	// link without writing to the image
	DryRun prefs.Bool

	// log every relocation
	Trace prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the file at pth, if it exists.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("loader.strict", &p.Strict)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("loader.firstMatch", &p.FirstMatch)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("loader.dryRun", &p.DryRun)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("loader.trace", &p.Trace)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all loader preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Strict.Set(false)
	p.FirstMatch.Set(false)
	p.DryRun.Set(false)
	p.Trace.Set(false)
}

// Load loader preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(true)
}

// Save current loader preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Apply the preferences to a copy of cfg.
func (p *Preferences) Apply(cfg Config) Config {
	cfg.Strict = p.Strict.Get().(bool)
	cfg.Commit = !p.DryRun.Get().(bool)
	cfg.Trace = p.Trace.Get().(bool)
	if p.FirstMatch.Get().(bool) {
		cfg.Policy = exports.FirstMatch
	} else {
		cfg.Policy = exports.LastMatch
	}
	return cfg
}
