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

package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/elfpack/curated"
	"github.com/jetsetilly/elfpack/loader"
	"github.com/jetsetilly/elfpack/memory"
)

// Sentinel error patterns.
const (
	ProfileError  = "profile: %v"
	UnknownFamily = "profile: unknown firmware family (%s)"
)

// List of firmware families.
const (
	FamilyEP1 = "EP1"
	FamilyEG1 = "EG1"
	FamilyEA1 = "EA1"
)

// Window is a region of device memory.
type Window struct {
	Origin uint32 `toml:"origin"`
	Size   uint32 `toml:"size"`
}

func (w Window) String() string {
	if w.Size == 0 {
		return "none"
	}
	return fmt.Sprintf("%#08x to %#08x", w.Origin, uint64(w.Origin)+uint64(w.Size)-1)
}

// Profile describes a handset.
type Profile struct {
	Phone         string `toml:"phone"`
	Platform      string `toml:"platform"`
	FirmwareMajor string `toml:"firmware-major"`
	FirmwareMinor string `toml:"firmware-minor"`
	Family        string `toml:"family"`

	// URI of the export table for the firmware
	Library string `toml:"library"`

	Heap Window `toml:"heap"`
	Fast Window `toml:"fast"`
}

// Default returns the profile for an EP1 handset.
func Default() Profile {
	return Profile{
		Phone:         "E398",
		Platform:      "LTE",
		FirmwareMajor: "R373_G_0E.30.49R",
		FirmwareMinor: "0",
		Family:        FamilyEP1,
		Library:       "/a/Elf/elfloader.lib",
		Heap:          Window{Origin: 0x12000000, Size: 0x100000},
		Fast:          Window{Origin: 0x03fc0000, Size: 0x4000},
	}
}

func (p Profile) String() string {
	return fmt.Sprintf("%s %s (%s) %s.%s", p.Phone, p.Platform, p.Family, p.FirmwareMajor, p.FirmwareMinor)
}

// Parse a profile. Fields not present in data are taken from the default
// profile.
func Parse(data []byte) (Profile, error) {
	p := Default()

	err := toml.Unmarshal(data, &p)
	if err != nil {
		return Profile{}, curated.Errorf(ProfileError, err)
	}

	p.Family = strings.ToUpper(strings.TrimSpace(p.Family))
	if _, err := p.DataShift(); err != nil {
		return Profile{}, err
	}

	if p.Heap.Size == 0 {
		return Profile{}, curated.Errorf(ProfileError, "heap size is zero")
	}

	return p, nil
}

// Load a profile from a file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, curated.Errorf(ProfileError, err)
	}
	return Parse(data)
}

// Save the profile to a file.
func (p Profile) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(p)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}

	return nil
}

// DataShift returns the data shift threshold for the firmware family.
func (p Profile) DataShift() (uint32, error) {
	switch p.Family {
	case FamilyEP1, FamilyEG1:
		return loader.DataShiftEP1, nil
	case FamilyEA1:
		return loader.DataShiftEA1, nil
	}
	return 0, curated.Errorf(UnknownFamily, p.Family)
}

// Space returns the memory configuration for the device.
func (p Profile) Space() memory.Config {
	return memory.Config{
		HeapOrigin: p.Heap.Origin,
		HeapSize:   p.Heap.Size,
		FastOrigin: p.Fast.Origin,
		FastSize:   p.Fast.Size,
	}
}

// Config returns a copy of cfg with the values for the device.
func (p Profile) Config(cfg loader.Config) (loader.Config, error) {
	shift, err := p.DataShift()
	if err != nil {
		return cfg, err
	}
	cfg.DataShift = shift
	return cfg, nil
}
