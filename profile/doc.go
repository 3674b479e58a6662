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

// Package profile describes the handset a module is loaded for. A profile
// names the phone and its firmware and gives the firmware family, which
// decides the data shift threshold used when binding imports, and the memory
// windows of the device.
//
// Profiles are stored as TOML:
//
//	phone = "E398"
//	platform = "LTE"
//	firmware-major = "R373_G_0E.30.49R"
//	firmware-minor = "0"
//	family = "EP1"
//	library = "/a/Elf/elfloader.lib"
//
//	[heap]
//	origin = 0x12000000
//	size = 0x100000
//
//	[fast]
//	origin = 0x03fc0000
//	size = 0x4000
//
// Fields missing from the file take the value of the Default() profile.
package profile
