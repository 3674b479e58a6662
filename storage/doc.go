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

// Package storage provides the input streams the loader reads ELF modules and
// export libraries from.
//
// On the device, modules are addressed with URIs of the form
//
//	file://a/Elf/app.elf
//
// where the host part is the drive letter. The Dir type maps such URIs onto a
// directory on the host, one sub-directory per drive. Plain host paths and
// device paths without a scheme ("/a/Elf/app.elf") are also accepted. HTTP
// URLs are fetched in full, which is useful when serving freshly built
// modules from a development machine.
//
// The Memory type serves named byte slices and is used by tests.
//
// Every Stream records the SHA-1 hash of its content so that loads can be
// identified in logs.
package storage
