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

// Package paths contains functions to prepare paths to elfpack resources.
//
// The ResourcePath() function joins the resource arguments onto the base
// resource path. If a directory called ".elfpack" is present in the current
// directory then that is the base path. Otherwise the "elfpack" directory in
// the user's config directory is used (see os.UserConfigDir()).
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// On a modern Linux system, the path returned will be:
//
//	/home/user/.config/elfpack/preferences
//
// The directory part of the returned path is created if it does not exist.
package paths
