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

// Package prefs facilitates the storage of preferential values in the
// elfpack system. It is a key/value store with values persisted in a
// plain text file on disk.
//
// Values are of one of the types defined in this package (Bool, String). Each
// value is added to a Disk instance with the Add() function, under a key.
// Keys are dotted names, for example "loader.strict".
//
//	var strict prefs.Bool
//	dsk, _ := prefs.NewDisk(pth)
//	dsk.Add("loader.strict", &strict)
//	dsk.Load(true)
//
// The file format is one "key :: value" entry per line, sorted by key. Entries
// in the file that have not been added to the Disk instance are preserved
// when the file is saved.
//
// Values can also be overridden from the command line. A string of the form
// "key::value; key::value" is pushed onto the command line stack with
// PushCommandLineStack(). Any value in the stack is used in preference to the
// value on disk the next time Load() is called.
package prefs
