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

// Package logger is the central log repository for elfpack. It is also
// possible to create individual Logger instances and the loader package does
// this so that diagnostics can be inspected per load.
//
// Entries are made up of a tag and the detail. The tag should be a short
// string identifying the subsystem that made the entry, for example "ELF" or
// "PLT". Consecutive entries with the same tag and detail are collapsed into
// one entry with a repeat count.
//
// Every logging call takes a Permission argument. Use logger.Allow when the
// entry should always be made. Other types can implement the Permission
// interface to control logging dynamically, for example from a preference
// value.
//
// The number of entries in a Logger is bounded. Oldest entries are dropped
// first.
package logger
