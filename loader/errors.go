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
	"fmt"

	"github.com/jetsetilly/elfpack/curated"
)

// Sentinel error patterns.
const (
	OpenFailed          = "loader: open failed: %s: %v"
	ReadHeaderFailed    = "loader: read header failed: %v"
	ReadFailed          = "loader: read failed: %v"
	SeekFailed          = "loader: seek failed: %v"
	AllocationFailed    = "loader: allocation failed: %v"
	UnresolvedReference = "loader: unresolved reference: %s"
	MalformedInput      = "loader: malformed input: %v"
	NoLoadableSegments  = "loader: no loadable segments"
)

func malformed(detail string, args ...any) error {
	return curated.Errorf(MalformedInput, fmt.Sprintf(detail, args...))
}

// Status is the numeric result of a load, as returned to application hosts.
type Status uint32

// List of valid Status values. The first five values are fixed by the host
// interface.
const (
	StatusSuccess Status = iota
	StatusOpenFailed
	StatusReadHeaderFailed
	StatusReadFailed
	StatusSeekFailed
	StatusAllocationFailed
	StatusUnresolvedReference
	StatusMalformedInput
	StatusNoLoadableSegments
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusOpenFailed:
		return "open failed"
	case StatusReadHeaderFailed:
		return "read header failed"
	case StatusReadFailed:
		return "read failed"
	case StatusSeekFailed:
		return "seek failed"
	case StatusAllocationFailed:
		return "allocation failed"
	case StatusUnresolvedReference:
		return "unresolved reference"
	case StatusMalformedInput:
		return "malformed input"
	case StatusNoLoadableSegments:
		return "no loadable segments"
	}
	return fmt.Sprintf("unknown status (%d)", uint32(s))
}

var statusPatterns = map[string]Status{
	OpenFailed:          StatusOpenFailed,
	ReadHeaderFailed:    StatusReadHeaderFailed,
	ReadFailed:          StatusReadFailed,
	SeekFailed:          StatusSeekFailed,
	AllocationFailed:    StatusAllocationFailed,
	UnresolvedReference: StatusUnresolvedReference,
	MalformedInput:      StatusMalformedInput,
	NoLoadableSegments:  StatusNoLoadableSegments,
}

// StatusOf returns the Status for an error returned by the loader. Errors that
// did not originate in the loader are reported as malformed input.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	patterns := make([]string, 0, len(statusPatterns))
	for p := range statusPatterns {
		patterns = append(patterns, p)
	}

	if p := curated.Find(err, patterns...); p != "" {
		return statusPatterns[p]
	}

	return StatusMalformedInput
}
