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

package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ExpectNoDiff compares two values of any type with cmp.Diff(). Options are
// passed through to the cmp package, for example cmpopts.EquateEmpty() or
// cmp.AllowUnexported().
func ExpectNoDiff(t *testing.T, v any, expectedValue any, opts ...cmp.Option) bool {
	t.Helper()
	if diff := cmp.Diff(expectedValue, v, opts...); diff != "" {
		t.Errorf("unexpected difference (-want +got):\n%s", diff)
		return false
	}
	return true
}
