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

package test_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/elfpack/test"
)

func TestExpectations(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))

	var err error
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, 10, 10)
	test.ExpectInequality(t, "a", "b")
}

func TestCompareWriter(t *testing.T) {
	w := &test.CompareWriter{}
	w.Write([]byte("hello"))
	test.ExpectSuccess(t, w.Compare("hello"))
	w.Clear()
	test.ExpectSuccess(t, w.Compare(""))
}

func TestNoDiff(t *testing.T) {
	type pair struct {
		Name string
		Addr uint32
	}
	test.ExpectNoDiff(t, []pair{{"a", 1}, {"b", 2}}, []pair{{"a", 1}, {"b", 2}})
}
