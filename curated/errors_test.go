// This file is part of BeastBoard.
//
// BeastBoard is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// BeastBoard is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with BeastBoard.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/test"
)

const testError = "test error: %v"
const wrapError = "wrap error: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, wrapError))

	// plain errors are not curated errors
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.Is(nil, testError))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	w := curated.Errorf(wrapError, e)

	// Is() tests only the outermost pattern but Has() walks the chain
	test.ExpectFailure(t, curated.Is(w, testError))
	test.ExpectSuccess(t, curated.Has(w, wrapError))
	test.ExpectSuccess(t, curated.Has(w, testError))
}

func TestDeduplication(t *testing.T) {
	// adjacent duplicate message parts are removed during formatting
	e := curated.Errorf("latch: %v", curated.Errorf("latch: no pending value"))
	test.ExpectEquality(t, e.Error(), "latch: no pending value")
}
