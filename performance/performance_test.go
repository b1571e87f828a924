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

package performance_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/performance"
	"github.com/jetsetilly/beastboard/test"
)

func TestCalcFPS(t *testing.T) {
	geom := timing.Geometry{
		RefreshHz:     60.0,
		Scanlines:     262,
		VisibleTop:    16,
		VisibleBottom: 239,
	}

	fps, accuracy := performance.CalcFPS(geom, 120, 2.0)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectEquality(t, accuracy, 100.0)

	fps, accuracy = performance.CalcFPS(geom, 60, 2.0)
	test.ExpectEquality(t, fps, 30.0)
	test.ExpectEquality(t, accuracy, 50.0)
}
