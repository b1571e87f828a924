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

package random_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/random"
	"github.com/jetsetilly/beastboard/test"
)

type stubClock struct {
	frame    int
	scanline int
}

func (c *stubClock) Coords() (int, int) {
	return c.frame, c.scanline
}

func TestZeroSeed(t *testing.T) {
	clock := &stubClock{}

	rnd := random.NewRandom(clock)
	rnd.ZeroSeed = true

	// same coordinates produce the same number
	a := rnd.Intn(1000000)
	b := rnd.Intn(1000000)
	test.ExpectEquality(t, a, b)

	// different coordinates (almost certainly) produce a different number
	clock.frame = 1
	clock.scanline = 100
	c := rnd.Intn(1000000)

	clock.frame = 0
	clock.scanline = 0
	d := rnd.Intn(1000000)

	test.ExpectEquality(t, a, d)
	if a == c {
		t.Errorf("random number unchanged by emulation time")
	}
}
