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

// Package random should be used in preference to the math/rand package when
// generating random numbers inside the emulation. Random numbers are tied to
// the raster position of the emulated board, meaning that for any given
// position the random number sequence is predictable. Without this,
// emulations that are otherwise deterministic (for rewind or for comparative
// runs) would diverge on randomised state.
package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers.
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is any source of raster coordinates. The timing.Raster type
// implements this interface.
type Clock interface {
	Coords() (frame int, scanline int)
}

// a generous upper bound for scanlines per frame. used only for seed mixing
// so precision doesn't matter.
const maxScanlines = 1024

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. this is useful for
	// normalised instances where random numbers must be predictable across
	// runs
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// translate raster coordinates into a single value.
func (rnd *Random) coordsSum() int64 {
	frame, scanline := rnd.clock.Coords()
	return int64(frame*maxScanlines + scanline)
}

// new RNG from the standard library.
func (rnd *Random) rand() *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(rnd.coordsSum()))
	}
	return rand.New(rand.NewSource(baseSeed + rnd.coordsSum()))
}

// Intn returns a random integer in the range 0 to n.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}
