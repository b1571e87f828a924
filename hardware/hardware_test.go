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

package hardware_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/test"
)

// scriptCore is a Core driven by a function, standing in for a real
// instruction core in board tests.
type scriptCore struct {
	step   func() (int, error)
	resets int
	steps  int
}

func (c *scriptCore) Step() (int, error) {
	c.steps++
	if c.step != nil {
		return c.step()
	}
	return 4, nil
}

func (c *scriptCore) Reset() {
	c.resets++
}

func testRaster(t *testing.T) *timing.Raster {
	t.Helper()
	r, err := timing.NewRaster(hardware.DJBoyGeometry)
	test.DemandSuccess(t, err)
	return r
}

func TestQuantumSharing(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, testRaster(t))
	test.DemandSuccess(t, err)

	// two units at different clocks. each Step consumes 4 cycles so over
	// one quantum the fast unit runs in proportion to its clock
	fast := &scriptCore{}
	slow := &scriptCore{}
	b.AddSocket(cpu.NewHandle("fast", 6000000), fast, nil, nil)
	b.AddSocket(cpu.NewHandle("slow", 1500000), slow, nil, nil)

	test.ExpectSuccess(t, b.Step())

	// 1000 cycles at 4 per step; 250 cycles at 4 per step
	test.ExpectEquality(t, fast.steps, 250)
	test.ExpectEquality(t, slow.steps, 63)
}

func TestCycleDebt(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, nil)
	test.DemandSuccess(t, err)

	// a core whose instructions are longer than the slice carries the
	// overrun into the next quantum
	c := &scriptCore{step: func() (int, error) { return 600, nil }}
	b.AddSocket(cpu.NewHandle("wide", 6000000), c, nil, nil)

	test.ExpectSuccess(t, b.Step())
	test.ExpectEquality(t, c.steps, 2)

	// the second quantum starts 200 cycles in debt
	test.ExpectSuccess(t, b.Step())
	test.ExpectEquality(t, c.steps, 4)
}

func TestResetLineStopsUnit(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, nil)
	test.DemandSuccess(t, err)

	h := cpu.NewHandle("unit", 6000000)
	c := &scriptCore{}
	b.AddSocket(h, c, nil, nil)

	// a held reset line burns the unit's slice
	h.Raise(cpu.Reset, cpu.Assert, 0)
	test.ExpectSuccess(t, b.Step())
	test.ExpectEquality(t, c.steps, 0)
	test.ExpectEquality(t, c.resets, 0)

	// the core restarts on the release edge and runs again
	h.Raise(cpu.Reset, cpu.Clear, 0)
	test.ExpectSuccess(t, b.Step())
	test.ExpectEquality(t, c.resets, 1)
	test.ExpectEquality(t, c.steps, 250)
}

func TestBadCoreIsFatal(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, nil)
	test.DemandSuccess(t, err)

	c := &scriptCore{step: func() (int, error) { return 0, nil }}
	b.AddSocket(cpu.NewHandle("stuck", 6000000), c, nil, nil)

	test.ExpectFailure(t, b.Step())
}

func TestRunForFrameCount(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, testRaster(t))
	test.DemandSuccess(t, err)
	b.AddSocket(cpu.NewHandle("unit", 6000000), &scriptCore{}, nil, nil)

	frames := 0
	test.ExpectSuccess(t, b.RunForFrameCount(3, func(frame int) (bool, error) {
		frames++
		return true, nil
	}))
	test.ExpectEquality(t, frames, 3)
	test.ExpectEquality(t, b.Raster.Frame(), 3)
}

func TestBoardSaveRestore(t *testing.T) {
	b, err := hardware.NewBoard("test", 6000, testRaster(t))
	test.DemandSuccess(t, err)
	b.AddSocket(cpu.NewHandle("unit", 6000000), &scriptCore{}, nil, nil)

	test.ExpectSuccess(t, b.RunForFrameCount(2, nil))
	snap := b.Snapshot()

	buf := &bytes.Buffer{}
	test.ExpectSuccess(t, b.Save(buf))

	test.ExpectSuccess(t, b.RunForFrameCount(1, nil))
	test.ExpectEquality(t, b.Snapshot().Equal(snap), false)

	test.ExpectSuccess(t, b.Restore(buf))
	test.ExpectEquality(t, b.Snapshot().Equal(snap), true)
}
