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

package monitor_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/hardware/memory/bus"
	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/monitor"
	"github.com/jetsetilly/beastboard/test"
)

func testBoard(t *testing.T) *hardware.Board {
	t.Helper()

	geom := timing.Geometry{
		RefreshHz:     60.0,
		Scanlines:     10,
		VisibleTop:    1,
		VisibleBottom: 8,
	}
	raster, err := timing.NewRaster(geom)
	test.DemandSuccess(t, err)

	b, err := hardware.NewBoard("test", 600, raster)
	test.DemandSuccess(t, err)

	h := cpu.NewHandle("main", 6000)
	mem := bus.NewBus("main_mem", 0xffff, bus.OpenBusFF)
	test.DemandSuccess(t, mem.RAM(0x0000, 0x0fff, make([]byte, 0x1000)))
	b.AddSocket(h, &cpu.IdleCore{Handle: h}, mem, nil)

	l := latch.NewLatch("mailbox", latch.ReadClears)
	b.AddLatch(l)

	return b
}

// run the monitor over a scripted command sequence and return everything it
// printed.
func runCommands(t *testing.T, b *hardware.Board, commands string) string {
	t.Helper()

	output := &strings.Builder{}
	term := monitor.NewPlainTerminal(strings.NewReader(commands), output)

	m, err := monitor.NewMonitor(b, term)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.Run())

	return output.String()
}

func TestMonitorQuit(t *testing.T) {
	out := runCommands(t, testBoard(t), "QUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "HELP"), true)
}

func TestMonitorEOFEndsRun(t *testing.T) {
	// input with no QUIT; the run ends at end of input
	out := runCommands(t, testBoard(t), "STATUS\n")
	test.ExpectEquality(t, strings.Contains(out, "mailbox"), true)
}

func TestMonitorStatus(t *testing.T) {
	b := testBoard(t)
	b.Latches()[0].Write(0x42)

	out := runCommands(t, b, "STATUS\nQUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "frame 0 scanline 0"), true)
	test.ExpectEquality(t, strings.Contains(out, "0x42 *"), true)
}

func TestMonitorFrame(t *testing.T) {
	b := testBoard(t)
	out := runCommands(t, b, "FRAME 3\nSTATUS\nQUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "frame 3 scanline 0"), true)
}

func TestMonitorPeekPoke(t *testing.T) {
	b := testBoard(t)
	out := runCommands(t, b, "POKE main 0x0123 0xab\nPEEK main 0x0123\nQUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "0x0123 -> 0xab"), true)
}

func TestMonitorBadCommand(t *testing.T) {
	out := runCommands(t, testBoard(t), "NONSUCH\nPEEK nonsuch 0x0000\nQUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "unknown command (NONSUCH)"), true)
	test.ExpectEquality(t, strings.Contains(out, "no unit named nonsuch"), true)
}

func TestMonitorCPU(t *testing.T) {
	b := testBoard(t)
	b.Sockets()[0].Handle.Raise(cpu.NMI, cpu.Assert, 0)

	out := runCommands(t, b, "CPU\nQUIT\n")
	test.ExpectEquality(t, strings.Contains(out, "main (6000Hz)"), true)
	test.ExpectEquality(t, strings.Contains(out, "NMI asserted"), true)
}
