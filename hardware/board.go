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

// Package hardware ties the fabric packages together into a Board: the
// execution units, their buses, the latches and bank windows between them
// and the clock sources that drive interrupts. The concrete board catalog
// entries (DJ Boy, the Whitestar sound board) live in this package too.
//
// Execution follows a cooperative quantum model. The board's quantum rate
// divides a second into short slices; within each slice every execution
// unit runs in turn for its share of clock cycles. No goroutines, no
// locking: everything is advanced from the one goroutine that calls
// Step() or Run(). Cross-CPU signals raised during one unit's slice are
// observed by the target at its next instruction boundary, which is at
// most one quantum away.
package hardware

import (
	"io"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/hardware/memory/bank"
	"github.com/jetsetilly/beastboard/hardware/memory/bus"
	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/session"
)

// the number of quanta between calls to a Run() continue check. checking on
// every quantum measurably slows the emulation.
const performanceBrake = 100

// Socket couples an execution unit's Handle with the core that drives it
// and the buses it sees.
type Socket struct {
	Handle *cpu.Handle
	Core   cpu.Core

	// the unit's memory and I/O port spaces. IO is nil for units without a
	// separate port space
	Mem *bus.Bus
	IO  *bus.Bus

	// unspent cycles carried between quanta. a core whose last instruction
	// overran its slice starts the next slice in debt
	credit int

	// reset line state at the end of the previous slice. the core resets on
	// the release edge
	inReset bool
}

// Board is a complete machine: execution units, clock sources and the
// coordination fabric between them.
type Board struct {
	Label string

	// the scheduling quantum rate
	QuantumHz int

	// the raster that drives scanline interrupts and the frame hand-off
	Raster *timing.Raster

	sockets   []*Socket
	periodics []*timing.Periodic
	latches   []*latch.Latch
	banks     []*bank.Window

	// everything contributing to a saved session
	statefuls []session.Stateful

	// run on board reset, after lines and latches have cleared
	resetHooks []func()

	// raster advance accumulator, in scanlines per quantum
	rasterAccum int
}

// NewBoard is the preferred method of initialisation for the Board type.
// Catalog functions build on this; it is exported for test harnesses that
// assemble boards by hand.
func NewBoard(label string, quantumHz int, raster *timing.Raster) (*Board, error) {
	if quantumHz <= 0 {
		return nil, curated.Errorf("hardware: %s: invalid quantum rate (%dHz)", label, quantumHz)
	}

	b := &Board{
		Label:     label,
		QuantumHz: quantumHz,
		Raster:    raster,
	}
	if raster != nil {
		b.statefuls = append(b.statefuls, raster)
	}

	return b, nil
}

// AddSocket adds an execution unit to the board's schedule. Units run in
// the order they are added.
func (b *Board) AddSocket(handle *cpu.Handle, core cpu.Core, mem *bus.Bus, ports *bus.Bus) *Socket {
	s := &Socket{
		Handle: handle,
		Core:   core,
		Mem:    mem,
		IO:     ports,
	}
	b.sockets = append(b.sockets, s)
	b.statefuls = append(b.statefuls, handle)
	return s
}

// AddPeriodic adds a fixed-frequency timer to the board's schedule.
func (b *Board) AddPeriodic(p *timing.Periodic) {
	b.periodics = append(b.periodics, p)
	b.statefuls = append(b.statefuls, p)
}

// AddLatch registers a cross-CPU latch with the board, for reset, session
// state and inspection.
func (b *Board) AddLatch(l *latch.Latch) {
	b.latches = append(b.latches, l)
	b.statefuls = append(b.statefuls, l)
}

// AddBank registers a bank window with the board, for session state and
// inspection.
func (b *Board) AddBank(w *bank.Window) {
	b.banks = append(b.banks, w)
	b.statefuls = append(b.statefuls, w)
}

// Register an additional session state contributor.
func (b *Board) Register(s session.Stateful) {
	b.statefuls = append(b.statefuls, s)
}

// OnReset registers a hook to run as part of a board reset, after lines and
// latches have been cleared.
func (b *Board) OnReset(f func()) {
	b.resetHooks = append(b.resetHooks, f)
}

// Sockets returns the board's execution units, in schedule order.
func (b *Board) Sockets() []*Socket {
	return b.sockets
}

// Latches returns the board's registered latches.
func (b *Board) Latches() []*latch.Latch {
	return b.latches
}

// Banks returns the board's registered bank windows.
func (b *Board) Banks() []*bank.Window {
	return b.banks
}

// run one socket for its share of one quantum.
func (b *Board) slice(s *Socket) error {
	// a held reset line stops the unit dead. cycles are not banked while in
	// reset and the core restarts on the release edge
	if s.Handle.Held(cpu.Reset) {
		s.inReset = true
		s.credit = 0
		return nil
	}
	if s.inReset {
		s.inReset = false
		s.Core.Reset()
	}

	s.credit += s.Handle.ClockHz() / b.QuantumHz
	for s.credit > 0 {
		cycles, err := s.Core.Step()
		if err != nil {
			return curated.Errorf("hardware: %s: %s: %v", b.Label, s.Handle.Label(), err)
		}
		if cycles < 1 {
			return curated.Errorf("hardware: %s: %s: core consumed no cycles", b.Label, s.Handle.Label())
		}
		s.credit -= cycles
	}

	return nil
}

// Step advances the whole board by one quantum: every execution unit runs
// for its share of clock cycles, then the clock sources catch up.
func (b *Board) Step() error {
	for _, s := range b.sockets {
		if err := b.slice(s); err != nil {
			return err
		}
	}

	if b.Raster != nil {
		b.rasterAccum += b.Raster.Geometry().ScanlinesPerSecond()
		for b.rasterAccum >= b.QuantumHz {
			b.rasterAccum -= b.QuantumHz
			b.Raster.Tick()
		}
	}

	for _, p := range b.periodics {
		p.Advance(b.QuantumHz)
	}

	return nil
}

// Run the board until the continue check returns false or an error occurs.
// The check is called periodically rather than on every quantum.
func (b *Board) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	brake := 0
	for {
		if err := b.Step(); err != nil {
			return err
		}

		brake++
		if brake >= performanceBrake {
			brake = 0
			cont, err := continueCheck()
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
}

// RunForFrameCount runs the board for the given number of video frames. The
// callback, if not nil, is invoked at each new frame; returning false ends
// the run early.
func (b *Board) RunForFrameCount(numFrames int, callback func(frame int) (bool, error)) error {
	if b.Raster == nil {
		return curated.Errorf("hardware: %s: no raster to count frames with", b.Label)
	}

	target := b.Raster.Frame() + numFrames
	frame := b.Raster.Frame()

	for b.Raster.Frame() < target {
		if err := b.Step(); err != nil {
			return err
		}

		if b.Raster.Frame() != frame {
			frame = b.Raster.Frame()
			if callback != nil {
				cont, err := callback(frame)
				if err != nil {
					return err
				}
				if !cont {
					return nil
				}
			}
		}
	}

	return nil
}

// Reset the board to its power-on state: lines cleared, cores reset,
// latches emptied, clock sources rewound, reset hooks run.
func (b *Board) Reset() {
	for _, s := range b.sockets {
		s.Handle.ClearLines()
		s.Core.Reset()
		s.credit = 0
		s.inReset = false
	}
	for _, l := range b.latches {
		l.Reset()
	}
	if b.Raster != nil {
		b.Raster.Reset()
	}
	b.rasterAccum = 0
	for _, p := range b.periodics {
		p.Reset()
	}
	for _, f := range b.resetHooks {
		f()
	}
}

// Snapshot gathers the board's coordination state into a session State.
func (b *Board) Snapshot() *session.State {
	s := session.NewState()
	for _, st := range b.statefuls {
		st.State(s)
	}
	return s
}

// Plumb restores the board's coordination state from a session State.
func (b *Board) Plumb(s *session.State) error {
	for _, st := range b.statefuls {
		if err := st.SetState(s); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the board's coordination state to the io.Writer.
func (b *Board) Save(output io.Writer) error {
	return b.Snapshot().Write(output)
}

// Restore reads a previously saved state from the io.Reader and plumbs it
// into the board.
func (b *Board) Restore(input io.Reader) error {
	s := session.NewState()
	if err := s.Read(input); err != nil {
		return err
	}
	return b.Plumb(s)
}
