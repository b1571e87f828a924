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

// Package cpu defines the Handle type through which the rest of the board
// addresses an execution unit. Instruction emulation itself is external to
// this project: a Core implementation is attached to a Handle and the board
// scheduler calls Step() repeatedly.
//
// A Handle owns the latched state of the unit's input lines (IRQ, NMI, FIRQ,
// RESET). Devices raise lines through the Handle at any time; the attached
// core observes them with Poll() at its instruction boundaries. This is the
// ordering rule for all cross-CPU signalling on the board: an assertion made
// during one unit's instruction becomes visible to another unit no earlier
// than that unit's next instruction boundary.
package cpu

import (
	"github.com/jetsetilly/beastboard/session"
)

// Core is an external CPU instruction core. The fabric makes no assumptions
// about the architecture beyond this interface.
type Core interface {
	// Step executes one instruction, including servicing of any input lines
	// the implementation polls for, and returns the number of clock cycles
	// consumed. Step must return at least one cycle
	Step() (int, error)

	// Reset returns the core to its power-on state
	Reset()
}

// Handle is an opaque reference to an independently clocked execution unit.
// It is the target of all line assertion calls.
type Handle struct {
	label string

	// clock frequency of the unit in Hz
	clockHz int

	lines [NumLines]lineState
}

// NewHandle is the preferred method of initialisation for the Handle type.
func NewHandle(label string, clockHz int) *Handle {
	return &Handle{
		label:   label,
		clockHz: clockHz,
	}
}

// Label returns the name the handle was created with.
func (h *Handle) Label() string {
	return h.label
}

// ClockHz returns the clock frequency of the execution unit.
func (h *Handle) ClockHz() int {
	return h.clockHz
}

// Raise changes the state of an input line. The change is latched
// immediately but is only observed by the attached core at its next call to
// Poll(), ie. its next instruction boundary.
func (h *Handle) Raise(line Line, mode Mode, vector uint8) {
	l := &h.lines[line]

	switch mode {
	case Assert:
		l.asserted = true
		l.pulse = false
		l.hold = false
		l.vector = vector
	case Clear:
		l.asserted = false
		l.pulse = false
		l.hold = false
	case Pulse:
		l.asserted = true
		l.pulse = true
		l.hold = false
		l.vector = vector
	case HoldUntilAck:
		l.asserted = true
		l.pulse = false
		l.hold = true
		l.vector = vector
	}
}

// Poll is called by the attached core at an instruction boundary. It returns
// whether the line is asserted, along with the vector supplied when the line
// was raised. Pulsed lines self-clear after being observed once.
func (h *Handle) Poll(line Line) (bool, uint8) {
	l := &h.lines[line]

	asserted := l.asserted
	vector := l.vector

	if l.pulse {
		l.asserted = false
		l.pulse = false
	}

	return asserted, vector
}

// Ack is called by the attached core when it has serviced a line raised in
// HoldUntilAck mode. Lines raised in other modes are unaffected.
func (h *Handle) Ack(line Line) {
	l := &h.lines[line]
	if l.hold {
		l.asserted = false
		l.hold = false
	}
}

// Held returns the asserted state of a line without consuming pulses. Used
// by the scheduler to observe the RESET line and by polling status
// registers.
func (h *Handle) Held(line Line) bool {
	return h.lines[line].asserted
}

// ClearLines returns all input lines to their unasserted state. Called as
// part of a board reset; configuration (label, clock) is unaffected.
func (h *Handle) ClearLines() {
	for i := range h.lines {
		h.lines[i] = lineState{}
	}
}

// State implements the session.Stateful interface.
func (h *Handle) State(s *session.State) {
	for i := Line(0); i < NumLines; i++ {
		l := h.lines[i]
		s.PutBool(h.label+".line."+i.String()+".asserted", l.asserted)
		s.PutBool(h.label+".line."+i.String()+".pulse", l.pulse)
		s.PutBool(h.label+".line."+i.String()+".hold", l.hold)
		s.Put(h.label+".line."+i.String()+".vector", int(l.vector))
	}
}

// SetState implements the session.Stateful interface.
func (h *Handle) SetState(s *session.State) error {
	for i := Line(0); i < NumLines; i++ {
		asserted, err := s.GetBool(h.label + ".line." + i.String() + ".asserted")
		if err != nil {
			return err
		}
		pulse, err := s.GetBool(h.label + ".line." + i.String() + ".pulse")
		if err != nil {
			return err
		}
		hold, err := s.GetBool(h.label + ".line." + i.String() + ".hold")
		if err != nil {
			return err
		}
		vector, err := s.Get(h.label + ".line." + i.String() + ".vector")
		if err != nil {
			return err
		}
		h.lines[i] = lineState{
			asserted: asserted,
			pulse:    pulse,
			hold:     hold,
			vector:   uint8(vector),
		}
	}
	return nil
}

// IdleCore is a stand-in Core for execution units with no external core
// attached. It consumes cycles and observes pulsed lines so that they do not
// accumulate, but otherwise does nothing.
type IdleCore struct {
	Handle *Handle
}

// Step implements the Core interface.
func (c *IdleCore) Step() (int, error) {
	if c.Handle != nil {
		// consume pulse edges. held lines are left for an eventual real core
		for i := Line(0); i < NumLines; i++ {
			_, _ = c.Handle.Poll(i)
		}
	}
	return 4, nil
}

// Reset implements the Core interface.
func (c *IdleCore) Reset() {
}
