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

// Package latch implements the one-byte mailbox register used for cross-CPU
// communication. One CPU writes a value, the pending flag is raised, and the
// consuming CPU reads the value and clears the flag, either implicitly on
// read or with an explicit acknowledge depending on the configured mode.
//
// The latch holds exactly one unconsumed value. A second write before the
// first value is consumed overwrites it, last-write-wins. The hardware these
// boards use is a single byte-wide register, not a FIFO; producers that care
// about lost values poll the pending flag before writing.
//
// A latch can be bound to an interrupt line on a target CPU. The line is
// raised when pending transitions from false to true and, for level modes,
// lowered when the pending flag clears.
package latch

import (
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/session"
)

// Mode selects how the pending flag is cleared.
type Mode int

// List of valid Mode values.
const (
	// a read of the latch clears the pending flag
	ReadClears Mode = iota

	// the pending flag is only cleared by an explicit Acknowledge()
	SeparateAck
)

// Latch is a one-byte mailbox with pending/acknowledge semantics.
type Latch struct {
	label string
	mode  Mode

	value   uint8
	pending bool

	// interrupt binding. fixed at configuration time
	target     *cpu.Handle
	targetLine cpu.Line
	targetMode cpu.Mode
	vector     uint8
}

// NewLatch is the preferred method of initialisation for the Latch type.
func NewLatch(label string, mode Mode) *Latch {
	return &Latch{
		label: label,
		mode:  mode,
	}
}

// Label returns the name the latch was created with.
func (l *Latch) Label() string {
	return l.label
}

// BindInterrupt attaches a target CPU line to the pending flag. The line is
// raised with the given mode and vector whenever pending transitions from
// false to true. The binding is fixed for the life of the latch.
func (l *Latch) BindInterrupt(target *cpu.Handle, line cpu.Line, mode cpu.Mode, vector uint8) {
	l.target = target
	l.targetLine = line
	l.targetMode = mode
	l.vector = vector
}

// Write a value into the latch. The previous value is overwritten whether or
// not it was consumed. The bound interrupt, if any, fires only on the
// false-to-true pending transition; rewriting an unconsumed latch does not
// fire it again.
func (l *Latch) Write(value uint8) {
	l.value = value

	if !l.pending {
		l.pending = true
		if l.target != nil {
			l.target.Raise(l.targetLine, l.targetMode, l.vector)
		}
	}
}

// Read the stored value. In ReadClears mode this also clears the pending
// flag, and lowers the bound interrupt line if the binding is a level mode.
func (l *Latch) Read() uint8 {
	if l.mode == ReadClears {
		l.clearPending()
	}
	return l.value
}

// Acknowledge explicitly clears the pending flag and lowers the bound
// interrupt line if the binding is a level mode. Only meaningful in
// SeparateAck mode but harmless in either: acknowledging a latch with
// nothing pending is a no-op, not an error.
func (l *Latch) Acknowledge() {
	l.clearPending()
}

// Pending exposes the pending flag without side effects. Used by polling
// status registers.
func (l *Latch) Pending() bool {
	return l.pending
}

// Peek returns the stored value without side effects. For inspection; bus
// reads should go through Read().
func (l *Latch) Peek() uint8 {
	return l.value
}

// Reset clears the value and pending flag. Configuration, including any
// interrupt binding, is unaffected.
func (l *Latch) Reset() {
	l.value = 0
	l.clearPending()
}

func (l *Latch) clearPending() {
	if !l.pending {
		return
	}

	l.pending = false

	// pulsed bindings have already self-cleared on the target; level
	// bindings track the pending flag
	if l.target != nil && l.targetMode != cpu.Pulse {
		l.target.Raise(l.targetLine, cpu.Clear, 0)
	}
}

// State implements the session.Stateful interface.
func (l *Latch) State(s *session.State) {
	s.Put(l.label+".value", int(l.value))
	s.PutBool(l.label+".pending", l.pending)
}

// SetState implements the session.Stateful interface.
//
// Note that the target CPU's line state is restored by the target's own
// SetState() function; only the latch fields are touched here.
func (l *Latch) SetState(s *session.State) error {
	value, err := s.Get(l.label + ".value")
	if err != nil {
		return err
	}
	pending, err := s.GetBool(l.label + ".pending")
	if err != nil {
		return err
	}
	l.value = uint8(value)
	l.pending = pending
	return nil
}
