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

package sound

import (
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/session"
)

// BSMT models the register interface of the BSMT2000: a one-byte latch for
// the high half of the 16-bit register value, a data write that commits the
// assembled value, and a ready flag wired to the host CPU's IRQ line. A
// data write drops the ready flag and clears the IRQ; the device signals
// ready again one scheduling quantum later and the IRQ re-asserts.
type BSMT struct {
	host *cpu.Handle

	regs  [0x100]uint16
	latch uint8

	// value last written to the reset register. the device resets on the
	// falling edge of bit 7
	resetreg uint8

	// a data write has been accepted but the device has not signalled ready
	pending bool
}

// NewBSMT is the preferred method of initialisation for the BSMT type. The
// host handle receives the ready IRQ.
func NewBSMT(host *cpu.Handle) *BSMT {
	return &BSMT{
		host: host,
	}
}

// WriteReset handles the reset register. The device resets on the falling
// edge of bit 7; other transitions have no effect.
func (b *BSMT) WriteReset(data uint8) {
	diff := data ^ b.resetreg
	b.resetreg = data
	if diff&0x80 == 0x80 && data&0x80 == 0x00 {
		b.Reset()
	}
}

// WriteLatch stores the high byte of the next register value.
func (b *BSMT) WriteLatch(data uint8) {
	b.latch = data
}

// WriteData commits the assembled 16-bit value to the register selected by
// the inverted offset. The device is not ready until the next quantum and
// the host IRQ drops with it.
func (b *BSMT) WriteData(offset uint16, data uint8) {
	b.regs[uint8(offset)^0xff] = uint16(b.latch)<<8 | uint16(data)
	b.pending = true
	b.host.Raise(cpu.IRQ, cpu.Clear, 0)
}

// Status returns the ready flag in bit 7.
func (b *BSMT) Status() uint8 {
	if b.pending {
		return 0x00
	}
	return 0x80
}

// Reg returns the current value of a device register.
func (b *BSMT) Reg(reg uint8) uint16 {
	return b.regs[reg]
}

// Advance the device by one scheduling quantum. A pending data write
// completes and the host IRQ asserts to ask for more data.
func (b *BSMT) Advance() {
	if b.pending {
		b.pending = false
		b.host.Raise(cpu.IRQ, cpu.Assert, 0)
	}
}

// Reset the device.
func (b *BSMT) Reset() {
	for i := range b.regs {
		b.regs[i] = 0
	}
	b.latch = 0
	b.pending = false
}

// State implements the session.Stateful interface.
func (b *BSMT) State(s *session.State) {
	s.Put("bsmt.latch", int(b.latch))
	s.Put("bsmt.resetreg", int(b.resetreg))
	s.PutBool("bsmt.pending", b.pending)
}

// SetState implements the session.Stateful interface.
func (b *BSMT) SetState(s *session.State) error {
	latch, err := s.Get("bsmt.latch")
	if err != nil {
		return err
	}
	resetreg, err := s.Get("bsmt.resetreg")
	if err != nil {
		return err
	}
	pending, err := s.GetBool("bsmt.pending")
	if err != nil {
		return err
	}
	b.latch = uint8(latch)
	b.resetreg = uint8(resetreg)
	b.pending = pending
	return nil
}
