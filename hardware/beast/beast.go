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

// Package beast is the port adapter for the protection MCU, the chip the
// board's developers named "Beast". The MCU core itself is external; this
// package gives it the four I/O ports the firmware expects, mapping them
// onto the two cross-CPU latches, the raw input ports, the DIP banks and
// the slave CPU's reset line.
package beast

import (
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/input"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/session"
)

// Beast adapts the MCU's four ports to the rest of the board.
//
// The P0 shadow steers everything else:
//
//	bit 0     inbound handshake. low opens the inbound latch on P1 and a
//	          falling edge acknowledges it
//	bit 1     outbound strobe. a rising edge sends the P1 shadow
//	bits 2-3  input port select for P2
//	bits 5-6  DIP column select for P3
//
// P3 bit 1 drives the slave CPU's reset line, active low.
type Beast struct {
	// master -> beast commands
	inbound *latch.Latch

	// beast -> slave responses
	outbound *latch.Latch

	// the beast owns the slave CPU's reset line
	slave *cpu.Handle

	// player and system switches, indexed as the firmware selects them
	inputs [3]input.Port

	// the two DIP banks
	dsw [2]input.Port

	// output shadows of the four ports. reads before the firmware's first
	// write observe zero
	p [4]uint8
}

// NewBeast is the preferred method of initialisation for the Beast type.
func NewBeast(inbound *latch.Latch, outbound *latch.Latch, slave *cpu.Handle,
	inputs [3]input.Port, dsw [2]input.Port) *Beast {
	return &Beast{
		inbound:  inbound,
		outbound: outbound,
		slave:    slave,
		inputs:   inputs,
		dsw:      dsw,
	}
}

// P0Read returns the port 0 input pins. Nothing drives them.
func (b *Beast) P0Read() uint8 {
	return 0
}

// P0Write updates the port 0 shadow, performing any handshake the bit
// transitions call for. A rising edge of bit 1 sends the P1 shadow to the
// outbound latch, exactly once per transition. A falling edge of bit 0
// acknowledges the inbound latch.
func (b *Beast) P0Write(data uint8) {
	if b.p[0]&0x02 == 0x00 && data&0x02 == 0x02 {
		b.outbound.Write(b.p[1])
	}

	if b.p[0]&0x01 == 0x01 && data&0x01 == 0x00 {
		b.inbound.Acknowledge()
	}

	b.p[0] = data
}

// P1Read returns the inbound latch value while the P0 handshake bit is
// low. The pins float otherwise.
func (b *Beast) P1Read() uint8 {
	if b.p[0]&0x01 == 0x00 {
		return b.inbound.Read()
	}
	return 0
}

// P1Write updates the port 1 shadow. The value goes nowhere until the P0
// strobe sends it.
func (b *Beast) P1Write(data uint8) {
	b.p[1] = data
}

// P2Read samples the input port selected by P0 bits 2-3.
func (b *Beast) P2Read() uint8 {
	switch (b.p[0] >> 2) & 3 {
	case 0:
		return b.inputs[1].Read()
	case 1:
		return b.inputs[2].Read()
	case 2:
		return b.inputs[0].Read()
	}
	return 0xff
}

// P2Write updates the port 2 shadow.
func (b *Beast) P2Write(data uint8) {
	b.p[2] = data
}

// P3Read packs one column of the DIP banks with the handshake state of
// both latches. P0 bits 5-6 select the column; the DIP banks are wired
// active low so the sampled bytes are inverted before packing.
func (b *Beast) P3Read() uint8 {
	dsw1 := ^b.dsw[0].Read()
	dsw2 := ^b.dsw[1].Read()

	sel := (b.p[0] >> 5) & 3
	dsw := ((dsw2>>(4+sel))&1)<<3 | ((dsw2>>sel)&1)<<2 | ((dsw1>>(4+sel))&1)<<1 | (dsw1>>sel)&1

	v := dsw << 4
	if !b.inbound.Pending() {
		v |= 0x04
	}
	if b.outbound.Pending() {
		v |= 0x08
	}
	return v
}

// P3Write updates the port 3 shadow and drives the slave CPU's reset line
// from bit 1.
func (b *Beast) P3Write(data uint8) {
	b.p[3] = data
	if data&0x02 == 0x02 {
		b.slave.Raise(cpu.Reset, cpu.Clear, 0)
	} else {
		b.slave.Raise(cpu.Reset, cpu.Assert, 0)
	}
}

// StatusRead is the latch handshake summary the slave CPU polls on its I/O
// space.
func (b *Beast) StatusRead() uint8 {
	v := uint8(0)
	if !b.outbound.Pending() {
		v |= 0x04
	}
	if b.inbound.Pending() {
		v |= 0x08
	}
	return v
}

// Reset the port shadows.
func (b *Beast) Reset() {
	for i := range b.p {
		b.p[i] = 0
	}
}

// State implements the session.Stateful interface.
func (b *Beast) State(s *session.State) {
	s.Put("beast.p0", int(b.p[0]))
	s.Put("beast.p1", int(b.p[1]))
	s.Put("beast.p2", int(b.p[2]))
	s.Put("beast.p3", int(b.p[3]))
}

// SetState implements the session.Stateful interface.
func (b *Beast) SetState(s *session.State) error {
	for i, k := range []string{"beast.p0", "beast.p1", "beast.p2", "beast.p3"} {
		v, err := s.Get(k)
		if err != nil {
			return err
		}
		b.p[i] = uint8(v)
	}
	return nil
}
