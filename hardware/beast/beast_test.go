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

package beast_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/hardware/beast"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/input"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/session"
	"github.com/jetsetilly/beastboard/test"
)

type fixture struct {
	inbound  *latch.Latch
	outbound *latch.Latch
	slave    *cpu.Handle
	beast    *beast.Beast
}

func newFixture(inputs [3]input.Port, dsw [2]input.Port) *fixture {
	f := &fixture{
		inbound:  latch.NewLatch("beastlatch", latch.SeparateAck),
		outbound: latch.NewLatch("slavelatch", latch.ReadClears),
		slave:    cpu.NewHandle("slavecpu", 6000000),
	}
	f.beast = beast.NewBeast(f.inbound, f.outbound, f.slave, inputs, dsw)
	return f
}

func defaultFixture() *fixture {
	return newFixture(
		[3]input.Port{input.Idle, input.Idle, input.Idle},
		[2]input.Port{input.Fixed(0x00), input.Fixed(0x00)},
	)
}

func TestOutboundStrobe(t *testing.T) {
	f := defaultFixture()

	// the P1 shadow is sent on the rising edge of P0 bit 1, exactly once
	// per transition
	f.beast.P1Write(0x42)
	f.beast.P0Write(0x02)
	test.ExpectEquality(t, f.outbound.Pending(), true)
	test.ExpectEquality(t, f.outbound.Read(), uint8(0x42))

	// rewriting P0 with the strobe still high does not resend
	f.beast.P1Write(0x43)
	f.beast.P0Write(0x02)
	test.ExpectEquality(t, f.outbound.Pending(), false)

	// lowering and raising the strobe sends again
	f.beast.P0Write(0x00)
	f.beast.P0Write(0x02)
	test.ExpectEquality(t, f.outbound.Read(), uint8(0x43))
}

func TestInboundHandshake(t *testing.T) {
	f := defaultFixture()

	f.inbound.Write(0x99)
	test.ExpectEquality(t, f.inbound.Pending(), true)

	// P1 reads float until the firmware lowers the handshake bit
	f.beast.P0Write(0x01)
	test.ExpectEquality(t, f.beast.P1Read(), uint8(0x00))

	// lowering bit 0 opens the latch on P1 and acknowledges it
	f.beast.P0Write(0x00)
	test.ExpectEquality(t, f.beast.P1Read(), uint8(0x99))
	test.ExpectEquality(t, f.inbound.Pending(), false)

	// the acknowledge is an edge, not a level: a second write with bit 0
	// low while a new value is pending does not acknowledge it
	f.inbound.Write(0xaa)
	f.beast.P0Write(0x00)
	test.ExpectEquality(t, f.inbound.Pending(), true)
}

func TestInputSelect(t *testing.T) {
	f := newFixture(
		[3]input.Port{input.Fixed(0xa0), input.Fixed(0xa1), input.Fixed(0xa2)},
		[2]input.Port{input.Fixed(0x00), input.Fixed(0x00)},
	)

	// P0 bits 2-3 select the port: 0 -> IN1, 1 -> IN2, 2 -> IN0
	f.beast.P0Write(0x00)
	test.ExpectEquality(t, f.beast.P2Read(), uint8(0xa1))
	f.beast.P0Write(0x04)
	test.ExpectEquality(t, f.beast.P2Read(), uint8(0xa2))
	f.beast.P0Write(0x08)
	test.ExpectEquality(t, f.beast.P2Read(), uint8(0xa0))
	f.beast.P0Write(0x0c)
	test.ExpectEquality(t, f.beast.P2Read(), uint8(0xff))
}

func TestDIPColumns(t *testing.T) {
	// DIP banks are active low: a set switch reads 0. switch 1 and switch 5
	// of bank 1, switch 1 of bank 2
	f := newFixture(
		[3]input.Port{input.Idle, input.Idle, input.Idle},
		[2]input.Port{input.Fixed(^uint8(0x11)), input.Fixed(^uint8(0x01))},
	)

	// column 0 packs bit 4 and 0 of each inverted bank into the high nibble
	f.beast.P0Write(0x00)
	test.ExpectEquality(t, f.beast.P3Read()>>4, uint8(0x07))

	// column 1 sees none of those switches
	f.beast.P0Write(0x20)
	test.ExpectEquality(t, f.beast.P3Read()>>4, uint8(0x00))
}

func TestP3HandshakeFlags(t *testing.T) {
	f := defaultFixture()

	// nothing pending: inbound-empty flag set, outbound-pending flag clear
	test.ExpectEquality(t, f.beast.P3Read()&0x0f, uint8(0x04))

	f.inbound.Write(0x01)
	test.ExpectEquality(t, f.beast.P3Read()&0x0f, uint8(0x00))

	f.beast.P1Write(0x02)
	f.beast.P0Write(0x02)
	test.ExpectEquality(t, f.beast.P3Read()&0x0f, uint8(0x08))
}

func TestSlaveResetLine(t *testing.T) {
	f := defaultFixture()

	// bit 1 low holds the slave CPU in reset
	f.beast.P3Write(0x00)
	test.ExpectEquality(t, f.slave.Held(cpu.Reset), true)
	f.beast.P3Write(0x02)
	test.ExpectEquality(t, f.slave.Held(cpu.Reset), false)
}

func TestStatusRead(t *testing.T) {
	f := defaultFixture()

	// outbound empty, inbound empty
	test.ExpectEquality(t, f.beast.StatusRead(), uint8(0x04))

	// a command in flight to the beast
	f.inbound.Write(0x01)
	test.ExpectEquality(t, f.beast.StatusRead(), uint8(0x0c))

	// a response waiting for the slave
	f.beast.P1Write(0x02)
	f.beast.P0Write(0x02)
	test.ExpectEquality(t, f.beast.StatusRead(), uint8(0x08))
}

func TestBeastState(t *testing.T) {
	f := defaultFixture()

	f.beast.P0Write(0x2c)
	f.beast.P1Write(0x11)
	f.beast.P3Write(0x02)

	s := session.NewState()
	f.beast.State(s)

	g := defaultFixture()
	test.ExpectSuccess(t, g.beast.SetState(s))

	// the restored P0 shadow steers the input select as before
	test.ExpectEquality(t, g.beast.P2Read(), uint8(0xff))
}
