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

package sound_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/memory"
	"github.com/jetsetilly/beastboard/hardware/sound"
	"github.com/jetsetilly/beastboard/test"
)

// a mixer that accumulates the sample stream.
type captureMixer struct {
	samples []uint8
}

func (m *captureMixer) SetAudio(samples []uint8) error {
	m.samples = append(m.samples, samples...)
	return nil
}

func (m *captureMixer) EndMixing() error {
	return nil
}

func TestYM2203(t *testing.T) {
	ym := sound.NewYM2203()

	// status reads never report busy
	test.ExpectEquality(t, ym.Read(0), uint8(0x00))

	ym.Write(0, 0x28)
	ym.Write(1, 0xf4)
	test.ExpectEquality(t, ym.Reg(0x28), uint8(0xf4))
	test.ExpectEquality(t, ym.Read(1), uint8(0xf4))

	ym.Reset()
	test.ExpectEquality(t, ym.Reg(0x28), uint8(0x00))
}

// a sample region with one phrase: table entry 2 pointing at an 8 byte
// ramp at 0x400.
func okiRegion() *memory.Region {
	d := make([]byte, 0x1000)

	// phrase 2: start 0x000400, stop 0x000407
	d[2*8+2] = 0x00
	d[2*8+1] = 0x04
	d[2*8+0] = 0x00
	d[2*8+5] = 0x07
	d[2*8+4] = 0x04
	d[2*8+3] = 0x00

	for i := 0; i < 8; i++ {
		d[0x400+i] = byte(0x10 * i)
	}
	return memory.NewRegion("oki", d)
}

func TestOKIPlayback(t *testing.T) {
	m := &captureMixer{}
	o := sound.NewOKI("oki_l", okiRegion(), m)

	test.ExpectEquality(t, o.Read(), uint8(0xf0))

	// latch phrase 2, start on voice 0 at full volume
	o.Write(0x82)
	o.Write(0x10)
	test.ExpectEquality(t, o.Read(), uint8(0xf1))

	// the phrase is 8 bytes; the voice stops partway through the second
	// step and the stream pads with silence
	test.ExpectSuccess(t, o.Step(6))
	test.ExpectSuccess(t, o.Step(6))
	test.ExpectEquality(t, o.Read(), uint8(0xf0))

	test.DemandEquality(t, len(m.samples), 12)
	test.ExpectEquality(t, m.samples[0], uint8(0x00))
	test.ExpectEquality(t, m.samples[5], uint8(0x50))
	test.ExpectEquality(t, m.samples[7], uint8(0x70))
	test.ExpectEquality(t, m.samples[8], sound.Silence)
}

func TestOKIStop(t *testing.T) {
	o := sound.NewOKI("oki_r", okiRegion(), nil)

	o.Write(0x82)
	o.Write(0x20)
	test.ExpectEquality(t, o.Read(), uint8(0xf2))

	// stop voice 1. bits 3-6 name the voices to stop
	o.Write(0x10)
	test.ExpectEquality(t, o.Read(), uint8(0xf0))

	// starting an invalid phrase is a logged no-op
	o.Write(0xff)
	o.Write(0x10)
	test.ExpectEquality(t, o.Read(), uint8(0xf0))
}

func TestBSMT(t *testing.T) {
	host := cpu.NewHandle("bsmtcpu", 2000000)
	b := sound.NewBSMT(host)

	test.ExpectEquality(t, b.Status(), uint8(0x80))

	// a data write assembles latch<<8|data into the register named by the
	// inverted offset, and the device is busy until the next quantum
	b.WriteLatch(0x12)
	b.WriteData(0x00, 0x34)
	test.ExpectEquality(t, b.Reg(0xff), uint16(0x1234))
	test.ExpectEquality(t, b.Status(), uint8(0x00))

	asserted, _ := host.Poll(cpu.IRQ)
	test.ExpectEquality(t, asserted, false)

	// ready again: the host IRQ asserts to ask for more data
	b.Advance()
	test.ExpectEquality(t, b.Status(), uint8(0x80))
	asserted, _ = host.Poll(cpu.IRQ)
	test.ExpectEquality(t, asserted, true)
}

func TestBSMTReset(t *testing.T) {
	host := cpu.NewHandle("bsmtcpu", 2000000)
	b := sound.NewBSMT(host)

	b.WriteLatch(0xab)
	b.WriteData(0x03, 0xcd)
	test.ExpectEquality(t, b.Reg(0xfc), uint16(0xabcd))

	// only the falling edge of bit 7 resets the device
	b.WriteReset(0x80)
	test.ExpectEquality(t, b.Reg(0xfc), uint16(0xabcd))
	b.WriteReset(0x00)
	test.ExpectEquality(t, b.Reg(0xfc), uint16(0x0000))
	test.ExpectEquality(t, b.Status(), uint8(0x80))
}
