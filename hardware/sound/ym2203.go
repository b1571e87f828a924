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
	"github.com/jetsetilly/beastboard/session"
)

// YM2203 models the register interface of the FM chip: an address select
// port and a data port, with a status byte the driver program polls before
// writing. There is no synthesis; the chip never reports busy.
type YM2203 struct {
	addr uint8
	regs [0x100]uint8
}

// NewYM2203 is the preferred method of initialisation for the YM2203 type.
func NewYM2203() *YM2203 {
	return &YM2203{}
}

// Write handles the chip's two-port write interface. Offset 0 selects a
// register, offset 1 writes to the selected register.
func (ym *YM2203) Write(offset uint16, data uint8) {
	if offset&1 == 0 {
		ym.addr = data
		return
	}
	ym.regs[ym.addr] = data
}

// Read handles the chip's two-port read interface. Offset 0 is the status
// byte, offset 1 reads back the selected register.
func (ym *YM2203) Read(offset uint16) uint8 {
	if offset&1 == 0 {
		// busy and timer flags. never busy in this model
		return 0x00
	}
	return ym.regs[ym.addr]
}

// Reg returns the current value of a chip register.
func (ym *YM2203) Reg(reg uint8) uint8 {
	return ym.regs[reg]
}

// Reset the chip's registers.
func (ym *YM2203) Reset() {
	ym.addr = 0
	for i := range ym.regs {
		ym.regs[i] = 0
	}
}

// State implements the session.Stateful interface.
func (ym *YM2203) State(s *session.State) {
	s.Put("ym2203.addr", int(ym.addr))
}

// SetState implements the session.Stateful interface.
func (ym *YM2203) SetState(s *session.State) error {
	addr, err := s.Get("ym2203.addr")
	if err != nil {
		return err
	}
	ym.addr = uint8(addr)
	return nil
}
