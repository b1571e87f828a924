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

package hardware

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/hardware/memory/bus"
	"github.com/jetsetilly/beastboard/hardware/sound"
	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/romset"
)

// clocks and rates for the Whitestar sound board.
const (
	whitestarQuantumHz = 6000
	whitestarCPUHz     = 2000000

	// fixed FIRQ rate as measured on a real machine
	whitestarFIRQHz = 489
)

// WhitestarRegions is the romset layout the Whitestar catalog entry
// expects. There is no reference dump here: the board ran dozens of games,
// each with its own ROM. Sizes only; CRCs are per-game.
var WhitestarRegions = []romset.RegionDef{
	{Name: "bsmtcpu", Size: 0x10000},
}

// Whitestar is the Data East/Sega/Stern BSMT2000 sound board: one
// M6809-class CPU, the BSMT register latch pair and a fixed-rate FIRQ. It
// has no raster; all of its timing comes from periodic timers. Unlike the
// DJ Boy buses, unmapped reads here return the last value decoded on the
// bus.
type Whitestar struct {
	*Board

	CPU  *Socket
	BSMT *sound.BSMT

	// host -> sound board command byte
	Comms *latch.Latch
}

// NewWhitestar is the preferred method of initialisation for the Whitestar
// type. The execution unit starts with an IdleCore; attach a real core to
// the socket before running.
func NewWhitestar(roms romset.Collection) (*Whitestar, error) {
	rom, err := roms.Region("bsmtcpu")
	if err != nil {
		return nil, err
	}
	if rom.Size() != 0x10000 {
		return nil, curated.Errorf("whitestar: bsmtcpu region is %#x bytes, expected 0x10000", rom.Size())
	}

	board, err := NewBoard("Whitestar sound board", whitestarQuantumHz, nil)
	if err != nil {
		return nil, err
	}

	ws := &Whitestar{
		Board: board,
	}

	host := cpu.NewHandle("bsmtcpu", whitestarCPUHz)
	ws.BSMT = sound.NewBSMT(host)
	ws.Comms = latch.NewLatch("comms", latch.ReadClears)

	ram := make([]byte, 0x2000)
	data := rom.Data()

	// the device registers sit on top of ROM: reads that miss a register
	// fall through to the ROM byte underneath
	var cfg error
	reg := func(err error) {
		if cfg == nil {
			cfg = err
		}
	}

	mem := bus.NewBus("bsmtcpu_mem", 0xffff, bus.OpenBusLast)
	reg(mem.RAM(0x0000, 0x1fff, ram))
	reg(mem.Reg(0x2000, 0x2007,
		func(offset uint16) uint8 {
			switch offset {
			case 2, 3:
				return ws.Comms.Read()
			case 6, 7:
				return ws.BSMT.Status()
			}
			return data[0x2000+offset]
		},
		func(offset uint16, v uint8) {
			if offset < 2 {
				ws.BSMT.WriteReset(v)
			}
		},
	))
	reg(mem.ROM(0x2008, 0x5fff, data[0x2008:]))
	reg(mem.Reg(0x6000, 0x6000,
		func(_ uint16) uint8 { return data[0x6000] },
		func(_ uint16, v uint8) { ws.BSMT.WriteLatch(v) },
	))
	reg(mem.ROM(0x6001, 0x9fff, data[0x6001:]))
	reg(mem.Reg(0xa000, 0xa0ff,
		func(offset uint16) uint8 { return data[0xa000+offset] },
		ws.BSMT.WriteData,
	))
	reg(mem.ROM(0xa100, 0xffff, data[0xa100:]))

	if cfg != nil {
		return nil, curated.Errorf("whitestar: %v", cfg)
	}

	ws.CPU = ws.AddSocket(host, &cpu.IdleCore{Handle: host}, mem, nil)
	ws.AddLatch(ws.Comms)
	ws.Register(ws.BSMT)

	firq, err := timing.NewPeriodic("firq", whitestarFIRQHz, func() {
		host.Raise(cpu.FIRQ, cpu.HoldUntilAck, 0)
	})
	if err != nil {
		return nil, err
	}
	ws.AddPeriodic(firq)

	// the BSMT signals ready one quantum after a data write
	ready, err := timing.NewPeriodic("bsmt_ready", whitestarQuantumHz, ws.BSMT.Advance)
	if err != nil {
		return nil, err
	}
	ws.AddPeriodic(ready)

	ws.OnReset(ws.BSMT.Reset)

	return ws, nil
}

// HostCommand delivers a command byte from the host machine to the sound
// board.
func (ws *Whitestar) HostCommand(data uint8) {
	ws.Comms.Write(data)
}

// HostReset drives the sound CPU's reset line from the host machine.
func (ws *Whitestar) HostReset(state bool) {
	if state {
		ws.CPU.Handle.Raise(cpu.Reset, cpu.Assert, 0)
	} else {
		ws.CPU.Handle.Raise(cpu.Reset, cpu.Clear, 0)
	}
}
