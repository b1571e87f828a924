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
	"github.com/jetsetilly/beastboard/hardware/beast"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/input"
	"github.com/jetsetilly/beastboard/hardware/latch"
	"github.com/jetsetilly/beastboard/hardware/memory/bank"
	"github.com/jetsetilly/beastboard/hardware/memory/bus"
	"github.com/jetsetilly/beastboard/hardware/preferences"
	"github.com/jetsetilly/beastboard/hardware/sound"
	"github.com/jetsetilly/beastboard/hardware/timing"
	"github.com/jetsetilly/beastboard/hardware/video"
	"github.com/jetsetilly/beastboard/logger"
	"github.com/jetsetilly/beastboard/random"
	"github.com/jetsetilly/beastboard/romset"
	"github.com/jetsetilly/beastboard/session"
)

// DJBoyGeometry is the video timing of the DJ Boy board.
var DJBoyGeometry = timing.Geometry{
	RefreshHz:     57.5,
	Scanlines:     256,
	VisibleTop:    16,
	VisibleBottom: 239,
}

// scheduling and device clocks for the DJ Boy board.
const (
	djboyQuantumHz = 6000
	djboyZ80Hz     = 6000000
	djboyBeastHz   = 6000000
)

// DJBoySampleRate is the rate of the board's audio sample stream: the
// M6295 at 1.5MHz with the slow pin setting. Mixers attached to the board
// should be configured for this rate.
const DJBoySampleRate = 12000000 / 8 / 132

// DJBoyVariant is one released revision of the board.
type DJBoyVariant struct {
	Description string

	// the bank select obfuscation mask for this revision
	BankXOR uint8

	Regions []romset.RegionDef
}

// DJBoyVariants indexes the known board revisions by romset name.
var DJBoyVariants = map[string]DJBoyVariant{
	"djboy": {
		Description: "DJ Boy (set 1)",
		BankXOR:     0x00,
		Regions: []romset.RegionDef{
			{Name: "mastercpu", Size: 0x40000, Files: []romset.File{
				{Name: "bs64.4b", Offset: 0x00000, Size: 0x20000, CRC: 0xb77aacc7},
				{Name: "bs100.4d", Offset: 0x20000, Size: 0x20000, CRC: 0x081e8af8},
			}},
			{Name: "slavecpu", Size: 0x30000, Files: []romset.File{
				{Name: "bs65.5y", Offset: 0x00000, Size: 0x10000, CRC: 0x0f1456eb},
				{Name: "bs101.6w", Offset: 0x10000, Size: 0x20000, CRC: 0xa7c85577},
			}},
			{Name: "soundcpu", Size: 0x20000, Files: []romset.File{
				{Name: "bs200.8c", Offset: 0x00000, Size: 0x20000, CRC: 0xf6c19e51},
			}},
			{Name: "beast", Size: 0x1000, Files: []romset.File{
				{Name: "beast.9s", Offset: 0x0000, Size: 0x1000, CRC: 0xebe0f5f3},
			}},
			{Name: "oki", Size: 0x40000, Files: []romset.File{
				{Name: "bs203.5j", Offset: 0x00000, Size: 0x40000, CRC: 0x805341fb},
			}},
		},
	},
	"djboya": {
		Description: "DJ Boy (set 2)",
		BankXOR:     0x00,
		Regions: []romset.RegionDef{
			{Name: "mastercpu", Size: 0x40000, Files: []romset.File{
				{Name: "bs19s.rom", Offset: 0x00000, Size: 0x20000, CRC: 0x17ce9f6c},
				{Name: "bs100.4d", Offset: 0x20000, Size: 0x20000, CRC: 0x081e8af8},
			}},
			{Name: "slavecpu", Size: 0x30000, Files: []romset.File{
				{Name: "bs15s.rom", Offset: 0x00000, Size: 0x10000, CRC: 0xe6f966b2},
				{Name: "bs101.6w", Offset: 0x10000, Size: 0x20000, CRC: 0xa7c85577},
			}},
			{Name: "soundcpu", Size: 0x20000, Files: []romset.File{
				{Name: "bs200.8c", Offset: 0x00000, Size: 0x20000, CRC: 0xf6c19e51},
			}},
			{Name: "beast", Size: 0x1000, Files: []romset.File{
				{Name: "beast.9s", Offset: 0x0000, Size: 0x1000, CRC: 0xebe0f5f3},
			}},
			{Name: "oki", Size: 0x40000, Files: []romset.File{
				{Name: "bs203.5j", Offset: 0x00000, Size: 0x40000, CRC: 0x805341fb},
			}},
		},
	},
	"djboyj": {
		Description: "DJ Boy (Japan)",
		BankXOR:     0x1f,
		Regions: []romset.RegionDef{
			{Name: "mastercpu", Size: 0x40000, Files: []romset.File{
				{Name: "bs12.4b", Offset: 0x00000, Size: 0x20000, CRC: 0x0971523e},
				{Name: "bs100.4d", Offset: 0x20000, Size: 0x20000, CRC: 0x081e8af8},
			}},
			{Name: "slavecpu", Size: 0x30000, Files: []romset.File{
				{Name: "bs13.5y", Offset: 0x00000, Size: 0x10000, CRC: 0x5c3f2f96},
				{Name: "bs101.6w", Offset: 0x10000, Size: 0x20000, CRC: 0xa7c85577},
			}},
			{Name: "soundcpu", Size: 0x20000, Files: []romset.File{
				{Name: "bs200.8c", Offset: 0x00000, Size: 0x20000, CRC: 0xf6c19e51},
			}},
			{Name: "beast", Size: 0x1000, Files: []romset.File{
				{Name: "beast.9s", Offset: 0x0000, Size: 0x1000, CRC: 0xebe0f5f3},
			}},
			{Name: "oki", Size: 0x40000, Files: []romset.File{
				{Name: "bs-204.5j", Offset: 0x00000, Size: 0x40000, CRC: 0x510244f0},
			}},
		},
	},
}

// DJBoyInputs collects the input sources a DJ Boy board samples.
type DJBoyInputs struct {
	// system, player 1 and player 2 switches
	IN [3]input.Port

	// the two DIP banks
	DSW [2]input.Port
}

// DefaultDJBoyInputs returns inputs with no switches pressed and factory
// DIP settings.
func DefaultDJBoyInputs() DJBoyInputs {
	return DJBoyInputs{
		IN:  [3]input.Port{input.Idle, input.Idle, input.Idle},
		DSW: [2]input.Port{input.Idle, input.Idle},
	}
}

// DJBoy is the Kaneko "BS" board: three Z80s and the Beast MCU.
type DJBoy struct {
	*Board

	// execution units, in schedule order
	Master   *Socket
	Slave    *Socket
	Sound    *Socket
	BeastCPU *Socket

	Video *video.Video
	Beast *beast.Beast

	// beast -> slave, master -> beast, slave -> sound
	SlaveLatch *latch.Latch
	BeastLatch *latch.Latch
	SoundLatch *latch.Latch

	MasterBank  *bank.Window
	MasterBankL *bank.Window
	SlaveBank   *bank.Window
	SoundBank   *bank.Window

	YM   *sound.YM2203
	OkiL *sound.OKI
	OkiR *sound.OKI

	// coin bookkeeping. counters tick on the rising edge of the counter
	// port bits
	coin     [2]int
	lastCoin uint8
}

// NewDJBoy is the preferred method of initialisation for the DJBoy type.
// The sinks may be nil. All execution units start with an IdleCore; attach
// real cores to the sockets before running.
func NewDJBoy(variantName string, roms romset.Collection, inputs DJBoyInputs,
	frameSink video.FrameSink, mixer sound.Mixer, prf *preferences.Preferences) (*DJBoy, error) {
	variant, ok := DJBoyVariants[variantName]
	if !ok {
		return nil, curated.Errorf("djboy: no variant named %s", variantName)
	}

	masterROM, err := roms.Region("mastercpu")
	if err != nil {
		return nil, err
	}
	slaveROM, err := roms.Region("slavecpu")
	if err != nil {
		return nil, err
	}
	soundROM, err := roms.Region("soundcpu")
	if err != nil {
		return nil, err
	}
	okiROM, err := roms.Region("oki")
	if err != nil {
		return nil, err
	}

	raster, err := timing.NewRaster(DJBoyGeometry)
	if err != nil {
		return nil, err
	}

	board, err := NewBoard(variant.Description, djboyQuantumHz, raster)
	if err != nil {
		return nil, err
	}

	dj := &DJBoy{
		Board: board,
		Video: video.NewVideo(frameSink),
		YM:    sound.NewYM2203(),
		OkiL:  sound.NewOKI("oki_l", okiROM, mixer),
		OkiR:  sound.NewOKI("oki_r", okiROM, mixer),
	}

	master := cpu.NewHandle("mastercpu", djboyZ80Hz)
	slave := cpu.NewHandle("slavecpu", djboyZ80Hz)
	sndcpu := cpu.NewHandle("soundcpu", djboyZ80Hz)
	beastcpu := cpu.NewHandle("beast", djboyBeastHz)

	// latches. the beast command latch interrupts the MCU and holds the
	// interrupt until the firmware acknowledges through the port handshake;
	// the sound latch drives NMI as a level that drops when the latch is
	// read
	dj.SlaveLatch = latch.NewLatch("slavelatch", latch.ReadClears)
	dj.BeastLatch = latch.NewLatch("beastlatch", latch.SeparateAck)
	dj.BeastLatch.BindInterrupt(beastcpu, cpu.IRQ, cpu.Assert, 0)
	dj.SoundLatch = latch.NewLatch("soundlatch", latch.ReadClears)
	dj.SoundLatch.BindInterrupt(sndcpu, cpu.NMI, cpu.Assert, 0)

	dj.Beast = beast.NewBeast(dj.BeastLatch, dj.SlaveLatch, slave, inputs.IN, inputs.DSW)

	// bank windows. the master select index is obfuscated with a
	// per-revision XOR before it reaches the hardware
	dj.MasterBank, err = bank.NewWindow("master_bank", 0x2000, bank.SelectWrap, int(variant.BankXOR))
	if err != nil {
		return nil, err
	}
	if err := dj.MasterBank.Configure(0, 32, masterROM, 0); err != nil {
		return nil, err
	}

	// the low window is a single fixed entry. unsure if/how this area is
	// banked on the real board
	dj.MasterBankL, err = bank.NewWindow("master_bank_l", 0x3000, bank.SelectNoOp, 0)
	if err != nil {
		return nil, err
	}
	if err := dj.MasterBankL.Configure(0, 1, masterROM, 0x8000); err != nil {
		return nil, err
	}

	dj.SlaveBank, err = bank.NewWindow("slave_bank", 0x4000, bank.SelectNoOp, 0)
	if err != nil {
		return nil, err
	}
	if err := dj.SlaveBank.Configure(0, 4, slaveROM, 0); err != nil {
		return nil, err
	}
	if err := dj.SlaveBank.Configure(8, 8, slaveROM, 0x10000); err != nil {
		return nil, err
	}

	dj.SoundBank, err = bank.NewWindow("sound_bank", 0x4000, bank.SelectWrap, 0)
	if err != nil {
		return nil, err
	}
	if err := dj.SoundBank.Configure(0, 8, soundROM, 0); err != nil {
		return nil, err
	}

	// RAM blocks. the slave sees all of the shared block, the master only
	// the first half
	shared := make([]byte, 0x2000)
	masterRAM := make([]byte, 0x1000)
	slaveRAM := make([]byte, 0x500)
	soundRAM := make([]byte, 0x2000)

	if prf != nil && prf.RandomState.Get().(bool) {
		rnd := random.NewRandom(raster)
		for _, m := range [][]byte{shared, masterRAM, slaveRAM, soundRAM} {
			for i := range m {
				m[i] = uint8(rnd.Intn(0x100))
			}
		}
	}

	masterROMLow, err := masterROM.Slice(0, 0x8000)
	if err != nil {
		return nil, err
	}
	slaveROMLow, err := slaveROM.Slice(0, 0x8000)
	if err != nil {
		return nil, err
	}
	soundROMLow, err := soundROM.Slice(0, 0x8000)
	if err != nil {
		return nil, err
	}

	// buses. configuration errors accumulate and report as one
	var cfg error
	reg := func(err error) {
		if cfg == nil {
			cfg = err
		}
	}

	masterMem := bus.NewBus("mastercpu_mem", 0xffff, bus.OpenBusFF)
	reg(masterMem.ROM(0x0000, 0x7fff, masterROMLow))
	reg(masterMem.Bank(0x8000, 0xafff, dj.MasterBankL))
	reg(masterMem.Reg(0xb000, 0xbfff, dj.Video.SpriteRead, dj.Video.SpriteWrite))
	reg(masterMem.Bank(0xc000, 0xdfff, dj.MasterBank))
	reg(masterMem.RAM(0xe000, 0xefff, shared[:0x1000]))
	reg(masterMem.RAM(0xf000, 0xffff, masterRAM))

	masterIO := bus.NewBus("mastercpu_io", 0xff, bus.OpenBusFF)
	reg(masterIO.Reg(0x00, 0x00, nil, func(_ uint16, data uint8) {
		dj.MasterBank.Select(int(data))
		dj.MasterBankL.Select(0)
	}))

	slaveMem := bus.NewBus("slavecpu_mem", 0xffff, bus.OpenBusFF)
	reg(slaveMem.ROM(0x0000, 0x7fff, slaveROMLow))
	reg(slaveMem.Bank(0x8000, 0xbfff, dj.SlaveBank))
	reg(slaveMem.Reg(0xc000, 0xcfff, dj.Video.TileRead, dj.Video.TileWrite))
	reg(slaveMem.Reg(0xd000, 0xd3ff, dj.Video.PaletteRead, dj.Video.PaletteWrite))
	reg(slaveMem.RAM(0xd400, 0xd8ff, slaveRAM))
	reg(slaveMem.RAM(0xe000, 0xffff, shared))

	slaveIO := bus.NewBus("slavecpu_io", 0xff, bus.OpenBusFF)
	reg(slaveIO.Reg(0x00, 0x00, nil, func(_ uint16, data uint8) {
		dj.Video.SetVideoReg(data)
		if data&0x0c != 0x04 {
			dj.SlaveBank.Select(int(data & 0x0f))
		}
	}))
	reg(slaveIO.Reg(0x02, 0x02, nil, func(_ uint16, data uint8) {
		dj.SoundLatch.Write(data)
	}))
	reg(slaveIO.Reg(0x04, 0x04,
		func(_ uint16) uint8 { return dj.SlaveLatch.Read() },
		func(_ uint16, data uint8) { dj.BeastLatch.Write(data) },
	))
	reg(slaveIO.Reg(0x06, 0x06, nil, func(_ uint16, data uint8) {
		dj.Video.SetScrollY(data)
	}))
	reg(slaveIO.Reg(0x08, 0x08, nil, func(_ uint16, data uint8) {
		dj.Video.SetScrollX(data)
	}))
	reg(slaveIO.Reg(0x0a, 0x0a, nil, func(_ uint16, _ uint8) {
		master.Raise(cpu.NMI, cpu.Pulse, 0)
	}))
	reg(slaveIO.Reg(0x0c, 0x0c, func(_ uint16) uint8 {
		return dj.Beast.StatusRead()
	}, nil))
	reg(slaveIO.Reg(0x0e, 0x0e, nil, dj.coinCount))

	soundMem := bus.NewBus("soundcpu_mem", 0xffff, bus.OpenBusFF)
	reg(soundMem.ROM(0x0000, 0x7fff, soundROMLow))
	reg(soundMem.Bank(0x8000, 0xbfff, dj.SoundBank))
	reg(soundMem.RAM(0xc000, 0xdfff, soundRAM))

	soundIO := bus.NewBus("soundcpu_io", 0xff, bus.OpenBusFF)
	reg(soundIO.Reg(0x00, 0x00, nil, func(_ uint16, data uint8) {
		dj.SoundBank.Select(int(data))
	}))
	reg(soundIO.Reg(0x02, 0x03, dj.YM.Read, dj.YM.Write))
	reg(soundIO.Reg(0x04, 0x04, func(_ uint16) uint8 {
		return dj.SoundLatch.Read()
	}, nil))
	reg(soundIO.Reg(0x06, 0x06,
		func(_ uint16) uint8 { return dj.OkiL.Read() },
		func(_ uint16, data uint8) { dj.OkiL.Write(data) },
	))
	reg(soundIO.Reg(0x07, 0x07,
		func(_ uint16) uint8 { return dj.OkiR.Read() },
		func(_ uint16, data uint8) { dj.OkiR.Write(data) },
	))

	if cfg != nil {
		return nil, curated.Errorf("djboy: %v", cfg)
	}

	if prf != nil && prf.LogOpenBus.Get().(bool) {
		for _, b := range []*bus.Bus{masterMem, masterIO, slaveMem, slaveIO, soundMem, soundIO} {
			b.LogUndecoded(true)
		}
	}

	// schedule, in the order the units contend for the quantum
	dj.Master = dj.AddSocket(master, &cpu.IdleCore{Handle: master}, masterMem, masterIO)
	dj.Slave = dj.AddSocket(slave, &cpu.IdleCore{Handle: slave}, slaveMem, slaveIO)
	dj.Sound = dj.AddSocket(sndcpu, &cpu.IdleCore{Handle: sndcpu}, soundMem, soundIO)
	dj.BeastCPU = dj.AddSocket(beastcpu, &cpu.IdleCore{Handle: beastcpu}, nil, nil)

	dj.AddLatch(dj.SlaveLatch)
	dj.AddLatch(dj.BeastLatch)
	dj.AddLatch(dj.SoundLatch)
	dj.AddBank(dj.MasterBank)
	dj.AddBank(dj.MasterBankL)
	dj.AddBank(dj.SlaveBank)
	dj.AddBank(dj.SoundBank)
	dj.Register(dj.Video)
	dj.Register(dj.Beast)
	dj.Register(dj.YM)
	dj.Register(dj.OkiL)
	dj.Register(dj.OkiR)
	dj.Register(dj)

	// scanline interrupts. the master Z80 runs in IM2 so the vector byte
	// matters: 0xfd at the end of the visible frame and 0xff for the
	// sprite chip's end-of-transfer interrupt
	err = raster.AtScanline(240, func() {
		master.Raise(cpu.IRQ, cpu.HoldUntilAck, 0xfd)
	})
	if err != nil {
		return nil, err
	}
	err = raster.AtScanline(64, func() {
		master.Raise(cpu.IRQ, cpu.HoldUntilAck, 0xff)
	})
	if err != nil {
		return nil, err
	}

	// vertical blank: slave and sound interrupts, the sprite page hand-off
	// and a frame's worth of sample stream
	samplesPerFrame := int(float64(DJBoySampleRate) / DJBoyGeometry.RefreshHz)
	err = raster.AtScanline(DJBoyGeometry.VBlank(), func() {
		slave.Raise(cpu.IRQ, cpu.HoldUntilAck, 0xff)
		sndcpu.Raise(cpu.IRQ, cpu.HoldUntilAck, 0xff)

		if err := dj.Video.VBlank(raster.Frame()); err != nil {
			logger.Logf("djboy", "frame sink: %v", err)
		}
		if err := dj.OkiL.Step(samplesPerFrame); err != nil {
			logger.Logf("djboy", "oki_l: %v", err)
		}
		if err := dj.OkiR.Step(samplesPerFrame); err != nil {
			logger.Logf("djboy", "oki_r: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	dj.OnReset(func() {
		dj.Video.Reset()
		dj.Beast.Reset()
		dj.YM.Reset()
		dj.OkiL.Reset()
		dj.OkiR.Reset()
	})

	return dj, nil
}

// coin counter port. the physical counters tick on the rising edge of
// their bit.
func (dj *DJBoy) coinCount(_ uint16, data uint8) {
	if dj.lastCoin&0x01 == 0x00 && data&0x01 == 0x01 {
		dj.coin[0]++
	}
	if dj.lastCoin&0x02 == 0x00 && data&0x02 == 0x02 {
		dj.coin[1]++
	}
	dj.lastCoin = data
}

// CoinCounters returns the bookkeeping totals for the two coin chutes.
func (dj *DJBoy) CoinCounters() (int, int) {
	return dj.coin[0], dj.coin[1]
}

// State implements the session.Stateful interface.
func (dj *DJBoy) State(s *session.State) {
	s.Put("djboy.coin.0", dj.coin[0])
	s.Put("djboy.coin.1", dj.coin[1])
	s.Put("djboy.coin.last", int(dj.lastCoin))
}

// SetState implements the session.Stateful interface.
func (dj *DJBoy) SetState(s *session.State) error {
	c0, err := s.Get("djboy.coin.0")
	if err != nil {
		return err
	}
	c1, err := s.Get("djboy.coin.1")
	if err != nil {
		return err
	}
	last, err := s.Get("djboy.coin.last")
	if err != nil {
		return err
	}
	dj.coin[0] = c0
	dj.coin[1] = c1
	dj.lastCoin = uint8(last)
	return nil
}
