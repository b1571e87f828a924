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
	"fmt"

	"github.com/jetsetilly/beastboard/hardware/memory"
	"github.com/jetsetilly/beastboard/logger"
	"github.com/jetsetilly/beastboard/session"
)

// number of voices on the M6295.
const okiVoices = 4

// an OKI voice playing one phrase from the sample region.
type okiVoice struct {
	active bool
	pos    int
	stop   int
	volume uint8
}

// OKI models the M6295 sample player: the one-port command protocol, the
// per-voice busy status and the walk through the sample region that a
// playing voice performs. The sample bytes are streamed to the mixer raw;
// there is no ADPCM decode.
//
// The command protocol is two-phase. A write with bit 7 set latches a
// phrase number; the following write starts that phrase on the voices
// named by bits 4-7, at the volume in bits 0-3. A write with bit 7 clear
// outside that sequence stops the voices named by bits 3-6.
type OKI struct {
	label   string
	rom     *memory.Region
	mixer   Mixer
	voices  [okiVoices]okiVoice
	phrase  uint8
	latched bool
}

// NewOKI is the preferred method of initialisation for the OKI type. The
// region holds the sample table and sample data; the mixer may be nil.
func NewOKI(label string, rom *memory.Region, mixer Mixer) *OKI {
	return &OKI{
		label: label,
		rom:   rom,
		mixer: mixer,
	}
}

// Write handles the command port.
func (o *OKI) Write(data uint8) {
	if o.latched {
		o.latched = false
		for v := 0; v < okiVoices; v++ {
			if data&(0x10<<v) == 0x10<<v {
				o.start(v, o.phrase, data&0x0f)
			}
		}
		return
	}

	if data&0x80 == 0x80 {
		o.phrase = data & 0x7f
		o.latched = true
		return
	}

	// stop command
	for v := 0; v < okiVoices; v++ {
		if (data>>3)&(1<<v) == 1<<v {
			o.voices[v].active = false
		}
	}
}

// Read returns the busy status: one bit per playing voice in the low
// nibble.
func (o *OKI) Read() uint8 {
	v := uint8(0xf0)
	for i := range o.voices {
		if o.voices[i].active {
			v |= 1 << i
		}
	}
	return v
}

// start a phrase on a voice. the sample table at the start of the region
// holds a big-endian start and stop address for each phrase.
func (o *OKI) start(voice int, phrase uint8, volume uint8) {
	d := o.rom.Data()

	t := int(phrase) * 8
	if t+6 > len(d) {
		logger.Logf("oki", "%s: phrase %#02x outside sample table", o.label, phrase)
		return
	}

	begin := int(d[t])<<16 | int(d[t+1])<<8 | int(d[t+2])
	end := int(d[t+3])<<16 | int(d[t+4])<<8 | int(d[t+5])

	if begin >= end || end >= len(d) {
		logger.Logf("oki", "%s: phrase %#02x has invalid sample range [%#x, %#x]", o.label, phrase, begin, end)
		return
	}

	o.voices[voice] = okiVoice{
		active: true,
		pos:    begin,
		stop:   end,
		volume: volume,
	}
}

// Step advances every playing voice by n sample bytes, streaming the mixed
// result to the mixer. Voices stop when they reach the end of their phrase.
func (o *OKI) Step(n int) error {
	if n <= 0 {
		return nil
	}

	buf := make([]uint8, n)
	d := o.rom.Data()

	for i := 0; i < n; i++ {
		acc := 0
		ct := 0
		for v := range o.voices {
			if !o.voices[v].active {
				continue
			}
			acc += int(d[o.voices[v].pos])
			ct++
			o.voices[v].pos++
			if o.voices[v].pos > o.voices[v].stop {
				o.voices[v].active = false
			}
		}
		if ct == 0 {
			buf[i] = Silence
		} else {
			buf[i] = uint8(acc / ct)
		}
	}

	if o.mixer == nil {
		return nil
	}
	return o.mixer.SetAudio(buf)
}

// Reset stops all voices and clears the phrase latch.
func (o *OKI) Reset() {
	for v := range o.voices {
		o.voices[v] = okiVoice{}
	}
	o.phrase = 0
	o.latched = false
}

// State implements the session.Stateful interface.
func (o *OKI) State(s *session.State) {
	s.Put(o.label+".phrase", int(o.phrase))
	s.PutBool(o.label+".latched", o.latched)
	for v := range o.voices {
		p := fmt.Sprintf("%s.voice.%d", o.label, v)
		s.PutBool(p+".active", o.voices[v].active)
		s.Put(p+".pos", o.voices[v].pos)
		s.Put(p+".stop", o.voices[v].stop)
		s.Put(p+".volume", int(o.voices[v].volume))
	}
}

// SetState implements the session.Stateful interface.
func (o *OKI) SetState(s *session.State) error {
	phrase, err := s.Get(o.label + ".phrase")
	if err != nil {
		return err
	}
	latched, err := s.GetBool(o.label + ".latched")
	if err != nil {
		return err
	}
	o.phrase = uint8(phrase)
	o.latched = latched

	for v := range o.voices {
		p := fmt.Sprintf("%s.voice.%d", o.label, v)
		active, err := s.GetBool(p + ".active")
		if err != nil {
			return err
		}
		pos, err := s.Get(p + ".pos")
		if err != nil {
			return err
		}
		stop, err := s.Get(p + ".stop")
		if err != nil {
			return err
		}
		volume, err := s.Get(p + ".volume")
		if err != nil {
			return err
		}
		o.voices[v] = okiVoice{active: active, pos: pos, stop: stop, volume: uint8(volume)}
	}
	return nil
}
