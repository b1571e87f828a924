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

// Package audioplay plays the board's sample stream through the host's
// audio device. The stream arrives from the emulation goroutine through
// SetAudio and is drained by the audio library's own goroutine; the buffer
// between them pads with silence on underrun, which is the right failure
// mode for an emulation that can't keep up.
package audioplay

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/sound"
)

// AudioPlay implements the sound.Mixer interface.
type AudioPlay struct {
	ctx    *oto.Context
	player *oto.Player

	crit   sync.Mutex
	buffer []uint8
}

// New is the preferred method of initialisation for the AudioPlay type.
func New(sampleRate int) (*AudioPlay, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatUnsignedInt8,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("audioplay: %v", err)
	}
	<-ready

	ap := &AudioPlay{
		ctx: ctx,
	}
	ap.player = ctx.NewPlayer(ap)
	ap.player.Play()

	return ap, nil
}

// Read is called by the audio library to drain the buffer. Underruns are
// padded with silence.
func (ap *AudioPlay) Read(p []byte) (int, error) {
	ap.crit.Lock()
	defer ap.crit.Unlock()

	n := copy(p, ap.buffer)
	ap.buffer = ap.buffer[n:]

	for i := n; i < len(p); i++ {
		p[i] = sound.Silence
	}

	return len(p), nil
}

// SetAudio implements the sound.Mixer interface.
func (ap *AudioPlay) SetAudio(samples []uint8) error {
	ap.crit.Lock()
	defer ap.crit.Unlock()

	ap.buffer = append(ap.buffer, samples...)
	return nil
}

// EndMixing implements the sound.Mixer interface.
func (ap *AudioPlay) EndMixing() error {
	err := ap.player.Close()
	if err != nil {
		return curated.Errorf("audioplay: %v", err)
	}
	return nil
}
