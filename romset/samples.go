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

package romset

import (
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/memory"
)

// LoadWAV builds a sample region from a WAV file. Samples are converted to
// the unsigned 8-bit mono format the sample players stream. Intended for
// harness and test use, where a region of recognisable audio is more
// useful than a ROM dump.
func LoadWAV(name string, filename string) (*memory.Region, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("romset: %s: %v", name, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("romset: %s: %v", name, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, curated.Errorf("romset: %s: no channels in wav data", name)
	}

	// first channel only, scaled to 8 bits
	shift := 0
	offset := 0
	switch buf.SourceBitDepth {
	case 8:
		// already unsigned 8-bit
	case 16:
		shift = 8
		offset = 0x80
	case 24:
		shift = 16
		offset = 0x80
	case 32:
		shift = 24
		offset = 0x80
	default:
		return nil, curated.Errorf("romset: %s: unsupported bit depth (%d)", name, buf.SourceBitDepth)
	}

	data := make([]byte, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		data = append(data, uint8((buf.Data[i]>>shift)+offset))
	}

	return memory.NewRegion(name, data), nil
}

// LoadMP3 builds a sample region from an MP3 file, converted as LoadWAV
// converts WAV data.
func LoadMP3(name string, filename string) (*memory.Region, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("romset: %s: %v", name, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, curated.Errorf("romset: %s: %v", name, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, curated.Errorf("romset: %s: %v", name, err)
	}

	// the decoder produces 16-bit stereo. left channel only
	data := make([]byte, 0, len(pcm)/4)
	for i := 0; i+1 < len(pcm); i += 4 {
		v := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		data = append(data, uint8((v>>8)+0x80))
	}

	return memory.NewRegion(name, data), nil
}
