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

package romset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/beastboard/romset"
	"github.com/jetsetilly/beastboard/test"
)

func writeWAV(t *testing.T, filename string, bitDepth int, channels int, data []int) {
	t.Helper()

	f, err := os.Create(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 11025, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 11025},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())
}

func TestLoadWAV(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "sample.wav")

	// 16-bit mono ramp
	writeWAV(t, fn, 16, 1, []int{-0x8000, 0, 0x7f00})

	r, err := romset.LoadWAV("samples", fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size(), 3)
	test.ExpectEquality(t, r.Data()[0], byte(0x00))
	test.ExpectEquality(t, r.Data()[1], byte(0x80))
	test.ExpectEquality(t, r.Data()[2], byte(0xff))
}

func TestLoadWAVStereo(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "stereo.wav")

	// only the first channel is kept
	writeWAV(t, fn, 16, 2, []int{0x1000, -0x1000, 0x2000, -0x2000})

	r, err := romset.LoadWAV("samples", fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size(), 2)
	test.ExpectEquality(t, r.Data()[0], byte(0x90))
	test.ExpectEquality(t, r.Data()[1], byte(0xa0))
}

func TestLoadWAVMissingFile(t *testing.T) {
	_, err := romset.LoadWAV("samples", filepath.Join(t.TempDir(), "nonsuch.wav"))
	test.ExpectFailure(t, err)
}
