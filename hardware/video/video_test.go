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

package video_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/hardware/video"
	"github.com/jetsetilly/beastboard/session"
	"github.com/jetsetilly/beastboard/test"
)

// a sink that records what it was handed.
type recordingSink struct {
	frames  []int
	sprites []byte
}

func (r *recordingSink) NewFrame(frame int, sprites []byte, palette []byte) error {
	r.frames = append(r.frames, frame)
	r.sprites = append([]byte(nil), sprites...)
	return nil
}

func TestScrollDecode(t *testing.T) {
	v := video.NewVideo(nil)

	v.SetScrollX(0x34)
	v.SetScrollY(0x56)
	test.ExpectEquality(t, v.ScrollX(), 0x34)
	test.ExpectEquality(t, v.ScrollY(), 0x56)

	// the video register carries the scroll msbs and the flip bit
	v.SetVideoReg(0xf0)
	test.ExpectEquality(t, v.ScrollX(), 0x334)
	test.ExpectEquality(t, v.ScrollY(), 0x156)
	test.ExpectEquality(t, v.Flip(), true)

	// the y msb is bit 5 alone. the x msbs do not leak into y
	v.SetVideoReg(0xd0)
	test.ExpectEquality(t, v.ScrollX(), 0x334)
	test.ExpectEquality(t, v.ScrollY(), 0x56)

	v.Reset()
	test.ExpectEquality(t, v.VideoReg(), uint8(0))
	test.ExpectEquality(t, v.ScrollX(), 0)
	test.ExpectEquality(t, v.ScrollY(), 0)
}

func TestPaletteDecode(t *testing.T) {
	v := video.NewVideo(nil)

	// entry 3 = xxxxGGGGRRRRBBBB, big endian
	v.PaletteWrite(6, 0x0a)
	v.PaletteWrite(7, 0x5f)

	r, g, b := v.Entry(3)
	test.ExpectEquality(t, g, uint8(0xaa))
	test.ExpectEquality(t, r, uint8(0x55))
	test.ExpectEquality(t, b, uint8(0xff))
}

func TestSpriteDoubleBuffer(t *testing.T) {
	sink := &recordingSink{}
	v := video.NewVideo(sink)

	v.SpriteWrite(0x10, 0xaa)
	test.ExpectEquality(t, v.SpriteRead(0x10), uint8(0xaa))

	// the sink sees the page as it stood at the vertical blank, not writes
	// made afterwards
	test.ExpectSuccess(t, v.VBlank(0))
	v.SpriteWrite(0x10, 0xbb)

	test.DemandEquality(t, len(sink.frames), 1)
	test.ExpectEquality(t, sink.frames[0], 0)
	test.ExpectEquality(t, sink.sprites[0x10], byte(0xaa))

	test.ExpectSuccess(t, v.VBlank(1))
	test.ExpectEquality(t, sink.sprites[0x10], byte(0xbb))
}

func TestVideoState(t *testing.T) {
	// 0x62 sets the scroll-x and scroll-y high bits
	v := video.NewVideo(nil)
	v.SetVideoReg(0x62)
	v.SetScrollX(0x11)
	v.SetScrollY(0x22)

	s := session.NewState()
	v.State(s)

	v.Reset()
	test.ExpectSuccess(t, v.SetState(s))
	test.ExpectEquality(t, v.VideoReg(), uint8(0x62))
	test.ExpectEquality(t, v.ScrollX(), 0x111)
	test.ExpectEquality(t, v.ScrollY(), 0x122)
}
