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

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Frame fingerprints the per-frame video hand-off. It implements the
// video.FrameSink interface.
type Frame struct {
	digest   [sha1.Size]byte
	buffer   []byte
	frameNum int
}

// NewFrame is the preferred method of initialisation for the Frame type.
func NewFrame() *Frame {
	return &Frame{}
}

// Hash implements the Digest interface.
func (dig *Frame) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Frame) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// FrameNum returns the frame number of the most recent hand-off.
func (dig *Frame) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the video.FrameSink interface. The previous
// fingerprint is hashed in ahead of the sprite page and palette, chaining
// the fingerprints together.
func (dig *Frame) NewFrame(frame int, sprites []byte, palette []byte) error {
	l := len(dig.digest) + len(sprites) + len(palette)
	if cap(dig.buffer) < l {
		dig.buffer = make([]byte, 0, l)
	}

	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)
	dig.buffer = append(dig.buffer, sprites...)
	dig.buffer = append(dig.buffer, palette...)

	dig.digest = sha1.Sum(dig.buffer)
	dig.frameNum = frame

	return nil
}
