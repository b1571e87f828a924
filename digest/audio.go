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

// Audio fingerprints the sample stream. It implements the sound.Mixer
// interface.
type Audio struct {
	digest [sha1.Size]byte
	buffer []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// SetAudio implements the sound.Mixer interface. Each chunk of samples is
// hashed together with the previous fingerprint.
func (dig *Audio) SetAudio(samples []uint8) error {
	l := len(dig.digest) + len(samples)
	if cap(dig.buffer) < l {
		dig.buffer = make([]byte, 0, l)
	}

	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)
	dig.buffer = append(dig.buffer, samples...)

	dig.digest = sha1.Sum(dig.buffer)

	return nil
}

// EndMixing implements the sound.Mixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
