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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/digest"
	"github.com/jetsetilly/beastboard/test"
)

func TestFrameChaining(t *testing.T) {
	sprites := make([]byte, 0x1000)
	palette := make([]byte, 0x400)

	dig := digest.NewFrame()
	zero := dig.Hash()

	test.ExpectSuccess(t, dig.NewFrame(0, sprites, palette))
	one := dig.Hash()
	test.ExpectEquality(t, one == zero, false)

	// identical input hashes differently because the previous fingerprint
	// is chained in
	test.ExpectSuccess(t, dig.NewFrame(1, sprites, palette))
	test.ExpectEquality(t, dig.Hash() == one, false)
	test.ExpectEquality(t, dig.FrameNum(), 1)

	// two separate runs over the same frames agree
	cmp := digest.NewFrame()
	test.ExpectSuccess(t, cmp.NewFrame(0, sprites, palette))
	test.ExpectSuccess(t, cmp.NewFrame(1, sprites, palette))
	test.ExpectEquality(t, cmp.Hash(), dig.Hash())

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
}

func TestAudioChaining(t *testing.T) {
	dig := digest.NewAudio()
	zero := dig.Hash()

	test.ExpectSuccess(t, dig.SetAudio([]uint8{0x80, 0x81, 0x82}))
	one := dig.Hash()
	test.ExpectEquality(t, one == zero, false)

	test.ExpectSuccess(t, dig.SetAudio([]uint8{0x80, 0x81, 0x82}))
	test.ExpectEquality(t, dig.Hash() == one, false)

	// chunking equal streams identically gives equal digests
	cmp := digest.NewAudio()
	test.ExpectSuccess(t, cmp.SetAudio([]uint8{0x80, 0x81, 0x82}))
	test.ExpectSuccess(t, cmp.SetAudio([]uint8{0x80, 0x81, 0x82}))
	test.ExpectEquality(t, cmp.Hash(), dig.Hash())

	test.ExpectSuccess(t, dig.EndMixing())
}
