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

// Package sound models the sound-facing devices of the boards: the YM2203
// register interface, the OKI M6295 sample players and the BSMT2000
// register latch pair. No synthesis happens here. Each device maintains the
// register protocol a driver program expects and, for the sample players,
// streams raw sample bytes to a Mixer.
package sound

// Mixer is the destination for the sample stream. Samples are unsigned
// 8-bit, mono, at the sample player's native rate.
type Mixer interface {
	SetAudio(samples []uint8) error
	EndMixing() error
}

// value of an undriven sample line.
const Silence = uint8(0x80)
