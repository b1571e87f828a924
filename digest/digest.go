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

// Package digest produces fingerprints of a board's audio-visual output.
// The Frame type attaches to the video hand-off, the Audio type to the
// sample stream. Fingerprints are chained: each new frame or audio chunk is
// hashed together with the previous fingerprint, so a single hash value
// pins down an entire run. Two runs with equal digests behaved identically,
// which is the basis of the determinism and regression tests.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
package digest

// Digest implementations compute a running fingerprint of emulation
// output.
type Digest interface {
	// Hash returns the current fingerprint as a hex string
	Hash() string

	// ResetDigest returns the fingerprint to its zero state
	ResetDigest()
}
