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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/hardware/memory"
	"github.com/jetsetilly/beastboard/test"
)

func TestRegion(t *testing.T) {
	rom := memory.NewRegion("test_rom", []byte{0x01, 0x02, 0x03, 0x04})
	test.ExpectEquality(t, rom.Label(), "test_rom")
	test.ExpectEquality(t, rom.Size(), 4)
	test.ExpectSuccess(t, rom.ReadOnly())

	ram := memory.NewRAM("test_ram", 16)
	test.ExpectEquality(t, ram.Size(), 16)
	test.ExpectFailure(t, ram.ReadOnly())
	test.ExpectEquality(t, ram.Data()[0], byte(0))
}

func TestSlice(t *testing.T) {
	rom := memory.NewRegion("test_rom", []byte{0x01, 0x02, 0x03, 0x04})

	s, err := rom.Slice(1, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(s), 2)
	test.ExpectEquality(t, s[0], byte(0x02))

	// out of range slices are configuration errors
	_, err = rom.Slice(2, 3)
	test.ExpectFailure(t, err)
	_, err = rom.Slice(-1, 2)
	test.ExpectFailure(t, err)
}
