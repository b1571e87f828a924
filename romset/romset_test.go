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
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/beastboard/romset"
	"github.com/jetsetilly/beastboard/test"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	a := []byte{0x01, 0x02, 0x03, 0x04}
	b := []byte{0x11, 0x12, 0x13, 0x14}
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "a.bin"), a, 0644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "b.bin"), b, 0644))

	defs := []romset.RegionDef{
		{Name: "cpu", Size: 8, Files: []romset.File{
			{Name: "a.bin", Offset: 0, Size: 4, CRC: crc32.ChecksumIEEE(a)},
			{Name: "b.bin", Offset: 4, Size: 4, CRC: crc32.ChecksumIEEE(b)},
		}},
	}

	c, err := romset.Load(dir, defs)
	test.DemandSuccess(t, err)

	r, err := c.Region("cpu")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size(), 8)
	test.ExpectEquality(t, r.Data()[0], byte(0x01))
	test.ExpectEquality(t, r.Data()[4], byte(0x11))

	_, err = c.Region("nonsuch")
	test.ExpectFailure(t, err)
}

func TestLoadSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "short.bin"), []byte{0x01}, 0644))

	// a wrong-size file is fatal
	defs := []romset.RegionDef{
		{Name: "cpu", Size: 8, Files: []romset.File{
			{Name: "short.bin", Offset: 0, Size: 4, CRC: 0},
		}},
	}
	_, err := romset.Load(dir, defs)
	test.ExpectFailure(t, err)

	// a missing file is fatal
	defs[0].Files[0].Name = "nonsuch.bin"
	_, err = romset.Load(dir, defs)
	test.ExpectFailure(t, err)
}

func TestLoadCRCMismatchIsWarning(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{0x01, 0x02}, 0644))

	// a wrong checksum loads anyway
	defs := []romset.RegionDef{
		{Name: "cpu", Size: 2, Files: []romset.File{
			{Name: "a.bin", Offset: 0, Size: 2, CRC: 0xdeadbeef},
		}},
	}
	c, err := romset.Load(dir, defs)
	test.ExpectSuccess(t, err)

	r, err := c.Region("cpu")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Data()[1], byte(0x02))
}

func TestEmpty(t *testing.T) {
	c := romset.Empty([]romset.RegionDef{{Name: "cpu", Size: 0x100}})

	r, err := c.Region("cpu")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size(), 0x100)
	test.ExpectEquality(t, r.Data()[0], byte(0x00))
}
