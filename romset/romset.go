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

// Package romset builds the named memory regions a board catalog entry
// expects from a directory of ROM dump files. A region definition lists the
// files that fill the region, where they land and the CRC32 of a known-good
// dump.
//
// Wrong-size files abort the load: a short region would change emulation
// behaviour in confusing ways. A CRC mismatch is only logged; it marks the
// dump as unverified but plenty of working dumps differ from the reference
// checksums.
package romset

import (
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/memory"
	"github.com/jetsetilly/beastboard/logger"
)

// File is one ROM dump file within a region.
type File struct {
	Name   string
	Offset int
	Size   int
	CRC    uint32
}

// RegionDef describes how a named region is assembled from files.
type RegionDef struct {
	Name  string
	Size  int
	Files []File
}

// Collection is the set of loaded regions, indexed by name.
type Collection map[string]*memory.Region

// Region returns a named region from the collection. A missing region is a
// configuration error: the caller's region definitions did not match what
// the board catalog expects.
func (c Collection) Region(name string) (*memory.Region, error) {
	r, ok := c[name]
	if !ok {
		return nil, curated.Errorf("romset: no region named %s", name)
	}
	return r, nil
}

// Load the defined regions from files in dir.
func Load(dir string, defs []RegionDef) (Collection, error) {
	c := make(Collection)

	for _, def := range defs {
		data := make([]byte, def.Size)

		for _, f := range def.Files {
			d, err := os.ReadFile(filepath.Join(dir, f.Name))
			if err != nil {
				return nil, curated.Errorf("romset: %s: %v", def.Name, err)
			}

			if len(d) != f.Size {
				return nil, curated.Errorf("romset: %s: %s is %#x bytes, expected %#x",
					def.Name, f.Name, len(d), f.Size)
			}
			if f.Offset+f.Size > def.Size {
				return nil, curated.Errorf("romset: %s: %s extends beyond region of %#x bytes",
					def.Name, f.Name, def.Size)
			}

			if crc := crc32.ChecksumIEEE(d); crc != f.CRC {
				logger.Logf("romset", "%s: crc %08x, expected %08x (unverified dump)", f.Name, crc, f.CRC)
			}

			copy(data[f.Offset:], d)
		}

		c[def.Name] = memory.NewRegion(def.Name, data)
	}

	return c, nil
}

// Empty builds the defined regions as zero-filled buffers. Used by test
// harnesses and by the monitor when poking at a board without a romset.
func Empty(defs []RegionDef) Collection {
	c := make(Collection)
	for _, def := range defs {
		c[def.Name] = memory.NewRegion(def.Name, make([]byte, def.Size))
	}
	return c
}
