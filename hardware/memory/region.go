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

// Package memory defines the MemoryRegion type referenced by the bank and
// bus packages. A region is a named byte buffer, immutable in the case of
// ROM. Regions are constructed once at board creation and referenced, never
// owned, by the components that map them.
package memory

import (
	"hash/crc32"

	"github.com/jetsetilly/beastboard/curated"
)

// Region is a named byte buffer. ROM regions are immutable by convention;
// nothing in the region type enforces this beyond the read-only flag, which
// the bus respects when a region is mapped for writing.
type Region struct {
	label    string
	data     []byte
	readOnly bool

	// crc of the data at creation. provenance information only; it plays no
	// part in emulation
	crc uint32
}

// NewRegion creates a read-only region from existing data. The data is
// referenced, not copied.
func NewRegion(label string, data []byte) *Region {
	return &Region{
		label:    label,
		data:     data,
		readOnly: true,
		crc:      crc32.ChecksumIEEE(data),
	}
}

// NewRAM creates a mutable region of the specified size, zeroed.
func NewRAM(label string, size int) *Region {
	return &Region{
		label: label,
		data:  make([]byte, size),
	}
}

// Label returns the name the region was created with.
func (r *Region) Label() string {
	return r.label
}

// Size of the region in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// ReadOnly returns true if the region is ROM.
func (r *Region) ReadOnly() bool {
	return r.readOnly
}

// CRC of the region data at creation time.
func (r *Region) CRC() uint32 {
	return r.crc
}

// Data exposes the region's backing buffer.
func (r *Region) Data() []byte {
	return r.data
}

// Slice returns a window into the region. An out-of-range window is a
// configuration error.
func (r *Region) Slice(offset int, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(r.data) {
		return nil, curated.Errorf("memory: %s: slice [%#x:%#x] outside region of size %#x",
			r.label, offset, offset+length, len(r.data))
	}
	return r.data[offset : offset+length], nil
}
