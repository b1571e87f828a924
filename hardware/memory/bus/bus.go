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

// Package bus implements the per-CPU address dispatch table. Address ranges
// are registered at board creation against one of a closed set of targets:
// a plain memory block, a bank window, or a register handler pair. Lookup at
// access time is a binary search over the sorted ranges.
//
// Ranges must not overlap; an overlapping registration is a configuration
// error and board creation should abort. An access that matches no range is
// "open bus": reads resolve to a per-bus fallback value and writes are
// discarded. Which fallback applies varies by hardware generation so it is a
// per-bus configuration constant.
package bus

import (
	"sort"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/memory/bank"
	"github.com/jetsetilly/beastboard/logger"
)

// OpenBusPolicy selects the value returned by a read of an unmapped
// address.
type OpenBusPolicy int

// List of valid OpenBusPolicy values.
const (
	// unmapped reads return 0xff, the value of undriven pulled-up data lines
	OpenBusFF OpenBusPolicy = iota

	// unmapped reads return 0x00
	OpenBusZero

	// unmapped reads return the last value successfully decoded on the bus
	OpenBusLast
)

// ReadFunc is the read half of a register target. The address passed is
// relative to the start of the registered range.
type ReadFunc func(offset uint16) uint8

// WriteFunc is the write half of a register target.
type WriteFunc func(offset uint16, value uint8)

// the closed set of target kinds. dispatch is a single switch on this tag.
type targetKind int

const (
	kindMem targetKind = iota
	kindBank
	kindReg
)

// region is a registered address range and its target.
type region struct {
	lo, hi uint16
	kind   targetKind

	// kindMem. writable says whether the block accepts writes (RAM vs ROM)
	mem      []byte
	writable bool

	// kindBank
	bank *bank.Window

	// kindReg. either func may be nil for a write-only or read-only register
	read  ReadFunc
	write WriteFunc
}

// Bus is one CPU's view of its address space. A CPU with a separate I/O
// space (the Z80s on these boards) has two Bus instances.
type Bus struct {
	label string

	// global address mask applied before range lookup. 0xffff for a full
	// memory space, 0xff for a Z80 I/O port space
	mask uint16

	policy OpenBusPolicy

	// whether undecoded accesses are logged. games lean on open bus reads
	// constantly so this is off unless asked for
	logUndecoded bool

	// the last value successfully decoded. the OpenBusLast fallback value
	last uint8

	// sorted by lo for binary search
	regions []region
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(label string, mask uint16, policy OpenBusPolicy) *Bus {
	return &Bus{
		label:  label,
		mask:   mask,
		policy: policy,
	}
}

// Label returns the name the bus was created with.
func (b *Bus) Label() string {
	return b.label
}

// LogUndecoded enables diagnostic logging of accesses that decode to no
// target.
func (b *Bus) LogUndecoded(enabled bool) {
	b.logUndecoded = enabled
}

// insert a region keeping the list sorted. overlapping ranges are a
// configuration error.
func (b *Bus) insert(r region) error {
	if r.hi < r.lo {
		return curated.Errorf("bus: %s: range [%#x, %#x] is inverted", b.label, r.lo, r.hi)
	}
	if r.hi > b.mask {
		return curated.Errorf("bus: %s: range [%#x, %#x] outside masked address space (%#x)", b.label, r.lo, r.hi, b.mask)
	}

	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].lo > r.lo
	})

	// check neighbours for overlap
	if i > 0 && b.regions[i-1].hi >= r.lo {
		return curated.Errorf("bus: %s: range [%#x, %#x] overlaps [%#x, %#x]",
			b.label, r.lo, r.hi, b.regions[i-1].lo, b.regions[i-1].hi)
	}
	if i < len(b.regions) && b.regions[i].lo <= r.hi {
		return curated.Errorf("bus: %s: range [%#x, %#x] overlaps [%#x, %#x]",
			b.label, r.lo, r.hi, b.regions[i].lo, b.regions[i].hi)
	}

	b.regions = append(b.regions, region{})
	copy(b.regions[i+1:], b.regions[i:])
	b.regions[i] = r

	return nil
}

// RAM registers a read-write memory block. The block must be at least as
// large as the address range.
func (b *Bus) RAM(lo, hi uint16, mem []byte) error {
	if len(mem) < int(hi-lo)+1 {
		return curated.Errorf("bus: %s: block of %#x bytes too small for range [%#x, %#x]", b.label, len(mem), lo, hi)
	}
	return b.insert(region{lo: lo, hi: hi, kind: kindMem, mem: mem, writable: true})
}

// ROM registers a read-only memory block.
func (b *Bus) ROM(lo, hi uint16, mem []byte) error {
	if len(mem) < int(hi-lo)+1 {
		return curated.Errorf("bus: %s: block of %#x bytes too small for range [%#x, %#x]", b.label, len(mem), lo, hi)
	}
	return b.insert(region{lo: lo, hi: hi, kind: kindMem, mem: mem})
}

// Bank registers a switchable bank window. Reads resolve through the
// window's active entry; writes are discarded (the windows on these boards
// are all ROM).
func (b *Bus) Bank(lo, hi uint16, w *bank.Window) error {
	if w.Size() < int(hi-lo)+1 {
		return curated.Errorf("bus: %s: window %s of %#x bytes too small for range [%#x, %#x]",
			b.label, w.Label(), w.Size(), lo, hi)
	}
	return b.insert(region{lo: lo, hi: hi, kind: kindBank, bank: w})
}

// Reg registers a device register handler. Either function may be nil,
// giving a write-only or read-only register. Addresses passed to the
// handlers are relative to lo.
func (b *Bus) Reg(lo, hi uint16, read ReadFunc, write WriteFunc) error {
	if read == nil && write == nil {
		return curated.Errorf("bus: %s: register range [%#x, %#x] has no handlers", b.label, lo, hi)
	}
	return b.insert(region{lo: lo, hi: hi, kind: kindReg, read: read, write: write})
}

// lookup the region containing addr. returns nil if no range matches.
func (b *Bus) lookup(addr uint16) *region {
	// index of the first region starting after addr; the candidate is the
	// region before it
	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].lo > addr
	})
	if i == 0 {
		return nil
	}
	r := &b.regions[i-1]
	if addr > r.hi {
		return nil
	}
	return r
}

// the open bus fallback for a read that decoded nothing.
func (b *Bus) openBus(addr uint16) uint8 {
	if b.logUndecoded {
		logger.Logf("bus", "%s: open bus read of %#04x", b.label, addr)
	}

	switch b.policy {
	case OpenBusFF:
		return 0xff
	case OpenBusZero:
		return 0x00
	case OpenBusLast:
		return b.last
	}
	return 0xff
}

// Read dispatches a read access to the matching target.
func (b *Bus) Read(addr uint16) uint8 {
	addr &= b.mask

	r := b.lookup(addr)
	if r == nil {
		return b.openBus(addr)
	}

	var v uint8

	switch r.kind {
	case kindMem:
		v = r.mem[addr-r.lo]
	case kindBank:
		var err error
		v, err = r.bank.Read(int(addr - r.lo))
		if err != nil {
			return b.openBus(addr)
		}
	case kindReg:
		if r.read == nil {
			// a write-only register reads as open bus
			return b.openBus(addr)
		}
		v = r.read(addr - r.lo)
	}

	b.last = v
	return v
}

// Write dispatches a write access to the matching target. Writes that land
// on no target, or on a read-only target, are silently discarded as the
// hardware would.
func (b *Bus) Write(addr uint16, value uint8) {
	addr &= b.mask

	r := b.lookup(addr)
	if r == nil {
		if b.logUndecoded {
			logger.Logf("bus", "%s: open bus write of %#02x to %#04x", b.label, value, addr)
		}
		return
	}

	switch r.kind {
	case kindMem:
		if !r.writable {
			logger.Logf("bus", "%s: write of %#02x to rom at %#04x", b.label, value, addr)
			return
		}
		r.mem[addr-r.lo] = value
	case kindBank:
		logger.Logf("bus", "%s: write of %#02x to bank window at %#04x", b.label, value, addr)
	case kindReg:
		if r.write == nil {
			logger.Logf("bus", "%s: write of %#02x to read-only register at %#04x", b.label, value, addr)
			return
		}
		r.write(addr-r.lo, value)
	}

	b.last = value
}
