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

// Package bank implements switchable memory windows. A Window exposes a
// fixed-size slice of a larger ROM/RAM region; which slice is visible is
// selected by index. Entries are configured once at board creation; only the
// active index changes at runtime.
//
// Select indices can be XOR-remapped with a per-window constant. This
// supports regional ROM revisions sharing one board definition; the Japan
// release of DJ Boy, for example, addresses the same 32 windows with every
// index bit flipped.
package bank

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/memory"
	"github.com/jetsetilly/beastboard/logger"
	"github.com/jetsetilly/beastboard/session"
)

// SelectPolicy says what happens when a select index is beyond the
// configured entry count.
type SelectPolicy int

// List of valid SelectPolicy values.
const (
	// out of range selects are ignored
	SelectNoOp SelectPolicy = iota

	// out of range selects clamp to the highest configured entry
	SelectClamp

	// out of range selects wrap modulo the entry count
	SelectWrap
)

// Window is a fixed-size view onto a larger memory region, switchable by
// index.
type Window struct {
	label  string
	size   int
	policy SelectPolicy

	// xor mask applied to the incoming select index before lookup. a
	// configuration constant, set at creation and never changed
	xor int

	// one slice per configured entry. entries may be sparse (nil) when the
	// board wires non-contiguous index ranges
	entries [][]byte

	active int
}

// NewWindow is the preferred method of initialisation for the Window type.
// The window size is fixed for the life of the window.
func NewWindow(label string, size int, policy SelectPolicy, xormask int) (*Window, error) {
	if size <= 0 {
		return nil, curated.Errorf("bank: %s: invalid window size (%#x)", label, size)
	}
	return &Window{
		label:  label,
		size:   size,
		policy: policy,
		xor:    xormask,
	}, nil
}

// Label returns the name the window was created with.
func (w *Window) Label() string {
	return w.label
}

// Size of the window in bytes.
func (w *Window) Size() int {
	return w.size
}

// Configure installs count entries numbered from startEntry. The first
// entry's data is at srcOffset in the source region, with subsequent entries
// following contiguously at window-size intervals.
//
// Configure may be called more than once to wire entry ranges from different
// parts of the source, or from different sources. Configuration errors are
// fatal: the caller should abort board creation.
func (w *Window) Configure(startEntry int, count int, src *memory.Region, srcOffset int) error {
	if startEntry < 0 || count <= 0 {
		return curated.Errorf("bank: %s: invalid entry range (%d, %d)", w.label, startEntry, count)
	}

	// validate the source range up front so a partial configuration is never
	// left behind
	if _, err := src.Slice(srcOffset, count*w.size); err != nil {
		return curated.Errorf("bank: %v", err)
	}

	// grow entry list to cover the new range
	for len(w.entries) < startEntry+count {
		w.entries = append(w.entries, nil)
	}

	for i := 0; i < count; i++ {
		if w.entries[startEntry+i] != nil {
			return curated.Errorf("bank: %s: entry %d configured twice", w.label, startEntry+i)
		}
		d, err := src.Slice(srcOffset+i*w.size, w.size)
		if err != nil {
			return curated.Errorf("bank: %v", err)
		}
		w.entries[startEntry+i] = d
	}

	return nil
}

// Select the active entry. The configured XOR mask is applied to the index
// before lookup; an index beyond the configured entries is resolved by the
// window's select policy.
func (w *Window) Select(index int) {
	index ^= w.xor

	if index < 0 || index >= len(w.entries) {
		switch w.policy {
		case SelectNoOp:
			logger.Logf("bank", "%s: select %d out of range, ignored", w.label, index)
			return
		case SelectClamp:
			index = len(w.entries) - 1
		case SelectWrap:
			index = ((index % len(w.entries)) + len(w.entries)) % len(w.entries)
		}
	}

	if w.entries[index] == nil {
		// a hole in a sparsely configured window. treated like an out of
		// range select with the no-op policy; the previous entry stays
		// visible
		logger.Logf("bank", "%s: select %d has no configured entry, ignored", w.label, index)
		return
	}

	w.active = index
}

// Active returns the index of the currently visible entry.
func (w *Window) Active() int {
	return w.active
}

// Read the byte at offset in the active entry.
func (w *Window) Read(offset int) (uint8, error) {
	if offset < 0 || offset >= w.size {
		return 0, curated.Errorf("bank: %s: read offset %#x outside window of size %#x", w.label, offset, w.size)
	}
	return w.entries[w.active][offset], nil
}

// Data exposes the active entry for inspection.
func (w *Window) Data() []byte {
	return w.entries[w.active]
}

// State implements the session.Stateful interface. Only the active index is
// mutable; entry configuration is rebuilt from the board definition, not
// from saved state.
func (w *Window) State(s *session.State) {
	s.Put(w.label+".active", w.active)
}

// SetState implements the session.Stateful interface.
func (w *Window) SetState(s *session.State) error {
	active, err := s.Get(w.label + ".active")
	if err != nil {
		return err
	}
	if active < 0 || active >= len(w.entries) || w.entries[active] == nil {
		return curated.Errorf("bank: %s: restored index %d has no configured entry", w.label, active)
	}
	w.active = active
	return nil
}
