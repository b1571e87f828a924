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

// Package rewind keeps a history of the board's coordination state, one
// snapshot per video frame. A snapshot covers the session state only:
// bank selections, latch contents, line states, port shadows. RAM and the
// state of any attached cores are outside the session model, so plumbing
// an old snapshot back in rewinds the coordination fabric but not the
// programs running over it. That is sufficient for inspecting how the
// fabric arrived at a state, which is what the monitor uses it for.
package rewind

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/session"
)

// the maximum number of frame entries before the earliest are forgotten.
// the array carries an overhead of two entries to facilitate appending.
const overhead = 2
const maxFrames = 100
const maxEntries = maxFrames + overhead

type entry struct {
	frame int
	state *session.State
}

// Rewind maintains a per-frame history of a board's session state.
type Rewind struct {
	board *hardware.Board

	// circular array of snapshotted entries
	entries [maxEntries]*entry
	start   int
	end     int

	// the comparison point, if one has been set
	cmp *comparison
}

// NewRewind is the preferred method of initialisation for the Rewind type.
// The rewind attaches itself to the board's raster and snapshots on every
// new frame.
func NewRewind(board *hardware.Board) (*Rewind, error) {
	if board.Raster == nil {
		return nil, curated.Errorf("rewind: %s: board has no raster", board.Label)
	}

	r := &Rewind{
		board: board,
	}
	board.Raster.OnFrame(r.snapshot)
	r.Reset()

	return r, nil
}

// Reset forgets all history and snapshots the current state. This should be
// called whenever the board itself is reset.
func (r *Rewind) Reset() {
	r.start = 0
	r.end = 0
	for i := range r.entries {
		r.entries[i] = nil
	}
	r.snapshot()
}

func (r *Rewind) snapshot() {
	r.entries[r.end] = &entry{
		frame: r.board.Raster.Frame(),
		state: r.board.Snapshot(),
	}
	r.end = (r.end + 1) % maxEntries
	for r.NumEntries() > maxFrames {
		r.entries[r.start] = nil
		r.start = (r.start + 1) % maxEntries
	}
}

// NumEntries returns the number of frames in the history.
func (r *Rewind) NumEntries() int {
	n := r.end - r.start
	if n < 0 {
		n += maxEntries
	}
	return n
}

// Range returns the earliest and latest frame numbers in the history.
func (r *Rewind) Range() (int, int) {
	if r.start == r.end {
		return 0, 0
	}
	last := (r.end + maxEntries - 1) % maxEntries
	return r.entries[r.start].frame, r.entries[last].frame
}

func (r *Rewind) find(frame int) *entry {
	for i := r.start; i != r.end; i = (i + 1) % maxEntries {
		if r.entries[i].frame == frame {
			return r.entries[i]
		}
	}
	return nil
}

// Peek returns the snapshot for the given frame without disturbing the
// board.
func (r *Rewind) Peek(frame int) (*session.State, error) {
	e := r.find(frame)
	if e == nil {
		return nil, curated.Errorf("rewind: no snapshot for frame %d", frame)
	}
	return e.state, nil
}

// GotoFrame plumbs the snapshot for the given frame back into the board.
func (r *Rewind) GotoFrame(frame int) error {
	e := r.find(frame)
	if e == nil {
		return curated.Errorf("rewind: no snapshot for frame %d", frame)
	}
	return r.board.Plumb(e.state)
}
