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

package rewind

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/session"
)

// Comparison point support. The monitor marks a frame of interest and asks
// later which session fields have moved since.

type comparison struct {
	frame int
	state *session.State
}

// SetComparison marks the board's current state as the comparison point.
func (r *Rewind) SetComparison() {
	r.cmp = &comparison{
		frame: r.board.Raster.Frame(),
		state: r.board.Snapshot(),
	}
}

// ClearComparison removes the comparison point.
func (r *Rewind) ClearComparison() {
	r.cmp = nil
}

// ComparisonFrame returns the frame number of the comparison point, or an
// error if no point has been set.
func (r *Rewind) ComparisonFrame() (int, error) {
	if r.cmp == nil {
		return 0, curated.Errorf("rewind: no comparison point")
	}
	return r.cmp.frame, nil
}

// Compare returns the names of the session fields that have changed since
// the comparison point.
func (r *Rewind) Compare() ([]string, error) {
	if r.cmp == nil {
		return nil, curated.Errorf("rewind: no comparison point")
	}
	return r.board.Snapshot().Diff(r.cmp.state), nil
}
