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

// Package timing provides the deterministic clock sources that drive
// interrupts across the board: the raster, counting scanlines of the video
// signal, and free-running periodic timers for boards whose interrupts are
// not raster-synchronised.
//
// Neither source measures real time. Both are advanced by the board
// scheduler in step with CPU execution, which is what makes whole-board
// emulation deterministic.
package timing

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/session"
)

// Geometry describes the video timing of a board.
type Geometry struct {
	// frame refresh rate
	RefreshHz float64

	// total scanlines per frame, including blanking
	Scanlines int

	// the range of visible scanlines
	VisibleTop    int
	VisibleBottom int
}

// VBlank returns the scanline on which the vertical blanking period begins.
func (g Geometry) VBlank() int {
	return g.VisibleBottom + 1
}

// ScanlinesPerSecond for this geometry.
func (g Geometry) ScanlinesPerSecond() int {
	return int(g.RefreshHz * float64(g.Scanlines))
}

// HookFunc is called when a raster hook or timer fires.
type HookFunc func()

// a hook registered at a fixed scanline.
type scanlineHook struct {
	scanline int
	fire     HookFunc
}

// Raster traverses the scanlines of the video signal, firing hooks at
// configured scanlines. Each hook fires exactly once per frame, and hooks
// fire in increasing scanline order within the frame.
type Raster struct {
	geom Geometry

	frame    int
	scanline int

	// sparse list of hooks, in registration order per scanline. the list is
	// fixed after board creation
	hooks []scanlineHook

	// hooks fired at the start of every frame (scanline wrap)
	frameHooks []HookFunc
}

// NewRaster is the preferred method of initialisation for the Raster type.
func NewRaster(geom Geometry) (*Raster, error) {
	if geom.Scanlines <= 0 || geom.RefreshHz <= 0 {
		return nil, curated.Errorf("timing: invalid raster geometry (%d scanlines at %.2fHz)", geom.Scanlines, geom.RefreshHz)
	}
	if geom.VisibleTop < 0 || geom.VisibleBottom >= geom.Scanlines || geom.VisibleTop > geom.VisibleBottom {
		return nil, curated.Errorf("timing: invalid visible range (%d to %d)", geom.VisibleTop, geom.VisibleBottom)
	}
	return &Raster{
		geom: geom,
	}, nil
}

// Geometry returns the geometry the raster was created with.
func (r *Raster) Geometry() Geometry {
	return r.geom
}

// AtScanline registers a hook to fire when the raster reaches the given
// scanline. Registration is fixed at board creation.
func (r *Raster) AtScanline(scanline int, fire HookFunc) error {
	if scanline < 0 || scanline >= r.geom.Scanlines {
		return curated.Errorf("timing: hook scanline %d outside frame of %d scanlines", scanline, r.geom.Scanlines)
	}
	r.hooks = append(r.hooks, scanlineHook{scanline: scanline, fire: fire})
	return nil
}

// OnFrame registers a hook to fire at the start of every frame.
func (r *Raster) OnFrame(fire HookFunc) {
	r.frameHooks = append(r.frameHooks, fire)
}

// Tick advances the raster by one scanline, firing any hooks registered at
// the new position. On reaching the end of the frame the raster wraps to
// scanline zero of the next frame and frame hooks fire.
func (r *Raster) Tick() {
	r.scanline++
	if r.scanline >= r.geom.Scanlines {
		r.scanline = 0
		r.frame++
		for _, f := range r.frameHooks {
			f()
		}
	}

	for _, h := range r.hooks {
		if h.scanline == r.scanline {
			h.fire()
		}
	}
}

// Coords returns the current frame and scanline. Implements the
// random.Clock interface.
func (r *Raster) Coords() (int, int) {
	return r.frame, r.scanline
}

// Frame returns the current frame number.
func (r *Raster) Frame() int {
	return r.frame
}

// Scanline returns the current scanline number.
func (r *Raster) Scanline() int {
	return r.scanline
}

// Reset returns the raster to the top of frame zero. Hook registration is
// unaffected.
func (r *Raster) Reset() {
	r.frame = 0
	r.scanline = 0
}

// State implements the session.Stateful interface.
func (r *Raster) State(s *session.State) {
	s.Put("raster.frame", r.frame)
	s.Put("raster.scanline", r.scanline)
}

// SetState implements the session.Stateful interface.
func (r *Raster) SetState(s *session.State) error {
	frame, err := s.Get("raster.frame")
	if err != nil {
		return err
	}
	scanline, err := s.Get("raster.scanline")
	if err != nil {
		return err
	}
	if scanline < 0 || scanline >= r.geom.Scanlines {
		return curated.Errorf("timing: restored scanline %d outside frame", scanline)
	}
	r.frame = frame
	r.scanline = scanline
	return nil
}
