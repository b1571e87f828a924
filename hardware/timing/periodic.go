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

package timing

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/session"
)

// Periodic fires a hook at a fixed frequency independent of raster
// position. Used by boards without scanline-synchronised interrupts; the
// Whitestar sound board's 489Hz FIRQ is the canonical example.
type Periodic struct {
	label string
	hz    int
	fire  HookFunc

	// fractional accumulator in units of 1/quantumHz seconds
	accum int
}

// NewPeriodic is the preferred method of initialisation for the Periodic
// type.
func NewPeriodic(label string, hz int, fire HookFunc) (*Periodic, error) {
	if hz <= 0 {
		return nil, curated.Errorf("timing: %s: invalid frequency (%dHz)", label, hz)
	}
	return &Periodic{
		label: label,
		hz:    hz,
		fire:  fire,
	}, nil
}

// Label returns the name the timer was created with.
func (p *Periodic) Label() string {
	return p.label
}

// Advance the timer by one scheduling quantum of 1/quantumHz seconds,
// firing the hook as many times as fall within the quantum. Over quantumHz
// consecutive quanta (one second) the hook fires exactly hz times.
func (p *Periodic) Advance(quantumHz int) {
	p.accum += p.hz
	for p.accum >= quantumHz {
		p.accum -= quantumHz
		p.fire()
	}
}

// Reset the timer's accumulator.
func (p *Periodic) Reset() {
	p.accum = 0
}

// State implements the session.Stateful interface.
func (p *Periodic) State(s *session.State) {
	s.Put(p.label+".accum", p.accum)
}

// SetState implements the session.Stateful interface.
func (p *Periodic) SetState(s *session.State) error {
	accum, err := s.Get(p.label + ".accum")
	if err != nil {
		return err
	}
	p.accum = accum
	return nil
}
