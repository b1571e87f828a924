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

// Package preferences collects the emulation preferences that alter how a
// board is built and run.
package preferences

import (
	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/paths"
	"github.com/jetsetilly/beastboard/prefs"
)

// filename of the preferences file.
const prefsFile = "beastboard.prefs"

// Preferences for the emulation.
type Preferences struct {
	dsk *prefs.Disk

	// initialise RAM blocks with random values rather than zeros at power
	// on. real hardware does not guarantee zeroed RAM
	RandomState prefs.Bool

	// log open bus accesses. useful when bringing up a new driver program,
	// noisy otherwise
	LogOpenBus prefs.Bool

	// save session state automatically when the emulation ends
	SaveOnExit prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	dsk, err := prefs.NewDisk(paths.ResourcePath(prefsFile))
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	p.dsk = dsk

	err = p.dsk.Add("hardware.randomState", &p.RandomState)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("hardware.logOpenBus", &p.LogOpenBus)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("hardware.saveOnExit", &p.SaveOnExit)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.dsk.Load()
	if err != nil {
		if curated.Is(err, prefs.WarnNoPrefs) {
			return p, nil
		}
		return nil, err
	}

	return p, nil
}

// Save current preference values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
