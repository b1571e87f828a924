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

// Package prefs provides a simple mechanism for storing preference values to
// disk. Preference types (Bool, Int, String) are registered with a Disk
// instance against a unique key. The file format is one entry per line:
//
//	key :: value
//
// Unrecognised keys in the file are ignored, allowing preference files to be
// shared between versions of the program.
package prefs

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/logger"
)

// the string that separates the key from the value in the preferences file.
const keySep = " :: "

// WarnNoPrefs is the error pattern returned by Load() when the preferences
// file does not exist. Callers will often want to treat this as a warning
// rather than an error.
const WarnNoPrefs = "prefs: no preferences file (%s)"

// Disk represents preference values that are stored to disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference entry to list of entries to be saved/loaded from disk.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return curated.Errorf("prefs: invalid key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: duplicate key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// sorted keys gives the preferences file a stable ordering.
func (dsk *Disk) keys() []string {
	k := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	for _, key := range dsk.keys() {
		_, err := io.WriteString(f, key+keySep+dsk.entries[key].String()+"\n")
		if err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	return nil
}

// Load preference values from disk. Keys in the file that have not been
// added to the Disk instance are ignored.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return curated.Errorf(WarnNoPrefs, dsk.path)
		}
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := strings.SplitN(scanner.Text(), keySep, 2)
		if len(s) != 2 {
			continue
		}

		p, ok := dsk.entries[s[0]]
		if !ok {
			logger.Logf("prefs", "unrecognised key (%s) in %s", s[0], dsk.path)
			continue
		}

		if err := p.Set(s[1]); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}
