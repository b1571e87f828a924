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

// Package session implements save and restore of the mutable coordination
// state of an emulated board: bank selections, latch values and pending
// flags, peripheral port shadows, video registers and the like.
//
// State is a flat list of named scalar fields. The list is order-independent
// and restorable without replaying any emulation history. Components that
// contribute to the session state implement the Stateful interface.
//
// The on-disk format follows the preferences file format used elsewhere in
// the project: one "key :: value" entry per line.
package session

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/beastboard/curated"
)

// the string that separates the key from the value in a saved session.
const keySep = " :: "

// Stateful components contribute named scalar fields to a session State.
type Stateful interface {
	// State records the component's mutable fields in the State instance
	State(s *State)

	// SetState restores the component's mutable fields from the State
	// instance. Fields are looked up by name; missing fields are an error
	SetState(s *State) error
}

// State is a flat collection of named scalar fields.
type State struct {
	fields map[string]int
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	return &State{
		fields: make(map[string]int),
	}
}

// Put adds a named integer field to the state.
func (s *State) Put(name string, value int) {
	s.fields[name] = value
}

// PutBool adds a named boolean field to the state.
func (s *State) PutBool(name string, value bool) {
	v := 0
	if value {
		v = 1
	}
	s.fields[name] = v
}

// Get returns a named integer field. An error is returned if the field is
// not present.
func (s *State) Get(name string) (int, error) {
	v, ok := s.fields[name]
	if !ok {
		return 0, curated.Errorf("session: no such field (%s)", name)
	}
	return v, nil
}

// GetBool returns a named boolean field. An error is returned if the field
// is not present.
func (s *State) GetBool(name string) (bool, error) {
	v, err := s.Get(name)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Size returns the number of fields in the state.
func (s *State) Size() int {
	return len(s.fields)
}

// Equal returns true if both states contain exactly the same fields with the
// same values.
func (s *State) Equal(cmp *State) bool {
	if len(s.fields) != len(cmp.fields) {
		return false
	}
	for k, v := range s.fields {
		w, ok := cmp.fields[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}

// Diff returns the names of fields that differ between the two states,
// including fields present in only one of them. Names are sorted.
func (s *State) Diff(cmp *State) []string {
	d := make([]string, 0)
	for k, v := range s.fields {
		w, ok := cmp.fields[k]
		if !ok || v != w {
			d = append(d, k)
		}
	}
	for k := range cmp.fields {
		if _, ok := s.fields[k]; !ok {
			d = append(d, k)
		}
	}
	sort.Strings(d)
	return d
}

// sorted field names give the saved session a stable ordering. ordering is a
// convenience for the reader; restore does not depend on it.
func (s *State) names() []string {
	n := make([]string, 0, len(s.fields))
	for name := range s.fields {
		n = append(n, name)
	}
	sort.Strings(n)
	return n
}

// Write the state to the io.Writer.
func (s *State) Write(output io.Writer) error {
	for _, name := range s.names() {
		_, err := io.WriteString(output, fmt.Sprintf("%s%s%d\n", name, keySep, s.fields[name]))
		if err != nil {
			return curated.Errorf("session: %v", err)
		}
	}
	return nil
}

// Read a previously written state from the io.Reader. Fields accumulate onto
// any fields already in the State.
func (s *State) Read(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		p := strings.SplitN(line, keySep, 2)
		if len(p) != 2 {
			return curated.Errorf("session: unreadable line (%s)", line)
		}

		v, err := strconv.Atoi(p[1])
		if err != nil {
			return curated.Errorf("session: field %s: %v", p[0], err)
		}

		s.fields[p[0]] = v
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("session: %v", err)
	}

	return nil
}
