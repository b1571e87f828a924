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

package monitor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// sentinel error strings for terminal input.
const (
	// the user pressed ctrl-c at the prompt
	UserInterrupt = "user interrupt"
)

// Terminal defines the operations the monitor command loop requires of its
// user interface.
type Terminal interface {
	// ReadLine presents the prompt and returns one line of user input.
	// io.EOF indicates that input is exhausted
	ReadLine(prompt string) (string, error)

	// Print formatted output to the terminal
	Print(format string, a ...interface{})

	// CleanUp restores any terminal state changed during use
	CleanUp()
}

// PlainTerminal is the simplest implementation of the Terminal interface.
// No line editing beyond what the io.Reader provides. Suitable for piped
// input and for tests.
type PlainTerminal struct {
	input  *bufio.Reader
	output io.Writer
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	return &PlainTerminal{
		input:  bufio.NewReader(input),
		output: output,
	}
}

// ReadLine implements the Terminal interface.
func (pt *PlainTerminal) ReadLine(prompt string) (string, error) {
	pt.Print("%s", prompt)

	s, err := pt.input.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(s) != "" {
			// allow a final line with no trailing newline
			return strings.TrimSpace(s), nil
		}
		return "", err
	}

	return strings.TrimSpace(s), nil
}

// Print implements the Terminal interface.
func (pt *PlainTerminal) Print(format string, a ...interface{}) {
	fmt.Fprintf(pt.output, format, a...)
}

// CleanUp implements the Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}
