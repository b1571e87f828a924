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

// Package monitor is an interactive inspector for a board. It steps the
// emulation by quanta or by frames and exposes the coordination fabric:
// latch contents, bank selections, interrupt line states, bus contents.
//
// It is not a CPU debugger. The attached cores are outside the session
// model and the monitor knows nothing of their registers; what it shows is
// the fabric between them, which for the boards this project emulates is
// where the interesting behaviour lives.
package monitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/rewind"
)

// Monitor is an interactive inspector attached to a board.
type Monitor struct {
	board *hardware.Board
	term  Terminal

	// rewind history. nil for boards without a raster
	rwnd *rewind.Rewind

	// set by the QUIT command
	quit bool
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(board *hardware.Board, term Terminal) (*Monitor, error) {
	m := &Monitor{
		board: board,
		term:  term,
	}

	if board.Raster != nil {
		r, err := rewind.NewRewind(board)
		if err != nil {
			return nil, curated.Errorf("monitor: %v", err)
		}
		m.rwnd = r
	}

	return m, nil
}

func (m *Monitor) prompt() string {
	if m.board.Raster == nil {
		return "[" + m.board.Label + "] >> "
	}
	frame, scanline := m.board.Raster.Coords()
	return fmt.Sprintf("[%s %d/%d] >> ", m.board.Label, frame, scanline)
}

// Run the monitor command loop until QUIT, end of input or an error that
// isn't the result of a bad command line.
func (m *Monitor) Run() error {
	defer m.term.CleanUp()

	m.term.Print("%s monitor. type HELP for commands\n", m.board.Label)

	for !m.quit {
		line, err := m.term.ReadLine(m.prompt())
		if err != nil {
			if curated.Is(err, UserInterrupt) {
				m.term.Print("use QUIT to leave the monitor\n")
				continue
			}
			if err == io.EOF {
				return nil
			}
			return curated.Errorf("monitor: %v", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		// command errors are reported to the terminal, not returned
		if err := m.parseCommand(line); err != nil {
			m.term.Print("error: %v\n", err)
		}
	}

	return nil
}
