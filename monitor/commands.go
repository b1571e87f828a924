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
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/hardware/cpu"
	"github.com/jetsetilly/beastboard/hardware/memory/bus"
	"github.com/jetsetilly/beastboard/logger"
)

// help text for the HELP command, keyed by command name.
var helpText = map[string]string{
	"HELP":    "HELP [command]",
	"QUIT":    "QUIT the monitor",
	"RESET":   "RESET the board to its power-on state",
	"STEP":    "STEP [n] quanta (default 1)",
	"FRAME":   "FRAME [n] run for n frames (default 1)",
	"STATUS":  "STATUS of the coordination fabric",
	"CPU":     "CPU line states for every execution unit",
	"PEEK":    "PEEK <unit> [IO] <address>",
	"POKE":    "POKE <unit> [IO] <address> <value>",
	"SAVE":    "SAVE <file> the session state",
	"RESTORE": "RESTORE <file> a saved session state",
	"DUMP":    "DUMP <file> the board structure as graphviz dot",
	"REWIND":  "REWIND [frame] to an earlier frame's session state",
	"MARK":    "MARK the current state as the comparison point",
	"COMPARE": "COMPARE session state against the marked point",
	"LOG":     "LOG [n] show the last n log entries (default 10)",
}

func (m *Monitor) findSocket(label string) (*hardware.Socket, error) {
	for _, s := range m.board.Sockets() {
		if strings.EqualFold(s.Handle.Label(), label) {
			return s, nil
		}
	}
	return nil, curated.Errorf("no unit named %s", label)
}

// resolve the bus and address arguments of a PEEK/POKE. returns the
// remaining arguments.
func (m *Monitor) findBus(args []string) (*bus.Bus, uint16, []string, error) {
	if len(args) < 2 {
		return nil, 0, nil, curated.Errorf("not enough arguments")
	}

	s, err := m.findSocket(args[0])
	if err != nil {
		return nil, 0, nil, err
	}
	args = args[1:]

	b := s.Mem
	if strings.EqualFold(args[0], "IO") {
		b = s.IO
		args = args[1:]
		if len(args) < 1 {
			return nil, 0, nil, curated.Errorf("not enough arguments")
		}
	}
	if b == nil {
		return nil, 0, nil, curated.Errorf("%s has no such bus", s.Handle.Label())
	}

	addr, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		return nil, 0, nil, curated.Errorf("bad address (%s)", args[0])
	}

	return b, uint16(addr), args[1:], nil
}

func (m *Monitor) parseCommand(line string) error {
	tok := strings.Fields(line)
	cmd := strings.ToUpper(tok[0])
	args := tok[1:]

	switch cmd {
	case "HELP":
		if len(args) > 0 {
			h, ok := helpText[strings.ToUpper(args[0])]
			if !ok {
				return curated.Errorf("no such command (%s)", args[0])
			}
			m.term.Print("%s\n", h)
			return nil
		}
		keys := make([]string, 0, len(helpText))
		for k := range helpText {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m.term.Print("%s\n", strings.Join(keys, " "))

	case "QUIT", "Q":
		m.quit = true

	case "RESET":
		m.board.Reset()
		if m.rwnd != nil {
			m.rwnd.Reset()
		}
		m.term.Print("board reset\n")

	case "STEP":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf("bad quantum count (%s)", args[0])
			}
		}
		for i := 0; i < n; i++ {
			if err := m.board.Step(); err != nil {
				return err
			}
		}

	case "FRAME":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf("bad frame count (%s)", args[0])
			}
		}
		return m.board.RunForFrameCount(n, nil)

	case "STATUS":
		m.status()

	case "CPU":
		m.cpuStatus()

	case "PEEK":
		b, addr, _, err := m.findBus(args)
		if err != nil {
			return err
		}
		m.term.Print("%s %#04x -> %#02x\n", b.Label(), addr, b.Read(addr))

	case "POKE":
		b, addr, rest, err := m.findBus(args)
		if err != nil {
			return err
		}
		if len(rest) < 1 {
			return curated.Errorf("not enough arguments")
		}
		v, err := strconv.ParseUint(rest[0], 0, 8)
		if err != nil {
			return curated.Errorf("bad value (%s)", rest[0])
		}
		b.Write(addr, uint8(v))

	case "SAVE":
		if len(args) < 1 {
			return curated.Errorf("SAVE needs a filename")
		}
		f, err := os.Create(args[0])
		if err != nil {
			return curated.Errorf("%v", err)
		}
		defer f.Close()
		return m.board.Save(f)

	case "RESTORE":
		if len(args) < 1 {
			return curated.Errorf("RESTORE needs a filename")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return curated.Errorf("%v", err)
		}
		defer f.Close()
		return m.board.Restore(f)

	case "DUMP":
		if len(args) < 1 {
			return curated.Errorf("DUMP needs a filename")
		}
		f, err := os.Create(args[0])
		if err != nil {
			return curated.Errorf("%v", err)
		}
		defer f.Close()
		memviz.Map(f, m.board)
		m.term.Print("board structure written to %s\n", args[0])

	case "REWIND":
		if m.rwnd == nil {
			return curated.Errorf("no rewind history on this board")
		}
		if len(args) < 1 {
			lo, hi := m.rwnd.Range()
			m.term.Print("frames %d to %d available\n", lo, hi)
			return nil
		}
		frame, err := strconv.Atoi(args[0])
		if err != nil {
			return curated.Errorf("bad frame number (%s)", args[0])
		}
		return m.rwnd.GotoFrame(frame)

	case "MARK":
		if m.rwnd == nil {
			return curated.Errorf("no rewind history on this board")
		}
		m.rwnd.SetComparison()

	case "COMPARE":
		if m.rwnd == nil {
			return curated.Errorf("no rewind history on this board")
		}
		frame, err := m.rwnd.ComparisonFrame()
		if err != nil {
			return err
		}
		diff, err := m.rwnd.Compare()
		if err != nil {
			return err
		}
		m.term.Print("changed since frame %d:\n", frame)
		for _, name := range diff {
			m.term.Print("  %s\n", name)
		}

	case "LOG":
		n := 10
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf("bad entry count (%s)", args[0])
			}
		}
		s := &strings.Builder{}
		logger.Tail(s, n)
		m.term.Print("%s", s.String())

	default:
		return curated.Errorf("unknown command (%s)", cmd)
	}

	return nil
}

func (m *Monitor) status() {
	if m.board.Raster != nil {
		frame, scanline := m.board.Raster.Coords()
		m.term.Print("frame %d scanline %d\n", frame, scanline)
	}

	for _, l := range m.board.Latches() {
		pending := " "
		if l.Pending() {
			pending = "*"
		}
		m.term.Print("latch %-14s %#02x %s\n", l.Label(), l.Peek(), pending)
	}

	for _, w := range m.board.Banks() {
		m.term.Print("bank  %-14s entry %d\n", w.Label(), w.Active())
	}
}

func (m *Monitor) cpuStatus() {
	for _, s := range m.board.Sockets() {
		m.term.Print("%s (%dHz)\n", s.Handle.Label(), s.Handle.ClockHz())
		for i := cpu.Line(0); i < cpu.NumLines; i++ {
			if s.Handle.Held(i) {
				m.term.Print("  %s asserted\n", i.String())
			}
		}
	}
}
