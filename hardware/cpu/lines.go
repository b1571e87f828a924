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

package cpu

// Line identifies an interrupt/control input of an execution unit. The set
// below covers the CPU families found on the supported boards; a core is
// free to ignore lines its architecture doesn't have.
type Line int

// List of valid Line values.
const (
	IRQ Line = iota
	NMI
	FIRQ
	Reset
	NumLines
)

func (l Line) String() string {
	switch l {
	case IRQ:
		return "IRQ"
	case NMI:
		return "NMI"
	case FIRQ:
		return "FIRQ"
	case Reset:
		return "RESET"
	}
	return "unknown"
}

// Mode describes how a line assertion behaves over time.
type Mode int

// List of valid Mode values.
const (
	// line is asserted and stays asserted until an explicit Clear
	Assert Mode = iota

	// line is de-asserted
	Clear

	// line self-clears after one observed edge
	Pulse

	// line stays asserted until the core acknowledges it with Ack()
	HoldUntilAck
)

func (m Mode) String() string {
	switch m {
	case Assert:
		return "assert"
	case Clear:
		return "clear"
	case Pulse:
		return "pulse"
	case HoldUntilAck:
		return "hold"
	}
	return "unknown"
}

// lineState is the latched condition of a single input line.
type lineState struct {
	asserted bool
	pulse    bool
	hold     bool
	vector   uint8
}
