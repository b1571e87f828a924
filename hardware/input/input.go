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

// Package input defines how player controls, coin switches and DIP banks
// reach the emulated hardware. The hardware side only ever samples a port;
// where the sampled value comes from (a fixed DIP setting, a script, an
// attached UI) is the caller's concern.
//
// Ports follow the active-low convention of the original switch wiring: a
// bit reads 1 when the switch is open and 0 when pressed.
package input

// Port is a single byte-wide input port sampled by the hardware.
type Port interface {
	Read() uint8
}

// PortFunc allows an ordinary function to be used as a Port.
type PortFunc func() uint8

// Read implements the Port interface.
func (f PortFunc) Read() uint8 {
	return f()
}

// Fixed is a Port that always reads the same value. Suitable for DIP
// switch banks and for unconnected ports.
type Fixed uint8

// Read implements the Port interface.
func (f Fixed) Read() uint8 {
	return uint8(f)
}

// Idle is the value of a port with no switches pressed.
const Idle = Fixed(0xff)
