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
	"fmt"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jetsetilly/beastboard/curated"
)

// key codes handled by the line editor.
const (
	keyCtrlC          = 3
	keyCtrlD          = 4
	keyBackspace      = 8
	keyCarriageReturn = 13
	keyNewline        = 10
	keyEsc            = 27
	keyDel            = 127
)

// EasyTerm implements the Terminal interface over a real tty. Input is
// taken in cbreak mode so keystrokes can be handled individually; the
// canonical attributes are restored on CleanUp and around every ReadLine.
type EasyTerm struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	history []string
}

// NewEasyTerm is the preferred method of initialisation for the EasyTerm
// type.
func NewEasyTerm(input *os.File, output *os.File) (*EasyTerm, error) {
	et := &EasyTerm{
		input:  input,
		output: output,
	}

	err := termios.Tcgetattr(input.Fd(), &et.canAttr)
	if err != nil {
		return nil, curated.Errorf("easyterm: %v", err)
	}
	et.cbreakAttr = et.canAttr
	termios.Cfmakecbreak(&et.cbreakAttr)

	return et, nil
}

func (et *EasyTerm) cbreakMode() {
	_ = termios.Tcsetattr(et.input.Fd(), termios.TCIFLUSH, &et.cbreakAttr)
}

func (et *EasyTerm) canonicalMode() {
	_ = termios.Tcsetattr(et.input.Fd(), termios.TCIFLUSH, &et.canAttr)
}

// CleanUp implements the Terminal interface.
func (et *EasyTerm) CleanUp() {
	et.canonicalMode()
}

// Print implements the Terminal interface.
func (et *EasyTerm) Print(format string, a ...interface{}) {
	fmt.Fprintf(et.output, format, a...)
	_ = et.output.Sync()
}

// ReadLine implements the Terminal interface. A small line editor:
// backspace works, ctrl-c interrupts, ctrl-d on an empty line is EOF and
// the up/down arrows walk the command history.
func (et *EasyTerm) ReadLine(prompt string) (string, error) {
	et.cbreakMode()
	defer et.canonicalMode()

	et.Print("%s", prompt)

	line := make([]byte, 0, 64)
	histIdx := len(et.history)

	// redraw the current line in place
	redraw := func() {
		et.Print("\r\033[2K%s%s", prompt, string(line))
	}

	b := make([]byte, 1)
	for {
		_, err := et.input.Read(b)
		if err != nil {
			return "", err
		}

		switch b[0] {
		case keyCtrlC:
			et.Print("\n")
			return "", curated.Errorf(UserInterrupt)

		case keyCtrlD:
			if len(line) == 0 {
				et.Print("\n")
				return "", io.EOF
			}

		case keyCarriageReturn, keyNewline:
			et.Print("\n")
			s := string(line)
			if s != "" {
				et.history = append(et.history, s)
			}
			return s, nil

		case keyBackspace, keyDel:
			if len(line) > 0 {
				line = line[:len(line)-1]
				et.Print("\b \b")
			}

		case keyEsc:
			// arrow keys arrive as a three byte escape sequence
			seq := make([]byte, 2)
			if _, err := io.ReadFull(et.input, seq); err != nil {
				return "", err
			}
			if seq[0] != '[' {
				continue
			}
			switch seq[1] {
			case 'A': // up
				if histIdx > 0 {
					histIdx--
					line = append(line[:0], et.history[histIdx]...)
					redraw()
				}
			case 'B': // down
				if histIdx < len(et.history) {
					histIdx++
					if histIdx == len(et.history) {
						line = line[:0]
					} else {
						line = append(line[:0], et.history[histIdx]...)
					}
					redraw()
				}
			}

		default:
			if b[0] >= 0x20 && b[0] < 0x7f {
				line = append(line, b[0])
				et.Print("%c", b[0])
			}
		}
	}
}
