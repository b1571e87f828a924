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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/beastboard/logger"
	"github.com/jetsetilly/beastboard/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	logger.Log("test", "this is a test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	tw.Clear()
	logger.Logf("test", "this is test %d", 2)
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test: this is test 2\n"))
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	// identical entries fold into one line with a repeat count
	logger.Log("fold", "same detail")
	logger.Log("fold", "same detail")
	logger.Log("fold", "same detail")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("fold: same detail (repeat x3)\n"))
}
