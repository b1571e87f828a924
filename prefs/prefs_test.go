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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/beastboard/prefs"
	"github.com/jetsetilly/beastboard/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool

	test.ExpectEquality(t, b.Get().(bool), false)

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectEquality(t, b.String(), "true")

	// string conversion. anything that isn't "true" is false
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("foo"))
	test.ExpectEquality(t, b.Get().(bool), false)

	// unsupported type
	test.ExpectFailure(t, b.Set(1.0))
}

func TestInt(t *testing.T) {
	var i prefs.Int

	test.ExpectSuccess(t, i.Set(100))
	test.ExpectEquality(t, i.Get().(int), 100)
	test.ExpectSuccess(t, i.Set("-5"))
	test.ExpectEquality(t, i.Get().(int), -5)
	test.ExpectFailure(t, i.Set("foo"))
}

func TestHookPost(t *testing.T) {
	var b prefs.Bool
	var hooked bool

	b.SetHookPost(func(v prefs.Value) error {
		hooked = v.(bool)
		return nil
	})

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, hooked)
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)

	var b prefs.Bool
	var i prefs.Int
	var s prefs.String

	test.ExpectSuccess(t, dsk.Add("test.bool", &b))
	test.ExpectSuccess(t, dsk.Add("test.int", &i))
	test.ExpectSuccess(t, dsk.Add("test.string", &s))

	// duplicate keys are configuration errors
	test.ExpectFailure(t, dsk.Add("test.bool", &b))

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, i.Set(42))
	test.ExpectSuccess(t, s.Set("hello"))
	test.ExpectSuccess(t, dsk.Save())

	// reset and reload
	test.ExpectSuccess(t, b.Reset())
	test.ExpectSuccess(t, i.Reset())
	test.ExpectSuccess(t, s.Reset())

	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectEquality(t, i.Get().(int), 42)
	test.ExpectEquality(t, s.Get().(string), "hello")

	// the file format is stable and human readable
	content, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(content), "test.bool :: true\ntest.int :: 42\ntest.string :: hello\n")
}
