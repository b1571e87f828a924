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

// Package script allows control of the board's input ports from a Lua
// program. The script defines a function per port; the function receives
// the current frame number and returns the byte the hardware will sample.
// Port values follow the active-low convention described in the input
// package.
//
// An example script that presses the player one start button for ten
// frames:
//
//	function in0(frame)
//	    if frame < 10 then
//	        return 0xfb
//	    end
//	    return 0xff
//	end
//
// An optional function named "frame" is called once per completed frame
// and can be used to end the run early by returning false.
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware/input"
	"github.com/jetsetilly/beastboard/logger"
)

// the name of the optional per-frame Lua function
const frameFunction = "frame"

// Script is a Lua program driving the board's input ports.
type Script struct {
	filename string
	state    *lua.LState

	// the frame number passed to port functions. updated by OnFrame()
	frame int
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(filename string) (*Script, error) {
	scr := &Script{
		filename: filename,
		state:    lua.NewState(),
	}

	err := scr.state.DoFile(filename)
	if err != nil {
		scr.state.Close()
		return nil, curated.Errorf("script: %v", err)
	}

	return scr, nil
}

// Close releases the Lua state. No port returned by Port() may be sampled
// after Close() has been called.
func (scr *Script) Close() {
	scr.state.Close()
}

// Port returns an input.Port backed by the named Lua function. Errors
// raised by the function during sampling are logged and the port reads as
// idle.
func (scr *Script) Port(name string) (input.Port, error) {
	fn := scr.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil, curated.Errorf("script: %s: no function named %s", scr.filename, name)
	}

	return input.PortFunc(func() uint8 {
		err := scr.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(scr.frame))
		if err != nil {
			logger.Logf("script", "%s: %v", name, err)
			return uint8(input.Idle)
		}

		v := scr.state.Get(-1)
		scr.state.Pop(1)

		n, ok := v.(lua.LNumber)
		if !ok {
			logger.Logf("script", "%s: %s returned a %s, not a number", scr.filename, name, v.Type())
			return uint8(input.Idle)
		}

		return uint8(int64(n))
	}), nil
}

// OnFrame advances the frame number seen by port functions and calls the
// script's optional frame function. Returns false if the script has asked
// for the run to end.
func (scr *Script) OnFrame(frame int) (bool, error) {
	scr.frame = frame

	fn := scr.state.GetGlobal(frameFunction)
	if fn.Type() != lua.LTFunction {
		return true, nil
	}

	err := scr.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(frame))
	if err != nil {
		return false, curated.Errorf("script: %v", err)
	}

	v := scr.state.Get(-1)
	scr.state.Pop(1)

	if v == lua.LFalse {
		return false, nil
	}
	return true, nil
}
