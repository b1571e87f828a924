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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jetsetilly/beastboard/audioplay"
	"github.com/jetsetilly/beastboard/digest"
	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/hardware/preferences"
	"github.com/jetsetilly/beastboard/hardware/sound"
	"github.com/jetsetilly/beastboard/hardware/video"
	"github.com/jetsetilly/beastboard/logger"
	"github.com/jetsetilly/beastboard/modalflag"
	"github.com/jetsetilly/beastboard/monitor"
	"github.com/jetsetilly/beastboard/performance"
	"github.com/jetsetilly/beastboard/romset"
	"github.com/jetsetilly/beastboard/script"
	"github.com/jetsetilly/beastboard/statsview"
	"github.com/jetsetilly/beastboard/version"
	"github.com/jetsetilly/beastboard/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "MONITOR":
		err = monitorMode(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// machine gathers everything a mode needs to run a built board.
type machine struct {
	board *hardware.Board

	// the DJ Boy instance if the board is a DJ Boy. nil for other boards
	djboy *hardware.DJBoy

	// the input script, if one was specified
	scr *script.Script

	prf *preferences.Preferences
}

func (m *machine) end() {
	if m.scr != nil {
		m.scr.Close()
	}
	if m.prf != nil && m.prf.SaveOnExit.Get().(bool) {
		if err := m.prf.Save(); err != nil {
			logger.Logf("beastboard", "%v", err)
		}
	}
}

// buildMachine assembles the named board. An empty romDir builds the board
// with blank ROM regions, which is enough for fabric inspection in the
// monitor.
func buildMachine(boardName string, variantName string, romDir string,
	scriptFile string, frameSink video.FrameSink, mixer sound.Mixer) (*machine, error) {
	m := &machine{}

	var err error
	m.prf, err = preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	if scriptFile != "" {
		m.scr, err = script.NewScript(scriptFile)
		if err != nil {
			return nil, err
		}
	}

	switch boardName {
	case "djboy":
		variant, ok := hardware.DJBoyVariants[variantName]
		if !ok {
			return nil, fmt.Errorf("no DJ Boy variant named %s", variantName)
		}

		var roms romset.Collection
		if romDir == "" {
			roms = romset.Empty(variant.Regions)
		} else {
			roms, err = romset.Load(romDir, variant.Regions)
			if err != nil {
				return nil, err
			}
		}

		inputs := hardware.DefaultDJBoyInputs()
		if m.scr != nil {
			// a script provides any subset of the input ports. ports the
			// script doesn't define stay idle
			for i, name := range []string{"in0", "in1", "in2"} {
				if p, err := m.scr.Port(name); err == nil {
					inputs.IN[i] = p
				}
			}
			for i, name := range []string{"dsw1", "dsw2"} {
				if p, err := m.scr.Port(name); err == nil {
					inputs.DSW[i] = p
				}
			}
		}

		dj, err := hardware.NewDJBoy(variantName, roms, inputs, frameSink, mixer, m.prf)
		if err != nil {
			return nil, err
		}
		m.board = dj.Board
		m.djboy = dj

	case "whitestar":
		var roms romset.Collection
		if romDir == "" {
			roms = romset.Empty(hardware.WhitestarRegions)
		} else {
			roms, err = romset.Load(romDir, hardware.WhitestarRegions)
			if err != nil {
				return nil, err
			}
		}

		ws, err := hardware.NewWhitestar(roms)
		if err != nil {
			return nil, err
		}
		m.board = ws.Board

	default:
		return nil, fmt.Errorf("no board named %s", boardName)
	}

	return m, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to emulate: djboy, whitestar")
	variant := md.AddString("variant", "djboy", "board variant (djboy boards only)")
	romDir := md.AddString("romdir", "", "directory containing the ROM files")
	frames := md.AddInt("frames", 0, "number of frames to run (0 means forever)")
	scriptFile := md.AddString("script", "", "Lua script providing input ports")
	wav := md.AddString("wav", "", "record audio to wav file")
	audio := md.AddBool("audio", false, "play audio through the host sound device")
	fingerprint := md.AddBool("fingerprint", false, "print video/audio digests when the run ends")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available in this build")
		}
	}

	// video sink. the digest is cheap enough to always attach
	frameDigest := digest.NewFrame()

	// audio mixer. exactly one of wavwriter, live playback or digest
	var mixer sound.Mixer
	var audioDigest *digest.Audio

	switch {
	case *wav != "":
		mixer, err = wavwriter.New(*wav, hardware.DJBoySampleRate)
		if err != nil {
			return err
		}
	case *audio:
		mixer, err = audioplay.New(hardware.DJBoySampleRate)
		if err != nil {
			return err
		}
	default:
		audioDigest = digest.NewAudio()
		mixer = audioDigest
	}

	m, err := buildMachine(*board, *variant, *romDir, *scriptFile, frameDigest, mixer)
	if err != nil {
		return err
	}
	defer m.end()

	// ctrl-c ends the run cleanly
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	interrupted := func() bool {
		select {
		case <-intChan:
			return true
		default:
			return false
		}
	}

	if m.board.Raster != nil {
		callback := func(frame int) (bool, error) {
			if interrupted() {
				return false, nil
			}
			if m.scr != nil {
				return m.scr.OnFrame(frame)
			}
			return true, nil
		}

		numFrames := *frames
		if numFrames == 0 {
			// effectively forever. the interrupt callback is the way out
			numFrames = int(^uint(0) >> 1)
		}
		err = m.board.RunForFrameCount(numFrames, callback)
	} else {
		err = m.board.Run(func() (bool, error) {
			return !interrupted(), nil
		})
	}
	if err != nil {
		return err
	}

	if err := mixer.EndMixing(); err != nil {
		return err
	}

	if *fingerprint {
		fmt.Printf("video: %s\n", frameDigest.Hash())
		if audioDigest != nil {
			fmt.Printf("audio: %s\n", audioDigest.Hash())
		}
	}

	return nil
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to emulate: djboy, whitestar")
	variant := md.AddString("variant", "djboy", "board variant (djboy boards only)")
	romDir := md.AddString("romdir", "", "directory containing the ROM files")
	scriptFile := md.AddString("script", "", "Lua script providing input ports")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	}

	m, err := buildMachine(*board, *variant, *romDir, *scriptFile, digest.NewFrame(), digest.NewAudio())
	if err != nil {
		return err
	}
	defer m.end()

	var term monitor.Terminal
	term, err = monitor.NewEasyTerm(os.Stdin, os.Stdout)
	if err != nil {
		// not a tty. fall back to the plain terminal
		logger.Logf("beastboard", "%v", err)
		term = monitor.NewPlainTerminal(os.Stdin, os.Stdout)
	}

	mon, err := monitor.NewMonitor(m.board, term)
	if err != nil {
		return err
	}

	return mon.Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to emulate: djboy, whitestar")
	variant := md.AddString("variant", "djboy", "board variant (djboy boards only)")
	romDir := md.AddString("romdir", "", "directory containing the ROM files")
	duration := md.AddString("duration", "5s", "run duration (excluding lead time)")
	profile := md.AddBool("profile", false, "write cpu and memory profiles")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats && statsview.Available() {
		statsview.Launch(os.Stdout)
	}

	m, err := buildMachine(*board, *variant, *romDir, "", digest.NewFrame(), digest.NewAudio())
	if err != nil {
		return err
	}
	defer m.end()

	return performance.Check(os.Stdout, m.board, *profile, *duration)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Println(version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
