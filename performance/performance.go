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

// Package performance contains helper functions relating to performance.
//
// Check() is a quick way of running a board flat out for a fixed duration
// of time. It will optionally generate profiling information.
//
// CalcFPS() calculates frames-per-second in aggregate along with an
// accuracy value, as compared to the board's raster geometry. Probably not
// suitable for "live" FPS monitoring.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/beastboard/curated"
	"github.com/jetsetilly/beastboard/hardware"
	"github.com/jetsetilly/beastboard/hardware/timing"
)

// the time allowed for the emulation to warm up before measurement starts.
const leadTime = 2 * time.Second

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage of
// the geometry's refresh rate.
func CalcFPS(geom timing.Geometry, numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / geom.RefreshHz
	return fps, accuracy
}

// Check is a very rough and ready calculation of the emulation's
// performance. The board is run flat out for the given duration, after a
// short lead time for everything to settle, and the achieved frame rate is
// written to the io.Writer.
func Check(output io.Writer, board *hardware.Board, profile bool, runTime string) error {
	if board.Raster == nil {
		return curated.Errorf("performance: %s has no raster to count frames with", board.Label)
	}

	duration, err := time.ParseDuration(runTime)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	startFrame := board.Raster.Frame()

	err = cpuProfile(profile, "cpu.profile", func() error {
		timesUp := make(chan bool)

		// lead time allows the host to settle down before the measurement
		// window opens
		go func() {
			time.AfterFunc(leadTime, func() {
				startFrame = board.Raster.Frame()
				time.AfterFunc(duration, func() {
					timesUp <- true
				})
			})
		}()

		return board.Run(func() (bool, error) {
			select {
			case v := <-timesUp:
				return !v, nil
			default:
				return true, nil
			}
		})
	})
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := board.Raster.Frame() - startFrame
	fps, accuracy := CalcFPS(board.Raster.Geometry(), numFrames, duration.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)

	return memProfile(profile, "mem.profile")
}
