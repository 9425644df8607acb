// This file is part of DoubleBuffer.
//
// DoubleBuffer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DoubleBuffer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DoubleBuffer.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/sim"
)

// the amount of time to run the simulation before measurement begins. gives
// the frame rate time to settle down.
const leadTime = 2 * time.Second

// Check the performance of the supplied simulation.
//
// The simulation will run for the specified duration and will create a cpu
// profile, a memory profile, a trace (or a combination of those) as defined
// by the Profile argument.
func Check[T any](output io.Writer, profile Profile, sm *sim.Simulation[T], uncapped bool, duration string) error {
	// set fps cap on the simulation
	sm.SetFPSCap(!uncapped)

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// get starting frame number (should be 0)
	startFrame := sm.Frame()

	// run for specified period of time
	runner := func() error {
		// timer that expires when the duration has elapsed. signals false to
		// indicate that the leadtime has concluded and that measurement
		// should start; signals true when the duration has expired
		timerChan := make(chan bool)

		go func() {
			time.AfterFunc(leadTime, func() {
				timerChan <- false

				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		for {
			select {
			case v := <-timerChan:
				if v {
					return nil
				}

				// leadtime has concluded. measurement has begun and we
				// should record the start frame
				startFrame = sm.Frame()
			default:
			}

			err := sm.Step()
			if err != nil {
				return err
			}
		}
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// get ending frame number
	endFrame := sm.Frame()

	// calculate performance
	numFrames := endFrame - startFrame
	fps, accuracy := CalcFPS(sm, numFrames, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
