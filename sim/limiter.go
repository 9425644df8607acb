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

package sim

import (
	"sync/atomic"
	"time"
)

// the frame rate the limiter settles on when a rate request is made with
// MatchBaseRate.
const baseRate float32 = 60.0

// MatchBaseRate can be used with SetFPS() to indicate that the simulation
// should run at the base rate of sixty frames per second.
const MatchBaseRate float32 = -1.0

type limiter struct {
	// whether to wait on the pulse every frame
	active bool

	// the requested number of frames per second
	requested atomic.Value // float32

	// the measured number of frames per second
	measured atomic.Value // float32

	// pulse that performs the limiting. the duration of the ticker will be
	// set when setRate() is called with a new fps value
	pulse *time.Ticker

	// we don't want to wait on the pulse every frame at high rates because
	// checking the pulse channel is itself expensive. a simple counter is
	// good enough for this
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker

	// the measured FPS is the number of frames divided by the amount of
	// elapsed time since the previous measurement
	measureTime time.Time
	measureCt   int
}

// newLimiter is the preferred method of initialisation for the limiter type.
// The limited rate is set to the base rate.
func newLimiter() *limiter {
	lmtr := limiter{}
	lmtr.active = true
	lmtr.measured.Store(float32(0.0))

	lmtr.pulse = time.NewTicker(time.Millisecond * 16)
	lmtr.measuringPulse = time.NewTicker(time.Millisecond * 1000)

	lmtr.setRate(MatchBaseRate)

	return &lmtr
}

// set the frame limit. a value of MatchBaseRate (or any value less than or
// equal to zero) indicates that the limiter should equal the base rate.
func (lmtr *limiter) setRate(fps float32) {
	if fps <= 0.0 {
		fps = baseRate
	}

	lmtr.requested.Store(fps)

	// set scale and duration to wait according to requested FPS rate
	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Stop()
	lmtr.pulse.Reset(time.Duration(1000000000 / fps * float32(lmtr.pulseCtLimit)))

	// restart measurement values
	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// checkFrame should be called every frame.
func (lmtr *limiter) checkFrame() {
	lmtr.measureCt++

	if lmtr.active {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// measureActual measures frame rate on every tick of the measuringPulse
// ticker. callers of measureActual() should be mindful of how often the
// function is called, regardless of the throttle provided by the measuring
// pulse - checking the pulse channel is itself expensive.
func (lmtr *limiter) measureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.measured.Store(m)

		// reset time and count ready for next measurement
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// end stops the limiter's tickers. the limiter is unusable after a call to
// end.
func (lmtr *limiter) end() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
