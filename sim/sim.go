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

// Package sim drives a DoubleBuffer through the fixed-step frame cycle. The
// package takes care of the read-modify-switch sequencing, frame counting,
// frame rate limiting and notification of observers, leaving the step
// function to express nothing but the transition from one state to the next.
//
// A minimal simulation:
//
//	sm := sim.NewSimulation(0, func(current *int, next *int) error {
//		*next = *current + 1
//		return nil
//	})
//	defer sm.End()
//
//	err := sm.Run(100)
//
// Observers implement the FrameTrigger interface and are notified at the
// end of every frame, after the switch, with read access to the newly
// stable state.
package sim

import (
	"github.com/jetsetilly/doublebuffer"
	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/logger"
)

// StepFunc is the state transition for a single frame of the simulation.
// The function reads from current and writes to next. It must not write
// through the current pointer.
//
// An error returned by a StepFunc abandons the frame. The switch does not
// take place and the state visible through ReadState() is unchanged.
type StepFunc[T any] func(current *T, next *T) error

// FrameTrigger implementations are notified at the end of every completed
// frame. The state pointer is valid only for the duration of the call.
type FrameTrigger[T any] interface {
	NewFrame(frame int, state *T) error
}

// Simulation owns a DoubleBuffer and advances it one frame at a time with
// the registered StepFunc.
//
// Simulation functions are not safe for concurrent use. The expected
// arrangement is a single loop calling Step() with other goroutines limited
// to the FPS functions, which are safe at any time.
type Simulation[T any] struct {
	buf  *doublebuffer.DoubleBuffer[T]
	step StepFunc[T]

	triggers []FrameTrigger[T]

	// number of completed frames since creation
	frame int

	lmtr *limiter
}

// NewSimulation is the preferred method of initialisation for the Simulation
// type. Both slots of the underlying DoubleBuffer begin with a copy of the
// initial value.
func NewSimulation[T any](initial T, step StepFunc[T]) *Simulation[T] {
	return &Simulation[T]{
		buf:  doublebuffer.New(initial, initial),
		step: step,
		lmtr: newLimiter(),
	}
}

// AddFrameTrigger registers an (additional) implementation of FrameTrigger.
func (sm *Simulation[T]) AddFrameTrigger(f FrameTrigger[T]) {
	sm.triggers = append(sm.triggers, f)
}

// Frame returns the number of completed frames.
func (sm *Simulation[T]) Frame() int {
	return sm.frame
}

// Step runs a single frame of the simulation: the step function prepares
// the next state from the current state, the slots switch and any
// FrameTriggers are notified.
//
// If the step function or a FrameTrigger returns an error the frame is
// abandoned and the error returned.
func (sm *Simulation[T]) Step() error {
	err := sm.buf.Advance(sm.step)
	if err != nil {
		return curated.Errorf("sim: %v", err)
	}
	sm.frame++

	sm.lmtr.checkFrame()
	sm.lmtr.measureActual()

	if len(sm.triggers) == 0 {
		return nil
	}

	cur, err := sm.buf.Current()
	if err != nil {
		return curated.Errorf("sim: %v", err)
	}
	defer cur.Release()

	for _, f := range sm.triggers {
		if err := f.NewFrame(sm.frame, cur.Value()); err != nil {
			return curated.Errorf("sim: %v", err)
		}
	}

	return nil
}

// Run the simulation for the specified number of frames.
func (sm *Simulation[T]) Run(numFrames int) error {
	for range numFrames {
		if err := sm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// ReadState runs f with read access to the stable state of the simulation.
// The pointer is valid only for the duration of the call.
func (sm *Simulation[T]) ReadState(f func(*T)) error {
	err := sm.buf.ReadCurrent(f)
	if err != nil {
		return curated.Errorf("sim: %v", err)
	}
	return nil
}

// SetFPSCap sets whether the simulation should wait for the FPS limiter.
func (sm *Simulation[T]) SetFPSCap(set bool) {
	sm.lmtr.active = set
}

// SetFPS requests the number of frames per second. A value of MatchBaseRate
// restores the base rate.
func (sm *Simulation[T]) SetFPS(fps float32) {
	sm.lmtr.setRate(fps)
	logger.Logf(logger.Allow, "sim", "fps request: %.2f", sm.lmtr.requested.Load().(float32))
}

// GetReqFPS returns the requested number of frames per second. Compare with
// GetActualFPS() to check for accuracy.
func (sm *Simulation[T]) GetReqFPS() float32 {
	return sm.lmtr.requested.Load().(float32)
}

// GetActualFPS returns the current number of frames per second.
func (sm *Simulation[T]) GetActualFPS() float32 {
	return sm.lmtr.measured.Load().(float32)
}

// End the simulation gently, stopping the frame limiter. The Simulation is
// unusable after a call to End().
func (sm *Simulation[T]) End() {
	sm.lmtr.end()
}
