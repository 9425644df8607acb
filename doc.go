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

// Package doublebuffer implements the Double Buffer pattern described in
// 'Game Programming Patterns' by Robert Nystrom.
//
// In a simulation you often have to do a lot of processing to prepare the
// next "frame", but if you're iterating through the current-state data while
// mutating it, things can slip. The double buffer solves this by keeping two
// copies of the simulation state: the "current" state, which is stable and
// read from; and the "next" state, which is being prepared. When a turn of
// the simulation is complete the two buffers are switched.
//
// The DoubleBuffer type holds the two states in two slots. The slots are
// distinct storage at all times, meaning that a borrow of the current slot
// and a borrow of the next slot can be held together without conflict. A
// typical turn of a simulation borrows both at once:
//
//	buf := doublebuffer.New([]int{2, 4, 6}, []int{})
//
//	cur, _ := buf.Current()
//	nxt, _ := buf.NextMut()
//	for _, v := range *cur.Value() {
//		*nxt.Value() = append(*nxt.Value(), v+1)
//	}
//	cur.Release()
//	nxt.Release()
//
//	buf.Switch()
//
// Within a single slot the usual shared/exclusive discipline applies: any
// number of read borrows OR one write borrow. The discipline is checked at
// runtime, not by the compiler. A conflicting request returns an error
// matching the BorrowConflict pattern and changes nothing.
//
// Switch() requires that no borrow of either slot is outstanding. A borrow
// held across a switch would silently change meaning - it was acquired as
// "current" but would now alias "next" - so the switch refuses rather than
// allowing the aliasing to go unnoticed.
//
// The Advance() function wraps the borrow/step/release/switch sequence and
// is the preferred way of running a simulation turn. The sim package builds
// on it to provide a fixed-step frame loop.
//
// A DoubleBuffer is not safe for concurrent use. The borrow discipline
// guards against interleaved access within a single goroutine, it is not a
// substitute for synchronisation between goroutines.
package doublebuffer
