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

package life_test

import (
	"testing"

	"github.com/jetsetilly/doublebuffer/life"
	"github.com/jetsetilly/doublebuffer/sim"
	"github.com/jetsetilly/doublebuffer/test"
)

func TestNewWorld(t *testing.T) {
	_, err := life.NewWorld(10, 10)
	test.ExpectSuccess(t, err)

	_, err = life.NewWorld(0, 10)
	test.ExpectFailure(t, err)

	_, err = life.NewWorld(10, -1)
	test.ExpectFailure(t, err)

	_, err = life.NewWorld(life.MaxSide+1, 10)
	test.ExpectFailure(t, err)
}

func TestBlinker(t *testing.T) {
	current, err := life.NewWorld(5, 5)
	test.DemandSuccess(t, err)
	next, err := life.NewWorld(5, 5)
	test.DemandSuccess(t, err)

	err = current.SeedPattern("blinker")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, current.Population(), 3)

	// horizontal to vertical
	err = life.Generate(&current, &next)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next.Population(), 3)
	test.ExpectSuccess(t, next.Cell(2, 1))
	test.ExpectSuccess(t, next.Cell(2, 2))
	test.ExpectSuccess(t, next.Cell(2, 3))

	// and back again. the blinker has period two
	err = life.Generate(&next, &current)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, current.Cell(1, 2))
	test.ExpectSuccess(t, current.Cell(2, 2))
	test.ExpectSuccess(t, current.Cell(3, 2))
}

func TestStillLife(t *testing.T) {
	current, err := life.NewWorld(4, 4)
	test.DemandSuccess(t, err)
	next, err := life.NewWorld(4, 4)
	test.DemandSuccess(t, err)

	// the block is the simplest still life
	current.SetCell(1, 1, true)
	current.SetCell(2, 1, true)
	current.SetCell(1, 2, true)
	current.SetCell(2, 2, true)

	err = life.Generate(&current, &next)
	test.DemandSuccess(t, err)

	for y := range 4 {
		for x := range 4 {
			test.ExpectEquality(t, next.Cell(x, y), current.Cell(x, y))
		}
	}
}

func TestOverpopulation(t *testing.T) {
	current, err := life.NewWorld(3, 3)
	test.DemandSuccess(t, err)
	next, err := life.NewWorld(3, 3)
	test.DemandSuccess(t, err)

	// in a fully wrapped 3x3 world every cell neighbours every other cell.
	// a full world dies in a single generation
	for y := range 3 {
		for x := range 3 {
			current.SetCell(x, y, true)
		}
	}

	err = life.Generate(&current, &next)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next.Population(), 0)
}

func TestWrapAround(t *testing.T) {
	w, err := life.NewWorld(5, 5)
	test.DemandSuccess(t, err)

	// coordinates off every edge resolve to cells on the opposite edge
	w.SetCell(-1, 0, true)
	test.ExpectSuccess(t, w.Cell(4, 0))
	w.SetCell(0, 5, true)
	test.ExpectSuccess(t, w.Cell(0, 0))
	test.ExpectSuccess(t, w.Cell(5, 5) == w.Cell(0, 0))
}

func TestSeedPattern(t *testing.T) {
	w, err := life.NewWorld(10, 10)
	test.DemandSuccess(t, err)

	err = w.SeedPattern("no such pattern")
	test.ExpectFailure(t, err)

	// the gosper gun needs a world wider than ten cells
	err = w.SeedPattern("gosper")
	test.ExpectFailure(t, err)

	err = w.SeedPattern("GLIDER")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w.Population(), 5)
}

func TestLifeSimulation(t *testing.T) {
	world, err := life.NewWorld(5, 5)
	test.DemandSuccess(t, err)
	err = world.SeedPattern("blinker")
	test.DemandSuccess(t, err)

	sm := sim.NewSimulation(world, life.Generate)
	defer sm.End()
	sm.SetFPSCap(false)

	err = sm.Run(1)
	test.DemandSuccess(t, err)
	err = sm.ReadState(func(w *life.World) {
		test.ExpectSuccess(t, w.Cell(2, 1))
		test.ExpectSuccess(t, w.Cell(2, 2))
		test.ExpectSuccess(t, w.Cell(2, 3))
	})
	test.ExpectSuccess(t, err)

	// a second generation returns the oscillator to the seed state
	err = sm.Run(1)
	test.DemandSuccess(t, err)
	err = sm.ReadState(func(w *life.World) {
		test.ExpectSuccess(t, w.Cell(1, 2))
		test.ExpectSuccess(t, w.Cell(2, 2))
		test.ExpectSuccess(t, w.Cell(3, 2))
		test.ExpectEquality(t, w.Population(), 3)
	})
	test.ExpectSuccess(t, err)
}
