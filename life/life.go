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

// Package life implements Conway's Game of Life on a wrap-around grid. The
// game is the textbook double-buffered simulation - every cell of a new
// generation is a function of the previous generation, so the previous
// generation must remain stable while the new one is written.
//
// The Generate() function satisfies the sim.StepFunc type and is intended
// to be driven by that package.
//
// The World type stores its cells in a fixed-size array rather than a
// slice. Slices share their backing arrays when a World is copied, which
// would quietly alias the two halves of a DoubleBuffer.
package life

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/jetsetilly/doublebuffer/curated"
)

// MaxSide is the maximum width and height of a World.
const MaxSide = 256

// World is a single generation of the game. The zero value is not usable.
// Use the NewWorld() function to create a World.
type World struct {
	Width  int
	Height int

	// cells are indexed y then x. true means the cell is alive
	cells [MaxSide][MaxSide]bool
}

// NewWorld is the preferred method of initialisation for the World type.
// All cells begin dead.
func NewWorld(width int, height int) (World, error) {
	if width <= 0 || height <= 0 || width > MaxSide || height > MaxSide {
		return World{}, curated.Errorf("life: unsupported world size: %dx%d", width, height)
	}
	return World{Width: width, Height: height}, nil
}

// Cell returns the state of the cell at the coordinates. Coordinates off
// the edge of the world wrap around to the opposite edge.
func (w *World) Cell(x int, y int) bool {
	x = ((x % w.Width) + w.Width) % w.Width
	y = ((y % w.Height) + w.Height) % w.Height
	return w.cells[y][x]
}

// SetCell sets the state of the cell at the coordinates, wrapping as
// necessary.
func (w *World) SetCell(x int, y int, alive bool) {
	x = ((x % w.Width) + w.Width) % w.Width
	y = ((y % w.Height) + w.Height) % w.Height
	w.cells[y][x] = alive
}

// Clear kills every cell in the world. The dimensions are unchanged.
func (w *World) Clear() {
	for y := range w.Height {
		for x := range w.Width {
			w.cells[y][x] = false
		}
	}
}

// Population returns the number of live cells in the world.
func (w *World) Population() int {
	var n int
	for y := range w.Height {
		for x := range w.Width {
			if w.cells[y][x] {
				n++
			}
		}
	}
	return n
}

// count the live neighbours of a cell. the world wraps so every cell has
// exactly eight neighbours.
func (w *World) neighbours(x int, y int) int {
	var n int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if w.Cell(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// Randomise seeds the world, each cell being alive with the specified
// probability. The same seed value always produces the same world.
func (w *World) Randomise(seed uint64, density float64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	for y := range w.Height {
		for x := range w.Width {
			w.cells[y][x] = rng.Float64() < density
		}
	}
}

// Generate computes the next generation of the game. It satisfies the
// sim.StepFunc type: the previous generation is read from current and the
// new generation written to next.
func Generate(current *World, next *World) error {
	if current.Width <= 0 || current.Height <= 0 {
		return curated.Errorf("life: world has not been created")
	}

	next.Width = current.Width
	next.Height = current.Height

	for y := range current.Height {
		for x := range current.Width {
			n := current.neighbours(x, y)
			next.cells[y][x] = n == 3 || (current.cells[y][x] && n == 2)
		}
	}

	return nil
}

func (w *World) String() string {
	var b strings.Builder
	for y := range w.Height {
		for x := range w.Width {
			if w.cells[y][x] {
				b.WriteRune('o')
			} else {
				b.WriteRune('.')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

type coord struct {
	x int
	y int
}

// well known patterns, coordinates relative to the top-left of the
// pattern's bounding box
var patterns = map[string][]coord{
	"blinker": {{0, 0}, {1, 0}, {2, 0}},
	"toad":    {{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}},
	"beacon":  {{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3}},
	"glider":  {{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	"gosper": {
		{0, 4}, {0, 5}, {1, 4}, {1, 5},
		{10, 4}, {10, 5}, {10, 6}, {11, 3}, {11, 7}, {12, 2}, {12, 8},
		{13, 2}, {13, 8}, {14, 5}, {15, 3}, {15, 7}, {16, 4}, {16, 5},
		{16, 6}, {17, 5},
		{20, 2}, {20, 3}, {20, 4}, {21, 2}, {21, 3}, {21, 4}, {22, 1},
		{22, 5}, {24, 0}, {24, 1}, {24, 5}, {24, 6},
		{34, 2}, {34, 3}, {35, 2}, {35, 3},
	},
}

// PatternList returns the names of the available seed patterns, sorted
// alphabetically. Suitable for help text.
func PatternList() []string {
	l := make([]string, 0, len(patterns))
	for n := range patterns {
		l = append(l, n)
	}
	sort.Strings(l)
	return l
}

// SeedPattern clears the world and places the named pattern in the centre.
// Pattern names are case insensitive.
func (w *World) SeedPattern(name string) error {
	p, ok := patterns[strings.ToLower(name)]
	if !ok {
		return curated.Errorf("life: unrecognised pattern: %s", name)
	}

	var maxX, maxY int
	for _, c := range p {
		maxX = max(maxX, c.x)
		maxY = max(maxY, c.y)
	}
	if maxX >= w.Width || maxY >= w.Height {
		return curated.Errorf("life: pattern %s does not fit in %dx%d world", name, w.Width, w.Height)
	}

	offX := (w.Width - maxX - 1) / 2
	offY := (w.Height - maxY - 1) / 2

	w.Clear()
	for _, c := range p {
		w.cells[offY+c.y][offX+c.x] = true
	}

	return nil
}
