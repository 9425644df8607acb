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

// Package termlife presents a life simulation in a posix terminal. The
// terminal is put into raw mode for the duration so keypresses, including
// ctrl-c, arrive on the Input() channel rather than being handled by the
// shell.
//
// TermLife implements the sim.FrameTrigger interface. Registering it with a
// simulation is all that is required for the display to update.
package termlife

import (
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/demo/easyterm"
	"github.com/jetsetilly/doublebuffer/demo/easyterm/ansi"
	"github.com/jetsetilly/doublebuffer/life"
)

// the number of terminal columns used to display a single cell. two columns
// per cell is approximately square in most terminal fonts.
const cellWidth = 2

// the number of rows at the bottom of the terminal reserved for the status
// line.
const statusLines = 1

// TermLife is a life viewer for posix terminals.
type TermLife struct {
	easyterm.EasyTerm

	// keypresses are forwarded to this channel by a dedicated goroutine
	input chan byte

	// pens used for alive and dead cells
	alive string
	dead  string

	// FPSIndicator is an optional source for the frame rate shown in the
	// status line
	FPSIndicator func() float32
}

// NewTermLife is the preferred method of initialisation for the TermLife
// type. The terminal is put into raw mode and the screen cleared. CleanUp()
// must be called before the program ends.
func NewTermLife() (*TermLife, error) {
	tl := &TermLife{
		input: make(chan byte),
		alive: ansi.Papers["green"],
		dead:  ansi.NormalPen,
	}

	err := tl.EasyTerm.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return nil, curated.Errorf("termlife: %v", err)
	}

	tl.RawMode()
	tl.TermPrint("%s%s", ansi.CursorHide, ansi.ClearScreen)

	// stdin is read one byte at a time. in raw mode a read returns as soon
	// as a key is pressed
	go func() {
		b := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(b)
			if err != nil {
				return
			}
			if n == 1 {
				tl.input <- b[0]
			}
		}
	}()

	return tl, nil
}

// CleanUp restores the terminal to canonical mode.
func (tl *TermLife) CleanUp() {
	tl.TermPrint("%s%s\r\n", ansi.NormalPen, ansi.CursorShow)
	tl.CanonicalMode()
	_ = tl.Flush()
	tl.EasyTerm.CleanUp()
}

// Input returns the channel on which keypresses are forwarded.
func (tl *TermLife) Input() <-chan byte {
	return tl.input
}

// WorldSize returns the largest world dimensions that fit the current
// terminal geometry.
func (tl *TermLife) WorldSize() (width int, height int) {
	cols, rows := tl.GeometrySize()
	width = cols / cellWidth
	height = rows - statusLines
	if width > life.MaxSide {
		width = life.MaxSide
	}
	if height > life.MaxSide {
		height = life.MaxSide
	}
	return width, height
}

// Suspend the process, restoring the terminal to canonical mode for the
// duration. The function returns when the process is resumed.
func (tl *TermLife) Suspend() {
	tl.CanonicalMode()
	tl.TermPrint("%s%s", ansi.NormalPen, ansi.CursorShow)
	easyterm.SuspendProcess()

	// process has been resumed
	tl.RawMode()
	tl.TermPrint("%s%s", ansi.CursorHide, ansi.ClearScreen)
}

// Pause appends a note to the status line. The note is removed by the
// redraw of the next completed frame.
func (tl *TermLife) Pause(paused bool) {
	if paused {
		tl.TermPrint(" [paused]")
	}
}

// NewFrame implements the sim.FrameTrigger interface.
func (tl *TermLife) NewFrame(frame int, state *life.World) error {
	// the visible portion of the world is clamped to the terminal geometry.
	// the geometry is kept up to date by easyterm so resizing the terminal
	// mid-run works as expected
	cols, rows := tl.GeometrySize()

	w := state.Width
	if w > cols/cellWidth {
		w = cols / cellWidth
	}
	h := state.Height
	if h > rows-statusLines {
		h = rows - statusLines
	}

	s := strings.Builder{}
	s.WriteString(ansi.CursorHome)

	// pen changes are only emitted when the cell state changes. long runs
	// of alive or dead cells are the common case
	pen := ""
	emit := func(p string) {
		if pen != p {
			s.WriteString(p)
			pen = p
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if state.Cell(x, y) {
				emit(tl.alive)
			} else {
				emit(tl.dead)
			}
			s.WriteString("  ")
		}
		emit(ansi.NormalPen)
		s.WriteString("\r\n")
	}

	// status line
	s.WriteString(ansi.ClearLine)
	s.WriteString(fmt.Sprintf("frame %d  population %d", frame, state.Population()))
	if tl.FPSIndicator != nil {
		s.WriteString(fmt.Sprintf("  %.1f fps", tl.FPSIndicator()))
	}
	s.WriteString("  [q]uit [space]pause [+/-]fps")

	tl.TermPrint(s.String())

	return nil
}
