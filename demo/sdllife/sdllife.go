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

// Package sdllife presents a life simulation in an SDL window.
//
// SDL requires that windowing functions are only called from the main
// thread. The simulation therefore runs in its own goroutine and
// communicates with the window through the pixel staging area: the
// NewFrame() function (called from the simulation goroutine) stages the
// pixels for the most recent frame and the Service() function (called from
// the main thread) presents them.
//
// User activity in the window is forwarded to the channel specified with
// SetEventChannel().
package sdllife

import (
	"io"
	"sync"

	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/life"
	"github.com/jetsetilly/doublebuffer/logger"
	"github.com/jetsetilly/doublebuffer/version"

	"github.com/veandco/go-sdl2/sdl"
)

// the number of bytes required for each pixel. 4 == red + green + blue +
// alpha.
const pixelDepth = 4

// cell colors.
var (
	aliveCol = [3]byte{0x2e, 0xc2, 0x4e}
	deadCol  = [3]byte{0x10, 0x10, 0x10}
)

// Event is how the window notifies the controlling goroutine of user
// activity.
type Event int

// List of defined Event values.
const (
	EventQuit Event = iota
	EventPause
)

// SdlLife is a life viewer in an SDL window.
type SdlLife struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// world dimensions in cells. the texture is the same size, with the
	// renderer scaling it up to the window
	width  int32
	height int32

	prefs *preferences

	// the events channel is not created by the SdlLife type but assigned
	// with SetEventChannel()
	events chan Event

	// pixels for the most recent completed frame are staged here by the
	// simulation goroutine and consumed by the main thread. window title
	// changes are staged the same way because SDL windowing functions can
	// only be called from the main thread
	crit struct {
		section sync.Mutex
		pixels  []byte
		dirty   bool

		title       string
		titleUpdate bool
	}
}

// NewSdlLife is the preferred method of initialisation for the SdlLife
// type. Width and height are in cells; scale is the number of screen pixels
// per cell, with a value of zero or less meaning the saved preference.
//
// MUST ONLY be called from the #mainthread.
func NewSdlLife(width int, height int, scale float32) (*SdlLife, error) {
	scr := &SdlLife{
		width:  int32(width),
		height: int32(height),
	}

	var err error

	scr.prefs, err = newPreferences()
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	if scale > 0.0 {
		err = scr.prefs.Scale.Set(scale)
		if err != nil {
			return nil, curated.Errorf("sdllife: %v", err)
		}
	}
	scale = float32(scr.prefs.Scale.Get().(float64))

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	winW := int32(float32(scr.width) * scale)
	winH := int32(float32(scr.height) * scale)

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		winW, winH, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1,
		uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	err = scr.renderer.SetScale(scale, scale)
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	// the streaming texture is updated with the staged pixels on every
	// iteration of the service loop
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), scr.width, scr.height)
	if err != nil {
		return nil, curated.Errorf("sdllife: %v", err)
	}

	scr.crit.pixels = make([]byte, scr.width*scr.height*pixelDepth)

	// present an empty frame so the window does not open with garbage in it
	scr.renderer.SetDrawColor(0, 0, 0, 255)
	_ = scr.renderer.Clear()
	scr.renderer.Present()

	return scr, nil
}

// Destroy cleans up the SDL resources.
//
// MUST ONLY be called from the #mainthread.
func (scr *SdlLife) Destroy(output io.Writer) {
	err := scr.texture.Destroy()
	if err != nil {
		output.Write([]byte(err.Error()))
	}

	err = scr.renderer.Destroy()
	if err != nil {
		output.Write([]byte(err.Error()))
	}

	err = scr.window.Destroy()
	if err != nil {
		output.Write([]byte(err.Error()))
	}
}

// SetEventChannel specifies the channel to which user activity is
// forwarded.
func (scr *SdlLife) SetEventChannel(events chan Event) {
	scr.events = events
}

// SavePrefs writes the current window preferences to disk.
func (scr *SdlLife) SavePrefs() error {
	return scr.prefs.save()
}

// FPSCap returns the saved fps-cap preference.
func (scr *SdlLife) FPSCap() bool {
	return scr.prefs.FpsCap.Get().(bool)
}

// SetFPSCap updates the saved fps-cap preference.
func (scr *SdlLife) SetFPSCap(set bool) error {
	return scr.prefs.FpsCap.Set(set)
}

// forward an event to the controlling goroutine. events are dropped if the
// channel is full rather than blocking the main thread.
func (scr *SdlLife) forward(ev Event) {
	if scr.events == nil {
		return
	}
	select {
	case scr.events <- ev:
	default:
		logger.Logf(logger.Allow, "sdllife", "dropped event (%d)", ev)
	}
}

// Service implements the GuiCreator interface.
//
// MUST ONLY be called from the #mainthread.
func (scr *SdlLife) Service() {
	// a window that has been uncovered needs a redraw even if no new frame
	// has been staged
	redraw := false

	// wait for an event or until the timeout expires. the timeout stops the
	// service loop from spinning but is short enough that a staged frame is
	// never delayed by a noticeable amount
	ev := sdl.WaitEventTimeout(5)
	for ; ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.forward(EventQuit)

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_EXPOSED {
				redraw = true
			}

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYUP && ev.Repeat == 0 {
				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
					scr.forward(EventQuit)
				case sdl.SCANCODE_SPACE:
					scr.forward(EventPause)
				}
			}
		}
	}

	scr.crit.section.Lock()
	if scr.crit.titleUpdate {
		scr.window.SetTitle(scr.crit.title)
		scr.crit.titleUpdate = false
	}
	dirty := scr.crit.dirty
	if dirty {
		err := scr.texture.Update(nil, scr.crit.pixels, int(scr.width*pixelDepth))
		if err != nil {
			logger.Log(logger.Allow, "sdllife", err)
		}
		scr.crit.dirty = false
	}
	scr.crit.section.Unlock()

	if !dirty && !redraw {
		return
	}

	scr.renderer.SetDrawColor(0, 0, 0, 255)
	err := scr.renderer.Clear()
	if err != nil {
		logger.Log(logger.Allow, "sdllife", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, &sdl.Rect{X: 0, Y: 0, W: scr.width, H: scr.height})
	if err != nil {
		logger.Log(logger.Allow, "sdllife", err)
	}

	scr.renderer.Present()
}

// NewFrame implements the sim.FrameTrigger interface. It is called from the
// simulation goroutine.
func (scr *SdlLife) NewFrame(frame int, state *life.World) error {
	scr.crit.section.Lock()
	defer scr.crit.section.Unlock()

	for y := 0; y < int(scr.height); y++ {
		for x := 0; x < int(scr.width); x++ {
			col := deadCol
			if state.Cell(x, y) {
				col = aliveCol
			}

			i := (y*int(scr.width) + x) * pixelDepth
			scr.crit.pixels[i] = col[0]
			scr.crit.pixels[i+1] = col[1]
			scr.crit.pixels[i+2] = col[2]
			scr.crit.pixels[i+3] = 255
		}
	}

	scr.crit.dirty = true

	return nil
}

// Pause updates the window title to reflect the paused state of the
// simulation. It is safe to call from any goroutine. The title change is
// applied by the service loop.
func (scr *SdlLife) Pause(paused bool) {
	scr.crit.section.Lock()
	defer scr.crit.section.Unlock()

	if paused {
		scr.crit.title = version.ApplicationName + " [paused]"
	} else {
		scr.crit.title = version.ApplicationName
	}
	scr.crit.titleUpdate = true
}
