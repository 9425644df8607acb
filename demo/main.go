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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/doublebuffer"
	"github.com/jetsetilly/doublebuffer/demo/easyterm"
	"github.com/jetsetilly/doublebuffer/demo/sdllife"
	"github.com/jetsetilly/doublebuffer/demo/termlife"
	"github.com/jetsetilly/doublebuffer/life"
	"github.com/jetsetilly/doublebuffer/logger"
	"github.com/jetsetilly/doublebuffer/modalflag"
	"github.com/jetsetilly/doublebuffer/pcm"
	"github.com/jetsetilly/doublebuffer/performance"
	"github.com/jetsetilly/doublebuffer/prefs"
	"github.com/jetsetilly/doublebuffer/resources"
	"github.com/jetsetilly/doublebuffer/sim"
	"github.com/jetsetilly/doublebuffer/statsview"
	"github.com/jetsetilly/doublebuffer/version"

	"github.com/bradleyjkemp/memviz"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. for example, the TERM mode puts the terminal into
	// raw mode and receives ctrl-c as an input byte rather than a signal.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which
// accepts a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all).
	// It MUST ONLY be called as part of a larger loop from the main thread.
	// It should service all gui events that are not safe to do in
	// sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two
	// channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// make sure the gui variable is a true nil. a nil value
				// inside a non-nil interface does not compare equal to nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			} else {
				// there is no gui to service so sleep for a short time to
				// stop the loop from spinning
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "SDL", "TERM", "AUDIO", "PERF", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "SDL":
		err = sdl(md, sync)

	case "TERM":
		err = term(md, sync)

	case "AUDIO":
		err = audio(md)

	case "PERF":
		err = perform(md, sync)

	case "DUMP":
		err = dump(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// newWorld creates and seeds a world for the life modes.
func newWorld(width int, height int, pattern string, seed int64, density float64) (life.World, error) {
	world, err := life.NewWorld(width, height)
	if err != nil {
		return life.World{}, err
	}

	if strings.ToUpper(pattern) == "RANDOM" {
		if seed < 0 {
			seed = time.Now().UnixNano()
		}
		world.Randomise(uint64(seed), density)
	} else {
		err = world.SeedPattern(pattern)
		if err != nil {
			return life.World{}, err
		}
	}

	return world, nil
}

// help text for the flags shared by the life modes.
func patternHelp() string {
	return fmt.Sprintf("initial pattern: RANDOM, %s", strings.Join(life.PatternList(), ", "))
}

func sdl(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	size := md.AddInt("size", 128, "width and height of the world in cells")
	scaling := md.AddFloat64("scale", 0.0, "window scaling. zero means the saved preference")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to the requested rate")
	fps := md.AddFloat64("fps", 0.0, "requested frame rate. zero means the base rate")
	pattern := md.AddString("pattern", "random", patternHelp())
	seed := md.AddInt64("seed", -1, "seed for random patterns. -1 means the current time")
	density := md.AddFloat64("density", 0.3, "cell density for random patterns")
	prf := md.AddString("prefs", "", "preference values for this session (\"key::value\" pairs separated by semicolons)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		world, err := newWorld(*size, *size, *pattern, *seed, *density)
		if err != nil {
			return err
		}

		// add any bespoke session prefs. these are consumed when the window
		// preferences are loaded
		prefs.PushCommandLineStack(*prf)

		// create gui
		sync.creator <- func() (GuiCreator, error) {
			return sdllife.NewSdlLife(world.Width, world.Height, float32(*scaling))
		}

		// wait for creator result
		var scr *sdllife.SdlLife
		select {
		case g := <-sync.creation:
			scr = g.(*sdllife.SdlLife)
		case err := <-sync.creationError:
			return err
		}

		// check use of session prefs
		if s := prefs.PopCommandLineStack(); s != "" {
			logger.Logf(logger.Allow, "sdl", "%s unused for preferences", s)
		}

		// the fpscap flag overrides the saved preference but only when it
		// has been given explicitly
		md.Visit(func(flag string) {
			if flag == "fpscap" {
				err = scr.SetFPSCap(*fpsCap)
			}
		})
		if err != nil {
			return err
		}

		sm := sim.NewSimulation(world, life.Generate)
		defer sm.End()

		sm.AddFrameTrigger(scr)
		sm.SetFPSCap(scr.FPSCap())
		if *fps > 0.0 {
			sm.SetFPS(float32(*fps))
		}

		// events must be registered before the simulation starts. a
		// buffered channel so that the service loop never waits
		events := make(chan sdllife.Event, 2)
		scr.SetEventChannel(events)

		paused := false
		done := false
		for !done {
			select {
			case ev := <-events:
				switch ev {
				case sdllife.EventQuit:
					done = true
				case sdllife.EventPause:
					paused = !paused
					scr.Pause(paused)
				}
			default:
				if paused {
					time.Sleep(10 * time.Millisecond)
				} else {
					err = sm.Step()
					if err != nil {
						return err
					}
				}
			}
		}

		// save preferences before finishing successfully
		err = scr.SavePrefs()
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func term(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	size := md.AddInt("size", 0, "width and height of the world in cells. zero means fit the terminal")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to the requested rate")
	fps := md.AddFloat64("fps", 0.0, "requested frame rate. zero means the base rate")
	pattern := md.AddString("pattern", "random", patternHelp())
	seed := md.AddInt64("seed", -1, "seed for random patterns. -1 means the current time")
	density := md.AddFloat64("density", 0.3, "cell density for random patterns")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo. note that the echo fights with the world
	// drawing so this is only useful when redirecting
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		tl, err := termlife.NewTermLife()
		if err != nil {
			return err
		}
		defer tl.CleanUp()

		// the terminal is in raw mode from here on. ctrl-c arrives as an
		// input byte and is handled in the input loop below
		sync.state <- stateRequest{req: reqNoIntSig}

		width, height := tl.WorldSize()
		if *size > 0 {
			width = *size
			height = *size
		}

		world, err := newWorld(width, height, *pattern, *seed, *density)
		if err != nil {
			return err
		}

		sm := sim.NewSimulation(world, life.Generate)
		defer sm.End()

		sm.AddFrameTrigger(tl)
		sm.SetFPSCap(*fpsCap)
		if *fps > 0.0 {
			sm.SetFPS(float32(*fps))
		}
		tl.FPSIndicator = sm.GetActualFPS

		paused := false
		done := false
		for !done {
			select {
			case k := <-tl.Input():
				switch k {
				case 'q', easyterm.KeyEsc, easyterm.KeyInterrupt:
					done = true

				case ' ':
					paused = !paused
					tl.Pause(paused)

				case '+', '=':
					sm.SetFPS(sm.GetReqFPS() + 5.0)

				case '-', '_':
					if r := sm.GetReqFPS() - 5.0; r >= 5.0 {
						sm.SetFPS(r)
					}

				case easyterm.KeySuspend:
					tl.Suspend()
				}
			default:
				if paused {
					time.Sleep(10 * time.Millisecond)
				} else {
					err = sm.Step()
					if err != nil {
						return err
					}
				}
			}
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func audio(md *modalflag.Modes) error {
	md.NewMode()

	block := md.AddInt("block", 2048, "echo delay in samples")
	decay := md.AddFloat64("decay", 0.5, "echo decay factor: 0.0 to 1.0")
	out := md.AddString("out", "", "output file. empty means a generated filename")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("wav or mp3 file required for %s mode", md)

	case 1:
		src, err := pcm.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		fmt.Fprintf(md.Output, "%s: %d samples at %.0fHz (%.2fs)\n",
			md.GetArg(0), len(src.Data), src.SampleRate, src.TotalTime)

		echoed, err := pcm.Echo(src, *block, float32(*decay))
		if err != nil {
			return err
		}

		filename := *out
		if filename == "" {
			base := filepath.Base(md.GetArg(0))
			base = strings.TrimSuffix(base, filepath.Ext(base))
			filename = fmt.Sprintf("%s.wav", resources.UniqueFilename("echo", base))
		}

		err = echoed.Save(filename)
		if err != nil {
			return err
		}

		fmt.Fprintf(md.Output, "! echo written to %s\n", filename)

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	size := md.AddInt("size", 256, "width and height of the world in cells")
	pattern := md.AddString("pattern", "random", patternHelp())
	seed := md.AddInt64("seed", 1, "seed for random patterns. -1 means the current time")
	density := md.AddFloat64("density", 0.3, "cell density for random patterns")
	display := md.AddBool("display", false, "display the world during the measurement")
	scaling := md.AddFloat64("scale", 0.0, "display scaling (only valid if -display=true)")
	uncapped := md.AddBool("uncapped", true, "run the simulation as fast as possible")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run with profiler: CPU, MEM, TRACE, ALL")

	statsHelp := "make performance stats available"
	if statsview.Available() {
		statsHelp = fmt.Sprintf("%s at %s", statsHelp, statsview.Address)
	}
	stats := md.AddBool("stats", false, statsHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		if *stats {
			statsview.Launch(md.Output)
		}

		world, err := newWorld(*size, *size, *pattern, *seed, *density)
		if err != nil {
			return err
		}

		sm := sim.NewSimulation(world, life.Generate)
		defer sm.End()

		if *display {
			// create gui
			sync.creator <- func() (GuiCreator, error) {
				return sdllife.NewSdlLife(world.Width, world.Height, float32(*scaling))
			}

			// wait for creator result
			select {
			case g := <-sync.creation:
				sm.AddFrameTrigger(g.(*sdllife.SdlLife))
			case err := <-sync.creationError:
				return err
			}

			// deliberately not saving gui preferences because we don't want
			// any changes made for the performance window impacting the
			// normal modes
		}

		err = performance.Check(md.Output, prf, sm, *uncapped, *duration)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func dump(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("The output file is a graphviz DOT file. Render it with: dot -Tsvg -O <file>")

	frames := md.AddInt("frames", 3, "number of frames to run before the dump")
	out := md.AddString("out", "", "output file. empty means a generated filename")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		// a counter is the simplest possible state. the resulting graph
		// shows the two slots, the values they hold after the requested
		// number of frames and the bookkeeping around them
		buf := doublebuffer.New(0, 0)

		for range *frames {
			err = buf.Advance(func(current *int, next *int) error {
				*next = *current + 1
				return nil
			})
			if err != nil {
				return err
			}
		}

		err = buf.ReadCurrent(func(v *int) {
			fmt.Fprintf(md.Output, "state after %d frames: %d\n", *frames, *v)
		})
		if err != nil {
			return err
		}

		filename := *out
		if filename == "" {
			filename = fmt.Sprintf("%s.dot", resources.UniqueFilename("dump", "counter"))
		}

		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()

		memviz.Map(f, buf)

		fmt.Fprintf(md.Output, "! state graph written to %s\n", filename)

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display vcs revision")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
