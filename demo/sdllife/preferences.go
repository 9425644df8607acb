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

package sdllife

import (
	"github.com/jetsetilly/doublebuffer/prefs"
	"github.com/jetsetilly/doublebuffer/resources"
)

type preferences struct {
	dsk *prefs.Disk

	// the number of screen pixels per cell
	Scale prefs.Float

	// whether the simulation driving the window should be capped to its
	// requested frame rate
	FpsCap prefs.Bool
}

func (p *preferences) String() string {
	return p.dsk.String()
}

// default preference values.
const (
	scale  = 3.0
	fpsCap = true
)

// newPreferences is the preferred method of initialisation for the
// preferences type.
func newPreferences() (*preferences, error) {
	p := &preferences{}
	p.setDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("sdl.scale", &p.Scale)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sdl.fpscap", &p.FpsCap)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	// bespoke values from the command line shadow the values loaded from
	// disk
	if ok, v := prefs.GetCommandLinePref("sdl.scale"); ok {
		if err := p.Scale.Set(v); err != nil {
			return nil, err
		}
	}
	if ok, v := prefs.GetCommandLinePref("sdl.fpscap"); ok {
		if err := p.FpsCap.Set(v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// setDefaults reverts all settings to default values.
func (p *preferences) setDefaults() {
	p.Scale.Set(scale)
	p.FpsCap.Set(fpsCap)
}

func (p *preferences) load() error {
	return p.dsk.Load(false)
}

func (p *preferences) save() error {
	return p.dsk.Save()
}
