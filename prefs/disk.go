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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/logger"
)

// DefaultPrefsFile is the default filename of the main preferences file.
const DefaultPrefsFile = "doublebuffer.prefs"

// WarningBoilerPlate is the first line of a saved prefs file. A file that
// does not begin with this line is not a prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates a key from its value in the saved file.
const keySep = " :: "

// Disk represents preference values that are loaded from and saved to
// disk.
type Disk struct {
	filename string
	entries  map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(filename string) (*Disk, error) {
	return &Disk{
		filename: filename,
		entries:  make(map[string]pref),
	}, nil
}

// Add a prefs value to the Disk, keyed by name. The value will be
// included in all future Save() and Load() operations.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, keySep) {
		return curated.Errorf("prefs: %v", fmt.Sprintf("invalid key: %q", key))
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: %v", fmt.Sprintf("key already registered: %s", key))
	}
	dsk.entries[key] = p
	return nil
}

// HasEntry returns true if the named key has been added to the Disk.
func (dsk *Disk) HasEntry(key string) bool {
	_, ok := dsk.entries[key]
	return ok
}

func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, dsk.entries[key].String()))
	}
	return s.String()
}

// read the contents of the prefs file into a map. a missing file is not an
// error and results in an empty map.
func (dsk *Disk) readFile() (map[string]string, error) {
	vals := make(map[string]string)

	f, err := os.Open(dsk.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vals, nil
		}
		return vals, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// check boilerplate on first line
	if scanner.Scan() {
		if scanner.Text() != WarningBoilerPlate {
			return vals, curated.Errorf("prefs: %v", fmt.Sprintf("not a valid prefs file: %s", dsk.filename))
		}
	}

	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}

		s := strings.SplitN(scanner.Text(), keySep, 2)
		if len(s) != 2 {
			return vals, curated.Errorf("prefs: %v", fmt.Sprintf("malformed entry in prefs file: %s", scanner.Text()))
		}

		// values for defunct keys are dropped. they will disappear from
		// the file on the next save
		if isDefunct(s[0]) {
			continue
		}

		vals[s[0]] = s[1]
	}

	if err := scanner.Err(); err != nil {
		return vals, curated.Errorf("prefs: %v", err)
	}

	return vals, nil
}

// Save current prefs values to disk. Keys in the file that have not been
// registered with this Disk instance are preserved.
func (dsk *Disk) Save() (rerr error) {
	// read file so that entries added by other Disk instances are not
	// clobbered by this save
	vals, err := dsk.readFile()
	if err != nil {
		return err
	}

	for key, p := range dsk.entries {
		vals[key] = p.String()
	}

	keys := make([]string, 0, len(vals))
	for key := range vals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.filename)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("prefs: %v", err)
		}
	}()

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, vals[key]))
	}

	if _, err := f.WriteString(s.String()); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load prefs values from disk, applying them to the registered entries.
// Keys in the file that have not been registered with this Disk instance
// are ignored. A missing file is not an error.
//
// If the saveOnErr flag is true then a fresh file is written with the
// current values in the event of a load error.
func (dsk *Disk) Load(saveOnErr bool) error {
	vals, err := dsk.readFile()
	if err != nil {
		if saveOnErr {
			logger.Logf(logger.Allow, "prefs", "%v: rewriting file", err)
			return dsk.Save()
		}
		return err
	}

	for key, v := range vals {
		if p, ok := dsk.entries[key]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %v", err)
			}
		}
	}

	return nil
}
