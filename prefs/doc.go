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

// Package prefs facilitates the storage of preference values. Preference
// values are typed (Bool, String, Int, Float and the catch-all Generic)
// and can be read and updated concurrently.
//
// Values are registered with a Disk instance under a unique key. The Disk
// instance can then save those values to, and load them from, a single
// prefs file. Several Disk instances can share one file - keys that a Disk
// instance has not registered are left untouched by a save.
//
// The format of the prefs file is one "key :: value" entry per line,
// sorted by key, with a warning boilerplate on the first line.
package prefs
