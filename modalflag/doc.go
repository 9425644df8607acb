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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package,
// with some differences. Whereas with flag.FlagSet you call Parse() with
// the array of strings as the only argument, with modalflag you first call
// NewArgs() with the array of arguments and then Parse() with no arguments
// (error handling of the Parse() function is not shown here):
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() functions.
//
// Flags are added before the call to Parse() and work like the flag
// package:
//
//	fpscap := md.AddBool("fpscap", true, "cap frame rate")
//
// The reason this package exists is its handling of program modes. A list
// of sub-modes is registered before parsing, the first in the list being
// the default:
//
//	md.AddSubModes("TERM", "SDL", "AUDIO")
//	r, err := md.Parse()
//
// If the first non-flag argument matches one of the sub-modes (case
// insensitive) then that mode is selected and subsequent arguments belong
// to it. The program inspects the selection with the Mode() function,
// calls NewMode(), adds the flags for that mode and calls Parse() again.
// Sub-modes can nest to any depth in this way, each layer with its own
// flag set, and the sequence of decisions is available through the Path()
// function.
package modalflag
