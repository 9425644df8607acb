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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The "Expect" functions test a value for a condition suitable for the type
// of the value. On failure the test continues but is marked as having failed.
// The "Demand" functions are the same except that failure ends the test
// immediately. Demanding is useful when subsequent test steps are meaningless
// after a failure, for example testing the length of a slice before indexing
// into it.
//
// It is worth describing how the success functions handle the nil type
// because it is not obvious. The nil type is considered a success and
// consequently will cause ExpectFailure to fail and ExpectSuccess to succeed.
// This is because of how errors usually work (nil indicating no error).
//
// All helper functions accept optional trailing "tag" arguments. Tags are
// included in the failure message and help identify the failing step in
// table-driven or looping tests.
//
// The Writer type meanwhile, implements the io.Writer interface and should be
// used to capture output. The Writer.Compare() function can then be used to
// test for equality.
package test
