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

package doublebuffer

// BorrowConflict is the sentinel pattern for all borrow conflict errors
// returned by this package. Use with curated.Is() or curated.Has() to
// distinguish a conflict from any other error:
//
//	if _, err := buf.NextMut(); curated.Has(err, doublebuffer.BorrowConflict) {
//		// a conflicting borrow is outstanding
//	}
const BorrowConflict = "borrow conflict: %v"
