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

import (
	"fmt"

	"github.com/jetsetilly/doublebuffer/curated"
)

// DoubleBuffer holds two values of type T, one in the "current" role and one
// in the "next" role. The roles exchange on every call to Switch().
//
// The zero value is not usable. Use the New() function to create a
// DoubleBuffer.
type DoubleBuffer[T any] struct {
	slots [2]slot[T]

	// which slot plays which role. when false, slots[0] is current and
	// slots[1] is next. Switch() toggles the flag and nothing else - the
	// values themselves never move.
	switched bool
}

// New is the preferred method of initialisation for the DoubleBuffer type.
// The first value begins in the current role and the second in the next
// role. Both slots begin in the unborrowed state.
func New[T any](current T, next T) *DoubleBuffer[T] {
	buf := &DoubleBuffer[T]{}
	buf.slots[0].value = current
	buf.slots[1].value = next
	return buf
}

// current returns the slot currently playing the named role.
func (buf *DoubleBuffer[T]) current() *slot[T] {
	if buf.switched {
		return &buf.slots[1]
	}
	return &buf.slots[0]
}

// next returns the slot currently playing the named role.
func (buf *DoubleBuffer[T]) next() *slot[T] {
	if buf.switched {
		return &buf.slots[0]
	}
	return &buf.slots[1]
}

// Current acquires shared access to the current slot. The returned error,
// if any, can be tested with:
//
//	curated.Is(err, doublebuffer.BorrowConflict)
func (buf *DoubleBuffer[T]) Current() (*Borrow[T], error) {
	return buf.current().borrow("current")
}

// CurrentMut acquires exclusive access to the current slot.
//
// Writing to the current slot is unusual. The common pattern is to read from
// current and to write to next but there are legitimate uses, in-place
// initialisation for example, so the operation is available.
func (buf *DoubleBuffer[T]) CurrentMut() (*MutBorrow[T], error) {
	return buf.current().borrowMut("current")
}

// Next acquires shared access to the next slot.
func (buf *DoubleBuffer[T]) Next() (*Borrow[T], error) {
	return buf.next().borrow("next")
}

// NextMut acquires exclusive access to the next slot. This is the usual way
// of preparing the value that becomes visible after the following Switch().
func (buf *DoubleBuffer[T]) NextMut() (*MutBorrow[T], error) {
	return buf.next().borrowMut("next")
}

// Switch exchanges the roles of the two slots. The slot that was next
// becomes current and vice versa. The exchange is a single flag flip - no
// values are copied or moved.
//
// Switch fails if any borrow of either slot is outstanding. In that event
// the roles are left exactly as they were.
func (buf *DoubleBuffer[T]) Switch() error {
	if buf.slots[0].access != 0 || buf.slots[1].access != 0 {
		return curated.Errorf(BorrowConflict, "cannot switch while a borrow is outstanding")
	}
	buf.switched = !buf.switched
	return nil
}

func (buf *DoubleBuffer[T]) String() string {
	return fmt.Sprintf("current=%v next=%v", buf.current().value, buf.next().value)
}
