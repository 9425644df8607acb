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

// slot is one of the two storage cells in a DoubleBuffer. each slot carries
// its own access state, meaning that borrows of one slot never interfere
// with borrows of the other.
type slot[T any] struct {
	value T

	// the dynamic borrow state of the slot:
	//	 0    slot is free
	//	 n>0  n shared borrows are outstanding
	//	-1    an exclusive borrow is outstanding
	access int
}

// borrow acquires shared access to the slot. the role argument is the slot's
// role at the time of the request and is used in any error message.
func (s *slot[T]) borrow(role string) (*Borrow[T], error) {
	if s.access < 0 {
		return nil, curated.Errorf(BorrowConflict,
			fmt.Sprintf("%s slot is already borrowed for writing", role))
	}
	s.access++
	return &Borrow[T]{slot: s}, nil
}

// borrowMut acquires exclusive access to the slot.
func (s *slot[T]) borrowMut(role string) (*MutBorrow[T], error) {
	if s.access < 0 {
		return nil, curated.Errorf(BorrowConflict,
			fmt.Sprintf("%s slot is already borrowed for writing", role))
	}
	if s.access > 0 {
		return nil, curated.Errorf(BorrowConflict,
			fmt.Sprintf("%s slot is already borrowed for reading", role))
	}
	s.access = -1
	return &MutBorrow[T]{slot: s}, nil
}

// Borrow is a shared access handle to one slot of a DoubleBuffer. It is
// created with the Current() and Next() functions.
//
// The value must not be modified through a shared borrow. The Go compiler
// cannot enforce this - there is no read-only reference type - so it is a
// documented requirement rather than a checked one.
//
// Release() must be called when access is no longer required. The deferred
// form is the most reliable:
//
//	b, err := buf.Current()
//	if err != nil {
//		return err
//	}
//	defer b.Release()
type Borrow[T any] struct {
	slot *slot[T]
}

// Value returns a pointer to the borrowed slot's contents. Calling Value()
// on a released borrow is a programming error and will cause a panic.
func (b *Borrow[T]) Value() *T {
	if b.slot == nil {
		panic("use of a released borrow")
	}
	return &b.slot.value
}

// Release the borrow, returning access to the slot. Releasing an already
// released borrow is a no-op.
func (b *Borrow[T]) Release() {
	if b.slot == nil {
		return
	}
	b.slot.access--
	b.slot = nil
}

// MutBorrow is an exclusive access handle to one slot of a DoubleBuffer. It
// is created with the CurrentMut() and NextMut() functions.
//
// As with the Borrow type, Release() must be called when access is no longer
// required.
type MutBorrow[T any] struct {
	slot *slot[T]
}

// Value returns a pointer to the borrowed slot's contents. Calling Value()
// on a released borrow is a programming error and will cause a panic.
func (b *MutBorrow[T]) Value() *T {
	if b.slot == nil {
		panic("use of a released borrow")
	}
	return &b.slot.value
}

// Release the borrow, returning access to the slot. Releasing an already
// released borrow is a no-op.
func (b *MutBorrow[T]) Release() {
	if b.slot == nil {
		return
	}
	b.slot.access = 0
	b.slot = nil
}
