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

package doublebuffer_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/doublebuffer"
	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/test"
)

func TestScopedAccess(t *testing.T) {
	buf := doublebuffer.New(10, 10)

	err := buf.UpdateNext(func(v *int) {
		*v = 20
	})
	test.ExpectSuccess(t, err)

	err = buf.ReadNext(func(v *int) {
		test.ExpectEquality(t, *v, 20)
	})
	test.ExpectSuccess(t, err)

	err = buf.ReadCurrent(func(v *int) {
		test.ExpectEquality(t, *v, 10)
	})
	test.ExpectSuccess(t, err)

	// scoped access leaves no borrow behind
	test.ExpectSuccess(t, buf.Switch())

	err = buf.ReadCurrent(func(v *int) {
		test.ExpectEquality(t, *v, 20)
	})
	test.ExpectSuccess(t, err)
}

func TestScopedConflict(t *testing.T) {
	buf := doublebuffer.New(0, 0)

	m, err := buf.CurrentMut()
	test.DemandSuccess(t, err)

	err = buf.ReadCurrent(func(_ *int) {
		t.Fatal("scoped function should not run when the borrow is refused")
	})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, doublebuffer.BorrowConflict))

	m.Release()
}

func TestAdvance(t *testing.T) {
	const numFrames = 10

	buf := doublebuffer.New(0, 0)

	for range numFrames {
		err := buf.Advance(func(current *int, next *int) error {
			*next = *current + 1
			return nil
		})
		test.DemandSuccess(t, err)
	}

	err := buf.ReadCurrent(func(v *int) {
		test.ExpectEquality(t, *v, numFrames)
	})
	test.ExpectSuccess(t, err)
}

func TestAdvanceError(t *testing.T) {
	buf := doublebuffer.New(5, 5)

	fail := errors.New("step failure")

	err := buf.Advance(func(current *int, next *int) error {
		*next = *current * 2
		return fail
	})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, fail))

	// the failed frame did not switch
	err = buf.ReadCurrent(func(v *int) {
		test.ExpectEquality(t, *v, 5)
	})
	test.ExpectSuccess(t, err)

	// and did not leak a borrow
	m, err := buf.NextMut()
	test.ExpectSuccess(t, err)
	m.Release()
}

func TestAdvanceUnderBorrow(t *testing.T) {
	buf := doublebuffer.New(0, 0)

	nxt, err := buf.NextMut()
	test.DemandSuccess(t, err)

	err = buf.Advance(func(_ *int, _ *int) error {
		t.Fatal("step function should not run when a borrow is refused")
		return nil
	})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, doublebuffer.BorrowConflict))

	nxt.Release()
}
