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

// ReadCurrent runs f with shared access to the current slot. The borrow is
// held only for the duration of the function, removing the risk of a
// forgotten Release().
func (buf *DoubleBuffer[T]) ReadCurrent(f func(*T)) error {
	b, err := buf.Current()
	if err != nil {
		return err
	}
	defer b.Release()
	f(b.Value())
	return nil
}

// ReadNext runs f with shared access to the next slot.
func (buf *DoubleBuffer[T]) ReadNext(f func(*T)) error {
	b, err := buf.Next()
	if err != nil {
		return err
	}
	defer b.Release()
	f(b.Value())
	return nil
}

// UpdateCurrent runs f with exclusive access to the current slot.
func (buf *DoubleBuffer[T]) UpdateCurrent(f func(*T)) error {
	b, err := buf.CurrentMut()
	if err != nil {
		return err
	}
	defer b.Release()
	f(b.Value())
	return nil
}

// UpdateNext runs f with exclusive access to the next slot.
func (buf *DoubleBuffer[T]) UpdateNext(f func(*T)) error {
	b, err := buf.NextMut()
	if err != nil {
		return err
	}
	defer b.Release()
	f(b.Value())
	return nil
}

// Advance runs one full frame of the read-modify-switch cycle. The function
// f receives shared access to the current slot and exclusive access to the
// next slot. If f returns without error the roles are switched, making the
// newly prepared value the current one.
//
// If f returns an error the switch does not happen and the error is
// returned unchanged.
func (buf *DoubleBuffer[T]) Advance(f func(current *T, next *T) error) error {
	cur, err := buf.Current()
	if err != nil {
		return err
	}
	nxt, err := buf.NextMut()
	if err != nil {
		cur.Release()
		return err
	}

	err = f(cur.Value(), nxt.Value())

	cur.Release()
	nxt.Release()

	if err != nil {
		return err
	}

	return buf.Switch()
}
