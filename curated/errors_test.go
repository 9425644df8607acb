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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/test"
)

const testError = "test error: %s"

func TestErrorf(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectSuccess(t, curated.Has(e, testError))

	// a pattern that has not been used in the error chain
	test.ExpectFailure(t, curated.Is(e, "%s"))
	test.ExpectFailure(t, curated.Has(e, "%s"))
}

func TestUncurated(t *testing.T) {
	e := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(e))
	test.ExpectFailure(t, curated.Is(e, "plain error"))
	test.ExpectFailure(t, curated.Has(e, "plain error"))

	// nil errors are never curated
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.Is(nil, testError))
}

func TestNormalisation(t *testing.T) {
	// wrapping an error of the same pattern next to itself causes one of the
	// parts to be dropped
	e := curated.Errorf(testError, "foo")
	f := curated.Errorf("test error: %v", e)
	test.ExpectEquality(t, f.Error(), "test error: foo")

	// duplicate parts deeper in the chain are de-duplicated too
	g := curated.Errorf("fatal: %v", curated.Errorf("fatal: %v", e))
	test.ExpectEquality(t, g.Error(), "fatal: test error: foo")
}

func TestWrappedChains(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	f := curated.Errorf("fatal: %v", e)

	// f is not the testError pattern but it does contain it
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))

	// both Is() and Has() work with the head of the chain
	test.ExpectSuccess(t, curated.Is(f, "fatal: %v"))
	test.ExpectSuccess(t, curated.Has(f, "fatal: %v"))
}
