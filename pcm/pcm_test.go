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

package pcm_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/doublebuffer/pcm"
	"github.com/jetsetilly/doublebuffer/test"
)

func TestEchoImpulse(t *testing.T) {
	p := pcm.PCM{
		SampleRate: 100,
		Data:       []float32{1.0, 0.0, 0.0, 0.0, 0.0, 0.0},
	}

	out, err := pcm.Echo(p, 2, 0.5)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(out.Data), len(p.Data))

	// an impulse repeats one block later at half the amplitude, and again
	// at a quarter
	test.ExpectEquality(t, out.Data[0], 1.0)
	test.ExpectEquality(t, out.Data[1], 0.0)
	test.ExpectEquality(t, out.Data[2], 0.5)
	test.ExpectEquality(t, out.Data[3], 0.0)
	test.ExpectEquality(t, out.Data[4], 0.25)
	test.ExpectEquality(t, out.Data[5], 0.0)
}

func TestEchoPartialBlock(t *testing.T) {
	p := pcm.PCM{
		SampleRate: 100,
		Data:       []float32{1.0, 1.0, 1.0, 1.0, 1.0},
	}

	// five samples over a block size of two leaves a final block of one
	out, err := pcm.Echo(p, 2, 0.5)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(out.Data), 5)

	test.ExpectEquality(t, out.Data[0], 1.0)
	test.ExpectEquality(t, out.Data[1], 1.0)
	test.ExpectEquality(t, out.Data[2], 1.5)
	test.ExpectEquality(t, out.Data[3], 1.5)
	test.ExpectEquality(t, out.Data[4], 1.75)
}

func TestEchoZeroDecay(t *testing.T) {
	p := pcm.PCM{
		SampleRate: 100,
		Data:       []float32{0.5, -0.5, 0.25, -0.25},
	}

	// zero decay passes the input through untouched
	out, err := pcm.Echo(p, 2, 0.0)
	test.DemandSuccess(t, err)
	for i := range p.Data {
		test.ExpectEquality(t, out.Data[i], p.Data[i])
	}
}

func TestEchoBadArguments(t *testing.T) {
	p := pcm.PCM{SampleRate: 100, Data: []float32{1.0}}

	_, err := pcm.Echo(p, 0, 0.5)
	test.ExpectFailure(t, err)

	_, err = pcm.Echo(p, -1, 0.5)
	test.ExpectFailure(t, err)

	_, err = pcm.Echo(p, 2, 1.0)
	test.ExpectFailure(t, err)

	_, err = pcm.Echo(p, 2, -0.1)
	test.ExpectFailure(t, err)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := pcm.Load("no such file.wav")
	test.ExpectFailure(t, err)

	// the file must exist for the extension check to be reached
	f := filepath.Join(t.TempDir(), "audio.flac")
	err = os.WriteFile(f, []byte{}, 0600)
	test.DemandSuccess(t, err)
	_, err = pcm.Load(f)
	test.ExpectFailure(t, err)
}

func TestSaveLoad(t *testing.T) {
	const sampleRate = 8000

	// one second of a 440Hz sine wave at close to full 16bit amplitude
	p := pcm.PCM{
		SampleRate: sampleRate,
		TotalTime:  1.0,
		Data:       make([]float32, sampleRate),
	}
	for i := range p.Data {
		p.Data[i] = float32(30000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	fn := filepath.Join(t.TempDir(), "sine.wav")
	err := p.Save(fn)
	test.DemandSuccess(t, err)

	q, err := pcm.Load(fn)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, q.SampleRate, sampleRate)
	test.DemandEquality(t, len(q.Data), len(p.Data))

	// sample values survive the trip to disk within rounding error
	for i := range p.Data {
		diff := float64(q.Data[i] - p.Data[i])
		test.ExpectSuccess(t, math.Abs(diff) <= 1.0, "sample accuracy")
	}
}
