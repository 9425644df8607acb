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

package pcm

import (
	"github.com/jetsetilly/doublebuffer"
	"github.com/jetsetilly/doublebuffer/curated"
)

// Echo applies a feedback delay to the audio data. Each sample of the
// output is the corresponding input sample plus the sample one block
// earlier in the output, attenuated by the decay value:
//
//	out[n] = in[n] + decay*out[n-blockSize]
//
// The delay line is a DoubleBuffer of one block. The previous output block
// is read from the current slot while the new output block is written to
// the next slot, and the slots switch once per block.
//
// The block size is in samples and must be positive. The decay value must
// be in the range [0, 1) or the feedback never dies away.
func Echo(p PCM, blockSize int, decay float32) (PCM, error) {
	if blockSize <= 0 {
		return PCM{}, curated.Errorf("pcm: echo: block size must be positive")
	}
	if decay < 0.0 || decay >= 1.0 {
		return PCM{}, curated.Errorf("pcm: echo: decay must be in the range [0, 1)")
	}

	out := PCM{
		SampleRate: p.SampleRate,
		TotalTime:  p.TotalTime,
		Data:       make([]float32, len(p.Data)),
	}

	// the two blocks must not share a backing array so each slot gets its
	// own allocation
	buf := doublebuffer.New(make([]float32, blockSize), make([]float32, blockSize))

	for start := 0; start < len(p.Data); start += blockSize {
		end := min(start+blockSize, len(p.Data))

		err := buf.Advance(func(prev *[]float32, next *[]float32) error {
			for i := start; i < end; i++ {
				v := p.Data[i] + decay*(*prev)[i-start]
				(*next)[i-start] = v
				out.Data[i] = v
			}

			// a short final block must not leave stale samples in the
			// unused tail
			for i := end - start; i < blockSize; i++ {
				(*next)[i] = 0.0
			}

			return nil
		})
		if err != nil {
			return PCM{}, err
		}
	}

	return out, nil
}
