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
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/logger"
)

const saveBitDepth = 16

// clamp a sample value to the signed 16bit range
func clampSample(v float32) int {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int(v)
}

// Save audio data to the named file as a 16bit mono WAV file. Sample
// values outside of the 16bit range are clamped.
func (p PCM) Save(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("pcm: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("pcm: %v", err)
		}
	}()

	// audio format of one indicates PCM data
	enc := wav.NewEncoder(f, int(p.SampleRate), saveBitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(p.SampleRate),
		},
		Data:           make([]int, len(p.Data)),
		SourceBitDepth: saveBitDepth,
	}
	for i, v := range p.Data {
		buf.Data[i] = clampSample(v)
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("pcm: wav: %v", err)
	}

	logger.Logf(logger.Allow, pcmLogTag, "writing audio to %s", filename)

	if err := enc.Close(); err != nil {
		return curated.Errorf("pcm: wav: %v", err)
	}

	return nil
}
