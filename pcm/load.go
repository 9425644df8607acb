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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/doublebuffer/curated"
	"github.com/jetsetilly/doublebuffer/logger"
)

// Load audio data from the named file. The file type is decided by the
// file extension. WAV and MP3 files are supported.
func Load(filename string) (PCM, error) {
	p := PCM{
		Data: make([]float32, 0),
	}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf("pcm: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(f)
		if dec == nil {
			return p, curated.Errorf("pcm: wav: %v", "error decoding")
		}

		if !dec.IsValidFile() {
			return p, curated.Errorf("pcm: wav: %v", "not a valid wav file")
		}

		logger.Log(logger.Allow, pcmLogTag, "loading from wav file")

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf("pcm: wav: %v", err)
		}
		floatBuf := buf.AsFloat32Buffer()

		// copy first channel only of data stream
		p.Data = make([]float32, 0, len(floatBuf.Data)/int(dec.NumChans))
		for i := 0; i < len(floatBuf.Data); i += int(dec.NumChans) {
			p.Data = append(p.Data, floatBuf.Data[i])
		}

		// sample rate
		p.SampleRate = float64(dec.SampleRate)

		// total time of recording in seconds
		dur, err := dec.Duration()
		if err != nil {
			return p, curated.Errorf("pcm: wav: %v", err)
		}
		p.TotalTime = dur.Seconds()

	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return p, curated.Errorf("pcm: mp3: %v", err)
		}

		logger.Log(logger.Allow, pcmLogTag, "loading from mp3 file")

		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf("pcm: mp3: %v", err)
			}

			// index increment of 4 because:
			//  - two bytes per sample per channel
			//  - we only want the left channel
			for i := 0; i < chunkLen; i += 4 {
				// little endian 16 bit sample
				v := int(chunk[i]) | (int(chunk[i+1]) << 8)

				// interpret as two's complement
				if v >= 32768 {
					v -= 65536
				}

				p.Data = append(p.Data, float32(v))
			}
		}

		// according to the go-mp3 docs:
		//
		// "The stream is always formatted as 16bit (little endian) 2
		// channels even if the source is single channel MP3. Thus, a sample
		// always consists of 4 bytes."
		p.SampleRate = float64(dec.SampleRate())

		// total time of recording in seconds
		p.TotalTime = float64(len(p.Data)) / p.SampleRate

	default:
		return p, curated.Errorf("pcm: unsupported file extension: *%s", strings.ToLower(filepath.Ext(filename)))
	}

	logger.Logf(logger.Allow, pcmLogTag, "sample rate: %0.2fHz", p.SampleRate)
	logger.Logf(logger.Allow, pcmLogTag, "total time: %.02fs", p.TotalTime)

	return p, nil
}
