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

// Package pcm loads, saves and processes mono audio data. The package
// exists for the Echo() function, a feedback delay implemented over a
// DoubleBuffer - the previous output block is read while the new output
// block is written, which is exactly the two-slot contract.
//
// WAV and MP3 files can be loaded. Saving is always to a 16bit mono WAV
// file.
package pcm

// logging tag for all functions in the pcm package
const pcmLogTag = "pcm"

// PCM is mono audio data. In the case of stereo source files the data is
// taken from the left channel.
//
// Sample values are kept at 16bit scale rather than normalised to the
// unit range. Values outside of the 16bit range are clamped on save.
type PCM struct {
	// the sample rate of the source file
	SampleRate float64

	// total time of the recording in seconds
	TotalTime float64

	Data []float32
}
