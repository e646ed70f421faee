/*
   Copyright Mycophonic.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rex

// Slice describes one contiguous segment of decoded audio, addressed by
// frame offset and length. Lengths may be clamped during post-processing so
// that offset+length never exceeds the PCM frame count.
type Slice struct {
	Offset int
	Length int
}

// RexFile holds everything extracted from a parsed REX2 file: metadata,
// slice descriptors, and the fully decoded PCM buffer it owns.
type RexFile struct {
	SampleRate     int
	Channels       int
	BytesPerSample int
	Tempo          float64 // BPM
	TimeSigNum     uint8
	TimeSigDen     uint8
	Bars           uint16
	Beats          uint8
	FrameLength    int // total declared frame count
	Slices         []Slice

	// PCM is the decoded audio, interleaved L,R,L,R... for stereo, one
	// sample per frame for mono.
	PCM []int16

	// Err holds a human-readable description of the failure that produced
	// this value, set only when Parse itself returned a non-nil error.
	Err string
}

// Destroy releases rf's PCM buffer and resets its fields. It is safe to call
// on a zero-value or already-destroyed RexFile.
func Destroy(rf *RexFile) {
	if rf == nil {
		return
	}

	*rf = RexFile{}
}
