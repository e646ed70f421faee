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

package dwop

// DecodeMono decodes up to len(out) samples from a single-channel DWOP
// bitstream into out, returning the number of samples actually produced.
// A short count (below the caller's expected length) is the caller's signal
// to treat the stream as corrupt; DecodeMono itself never returns an error
// for a short count, only for the unary/range-coder safety trips.
func DecodeMono(bitstream []byte, out []int16) (int, error) {
	r := NewBitReader(bitstream)
	ch := NewChannelState()

	for i := range out {
		sample, err := ch.DecodeSample(r)
		if err != nil {
			return i, err
		}

		out[i] = sample
	}

	return len(out), nil
}

// DecodeStereo decodes up to len(out)/2 interleaved L,R frames from a
// parallel-channel DWOP bitstream. The right channel is carried as a delta
// against the left sample already decoded for the same frame: R = L + delta.
// Returns the number of interleaved frames produced.
func DecodeStereo(bitstream []byte, out []int16) (int, error) {
	frames := len(out) / 2

	r := NewBitReader(bitstream)

	left := NewChannelState()
	right := NewChannelState()

	for i := range frames {
		l, err := left.DecodeSample(r)
		if err != nil {
			return i, err
		}

		delta, err := right.DecodeSample(r)
		if err != nil {
			return i, err
		}

		out[2*i] = l
		out[2*i+1] = l + delta
	}

	return frames, nil
}
