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

import (
	"fmt"

	"github.com/mycophonic/rex2dwop/internal/dwop"
)

// DecodeMono is a pure DWOP decoder entry point for tests and for callers
// that already have a raw bitstream outside of a REX2 container. It decodes
// up to len(out) samples and returns the count actually produced.
func DecodeMono(bitstreamBytes []byte, out []int16) (int, error) {
	n, err := dwop.DecodeMono(bitstreamBytes, out)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return n, nil
}

// DecodeStereo is a pure DWOP decoder entry point mirroring DecodeMono for
// parallel-channel (L / R = L + delta) streams. outInterleaved holds L,R
// pairs; the return value is the frame count, not the sample count.
func DecodeStereo(bitstreamBytes []byte, outInterleaved []int16) (int, error) {
	n, err := dwop.DecodeStereo(bitstreamBytes, outInterleaved)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return n, nil
}
