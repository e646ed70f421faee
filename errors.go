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

import "errors"

// Public sentinel errors for consumer error matching.
var (
	// ErrTooSmall indicates the input is shorter than the minimum viable
	// REX2 header.
	ErrTooSmall = errors.New("input too small to be a REX2 file")

	// ErrNotIFF indicates the top-level tag is not "CAT ".
	ErrNotIFF = errors.New("not a REX2/IFF container")

	// ErrTruncatedChunk indicates a chunk's declared length exceeds its
	// enclosing container. Traversal halts at that point but previously
	// parsed chunks are kept; this sentinel is never itself Parse's return
	// value, only a diagnostic passed to the configured logger.
	ErrTruncatedChunk = errors.New("chunk declared length exceeds container boundary")

	// ErrNoAudio indicates an SDAT chunk was never encountered, or the one
	// encountered decoded to zero samples.
	ErrNoAudio = errors.New("no audio data")

	// ErrCorrupt indicates the DWOP decoder's safety cap tripped, its range
	// register collapsed to zero, or it produced fewer samples than the
	// declared frame count.
	ErrCorrupt = errors.New("corrupt DWOP bitstream")

	// ErrOversize indicates a declared or derived frame count exceeds the
	// hard allocation ceiling.
	ErrOversize = errors.New("declared frame count exceeds ceiling")

	// ErrOutOfMemory indicates the PCM buffer allocation failed.
	ErrOutOfMemory = errors.New("PCM allocation failed")
)
