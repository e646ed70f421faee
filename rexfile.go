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
	"log/slog"

	"github.com/mycophonic/rex2dwop/internal/dwop"
	"github.com/mycophonic/rex2dwop/internal/iff"
)

const (
	minFileSize       = headerSize + 4 // "CAT " header plus its 4-byte subtype
	headerSize        = 8
	maxContainerDepth = 32
	maxFrames         = 10_000_000
)

// parseState threads the configured logger and a latched fatal error through
// the recursive chunk walk. A non-nil fatalErr aborts every enclosing level
// as soon as it is observed.
type parseState struct {
	rf          *RexFile
	logger      *slog.Logger
	sdatDecoded bool
	fatalErr    error
}

// Parse consumes a read-only REX2 byte buffer and returns a populated
// RexFile, or a failure RexFile plus a wrapped sentinel error. No partial
// results are returned on failure: the returned RexFile's only meaningful
// field is Err.
func Parse(data []byte, opts ...Option) (*RexFile, error) {
	o := newOptions(opts)

	if len(data) < minFileSize {
		return fail(ErrTooSmall, "input too small to be a REX2 file")
	}

	if string(data[0:4]) != "CAT " {
		return fail(ErrNotIFF, "top-level tag is not CAT")
	}

	rf := &RexFile{SampleRate: 44100, Channels: 1}
	st := &parseState{rf: rf, logger: o.logger}

	found := false

	iff.Walk(data, 0, len(data), func(c iff.Chunk) bool {
		if string(c.Tag[:]) == "CAT " && len(c.Payload) >= 4 {
			found = true
			walkLevel(c.Payload[4:], st, 0)
		}

		return false // only the first top-level chunk is the REX2 root
	})

	if !found {
		return fail(ErrNotIFF, "top-level CAT chunk has no payload")
	}

	if st.fatalErr != nil {
		return &RexFile{Err: st.fatalErr.Error()}, st.fatalErr
	}

	if !st.sdatDecoded || len(rf.PCM) == 0 {
		return fail(ErrNoAudio, "no SDAT chunk produced audio")
	}

	if len(rf.Slices) == 0 {
		rf.Slices = []Slice{{Offset: 0, Length: rf.FrameLength}}
	}

	postProcessSlices(rf)

	return rf, nil
}

// fail builds the failure RexFile/error pair Parse returns on any fatal
// condition: a released (empty) RexFile with a human-readable Err, plus a
// sentinel-wrapped error for errors.Is matching.
func fail(sentinel error, msg string) (*RexFile, error) {
	err := fmt.Errorf("%w: %s", sentinel, msg)

	return &RexFile{Err: err.Error()}, err
}

// walkLevel dispatches every chunk at one container level: CAT chunks
// recurse, GLOB/HEAD/SINF/SLCE populate rf, SDAT triggers a one-shot DWOP
// decode, and unrecognized tags are skipped.
func walkLevel(buf []byte, st *parseState, depth int) {
	if st.fatalErr != nil {
		return
	}

	truncated := iff.Walk(buf, 0, len(buf), func(c iff.Chunk) bool {
		if st.fatalErr != nil {
			return false
		}

		switch string(c.Tag[:]) {
		case "CAT ":
			if depth+1 <= maxContainerDepth && len(c.Payload) >= 4 {
				walkLevel(c.Payload[4:], st, depth+1)
			}
		case "GLOB":
			readGLOB(c.Payload, st.rf)
		case "HEAD":
			readHEAD(c.Payload, st.rf)
		case "SINF":
			readSINF(c.Payload, st.rf)
		case "SLCE":
			readSLCE(c.Payload, st.rf)
		case "SDAT":
			if !st.sdatDecoded {
				decodeSDAT(c.Payload, st)
			}
		}

		return st.fatalErr == nil
	})

	if truncated && st.fatalErr == nil {
		st.logger.Warn("REX2 container truncated", "error", ErrTruncatedChunk)
	}
}

// decodeSDAT runs the DWOP stream decoder over an SDAT payload exactly once,
// sizing and allocating the PCM buffer per the rules in §4.6: a declared
// SINF frame length is used verbatim, otherwise a conservative bound is
// derived from the payload size.
func decodeSDAT(payload []byte, st *parseState) {
	rf := st.rf
	channels := rf.Channels

	if channels != 1 && channels != 2 {
		channels = 1
	}

	declaredFrames := rf.FrameLength

	frames := declaredFrames
	if frames <= 0 {
		frames = 2*len(payload) + 1024
	}

	if frames > maxFrames {
		st.fatalErr = fmt.Errorf("%w: %d frames", ErrOversize, frames)

		return
	}

	pcm, err := allocatePCM(frames * channels)
	if err != nil {
		st.fatalErr = err

		return
	}

	var n int

	var decodeErr error

	if channels == 2 {
		n, decodeErr = dwop.DecodeStereo(payload, pcm)
	} else {
		n, decodeErr = dwop.DecodeMono(payload, pcm)
	}

	if decodeErr != nil {
		st.fatalErr = fmt.Errorf("%w: %w", ErrCorrupt, decodeErr)

		return
	}

	if declaredFrames > 0 && n < declaredFrames {
		st.fatalErr = fmt.Errorf("%w: decoded %d of %d declared frames", ErrCorrupt, n, declaredFrames)

		return
	}

	rf.Channels = channels
	rf.PCM = pcm[:n*channels]
	rf.FrameLength = n
	st.sdatDecoded = true
}

// allocatePCM allocates an int16 buffer, converting the runtime panic a
// pathological sample count would raise into ErrOutOfMemory.
func allocatePCM(samples int) (buf []int16, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()

	if samples < 0 {
		return nil, fmt.Errorf("%w: negative sample count", ErrOutOfMemory)
	}

	return make([]int16, samples), nil
}

// postProcessSlices clamps every slice so offset+length never exceeds the
// decoded frame count, without reordering the list.
func postProcessSlices(rf *RexFile) {
	frames := rf.FrameLength

	for i := range rf.Slices {
		s := &rf.Slices[i]

		if s.Offset >= frames {
			s.Length = 0

			continue
		}

		if s.Offset+s.Length > frames {
			s.Length = frames - s.Offset
		}
	}
}
