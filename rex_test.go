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

package rex_test

import (
	"encoding/binary"
	"errors"
	"testing"

	rex "github.com/mycophonic/rex2dwop"
)

// chunk assembles one IFF chunk: tag + big-endian length + payload, with a
// trailing pad byte for odd-length payloads.
func chunk(tag string, payload []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))

	buf := append([]byte(tag), lenBuf[:]...)
	buf = append(buf, payload...)

	if len(payload)%2 == 1 {
		buf = append(buf, 0)
	}

	return buf
}

// cat wraps children as the single top-level "CAT " chunk every REX2 file
// begins with.
func cat(subtype string, children ...[]byte) []byte {
	payload := []byte(subtype)
	for _, c := range children {
		payload = append(payload, c...)
	}

	return chunk("CAT ", payload)
}

func sinfPayload(channels uint8, sampleRate uint16, frameLength uint32) []byte {
	payload := make([]byte, 10)
	payload[0] = channels

	binary.BigEndian.PutUint16(payload[4:6], sampleRate)
	binary.BigEndian.PutUint32(payload[6:10], frameLength)

	return payload
}

func slcePayload(offset, length uint32) []byte {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint32(payload[0:4], offset)
	binary.BigEndian.PutUint32(payload[4:8], length)

	return payload
}

// oneZeroSampleBitstream decodes to a single sample with value 0 (see
// internal/dwop's TestDecodeSampleFirstZeroDelta for the bit-level trace).
func oneZeroSampleBitstream() []byte { return []byte{0x80} }

// twoZeroSampleBitstream decodes to two consecutive zero samples.
func twoZeroSampleBitstream() []byte { return []byte{0x82, 0x00} }

func TestParseRejectsNonIFF(t *testing.T) {
	t.Parallel()

	data := append([]byte("RIFF"), make([]byte, 8)...)

	rf, err := rex.Parse(data)
	if !errors.Is(err, rex.ErrNotIFF) {
		t.Fatalf("err = %v, want ErrNotIFF", err)
	}

	if rf.PCM != nil {
		t.Fatalf("PCM = %v, want nil on a rejected parse", rf.PCM)
	}
}

func TestParseRejectsTooSmall(t *testing.T) {
	t.Parallel()

	_, err := rex.Parse([]byte("CAT "))
	if !errors.Is(err, rex.ErrTooSmall) {
		t.Fatalf("err = %v, want ErrTooSmall", err)
	}
}

func TestParseNoAudioWithoutSDAT(t *testing.T) {
	t.Parallel()

	data := cat("REX2", chunk("SINF", sinfPayload(1, 44100, 1)))

	_, err := rex.Parse(data)
	if !errors.Is(err, rex.ErrNoAudio) {
		t.Fatalf("err = %v, want ErrNoAudio", err)
	}
}

func TestParseSynthesizesFullSliceWhenNoneDeclared(t *testing.T) {
	t.Parallel()

	data := cat("REX2",
		chunk("SINF", sinfPayload(1, 44100, 1)),
		chunk("SDAT", oneZeroSampleBitstream()),
	)

	rf, err := rex.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rf.PCM) != 1 || rf.PCM[0] != 0 {
		t.Fatalf("PCM = %v, want [0]", rf.PCM)
	}

	if len(rf.Slices) != 1 || rf.Slices[0] != (rex.Slice{Offset: 0, Length: 1}) {
		t.Fatalf("Slices = %v, want [{0 1}]", rf.Slices)
	}
}

func TestParseClampsSliceLengthPastEnd(t *testing.T) {
	t.Parallel()

	data := cat("REX2",
		chunk("SINF", sinfPayload(1, 44100, 2)),
		chunk("SLCE", slcePayload(1, 100)),
		chunk("SDAT", twoZeroSampleBitstream()),
	)

	rf, err := rex.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rf.Slices) != 1 {
		t.Fatalf("Slices = %v, want exactly 1", rf.Slices)
	}

	if rf.Slices[0].Length != 1 {
		t.Fatalf("clamped length = %d, want 1 (frames=2, offset=1)", rf.Slices[0].Length)
	}
}

func TestParseSliceAtExactEndClampsToZero(t *testing.T) {
	t.Parallel()

	data := cat("REX2",
		chunk("SINF", sinfPayload(1, 44100, 1)),
		chunk("SLCE", slcePayload(1, 5)), // offset == pcm_frames
		chunk("SDAT", oneZeroSampleBitstream()),
	)

	rf, err := rex.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rf.Slices) != 1 || rf.Slices[0].Length != 0 {
		t.Fatalf("Slices = %v, want length 0", rf.Slices)
	}
}

func TestParseDiscardsTransientMarkers(t *testing.T) {
	t.Parallel()

	children := [][]byte{chunk("SINF", sinfPayload(1, 44100, 2))}

	// 2 real slices (length > 1), 3 transient markers (length <= 1).
	children = append(children,
		chunk("SLCE", slcePayload(0, 1)),
		chunk("SLCE", slcePayload(0, 2)),
		chunk("SLCE", slcePayload(0, 0)),
		chunk("SLCE", slcePayload(1, 1)),
		chunk("SLCE", slcePayload(0, 2)),
	)
	children = append(children, chunk("SDAT", twoZeroSampleBitstream()))

	rf, err := rex.Parse(cat("REX2", children...))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rf.Slices) != 2 {
		t.Fatalf("Slices = %v, want 2 non-marker entries", rf.Slices)
	}
}

func TestParseSecondSDATIgnored(t *testing.T) {
	t.Parallel()

	data := cat("REX2",
		chunk("SINF", sinfPayload(1, 44100, 1)),
		chunk("SDAT", oneZeroSampleBitstream()),
		chunk("SDAT", twoZeroSampleBitstream()),
	)

	rf, err := rex.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rf.PCM) != 1 {
		t.Fatalf("PCM = %v, want length 1 (only the first SDAT decoded)", rf.PCM)
	}
}

func TestDestroyResetsFields(t *testing.T) {
	t.Parallel()

	rf := &rex.RexFile{PCM: []int16{1, 2, 3}, Channels: 2}

	rex.Destroy(rf)

	if rf.PCM != nil || rf.Channels != 0 {
		t.Fatalf("rf = %+v, want zero value", rf)
	}
}

func TestDestroyNilIsNoOp(t *testing.T) {
	t.Parallel()

	rex.Destroy(nil)
}
