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

import "encoding/binary"

const (
	maxSlices = 256 // slice count cap; SLCE chunks past this are ignored

	globMinLen = 20
	headMinLen = 6
	sinfMinLen = 10
	slceMinLen = 8
)

// readGLOB extracts tempo and time signature fields from a GLOB payload.
// Bytes 0..4 of the payload are undocumented and read but not interpreted,
// per the documented-offsets-only policy for this chunk.
func readGLOB(payload []byte, rf *RexFile) {
	if len(payload) < globMinLen {
		return
	}

	rf.Bars = binary.BigEndian.Uint16(payload[4:6])
	rf.Beats = payload[6]
	rf.TimeSigNum = payload[7]
	rf.TimeSigDen = payload[8]
	rf.Tempo = float64(binary.BigEndian.Uint32(payload[16:20])) / 1000
}

// readHEAD extracts bytes-per-sample from a HEAD payload.
func readHEAD(payload []byte, rf *RexFile) {
	if len(payload) < headMinLen {
		return
	}

	rf.BytesPerSample = int(payload[5])
}

// readSINF extracts channel count, sample rate, and total frame length from
// a SINF payload. Bytes 1..3 are undocumented and read but not interpreted.
func readSINF(payload []byte, rf *RexFile) {
	if len(payload) < sinfMinLen {
		return
	}

	channels := int(payload[0])
	if channels == 1 || channels == 2 {
		rf.Channels = channels
	}

	if rate := binary.BigEndian.Uint16(payload[4:6]); rate != 0 {
		rf.SampleRate = int(rate)
	}

	rf.FrameLength = int(binary.BigEndian.Uint32(payload[6:10]))
}

// readSLCE extracts one slice descriptor from a SLCE payload. Entries whose
// length is <= 1 are transient markers, discarded rather than appended.
func readSLCE(payload []byte, rf *RexFile) {
	if len(payload) < slceMinLen || len(rf.Slices) >= maxSlices {
		return
	}

	offset := int(binary.BigEndian.Uint32(payload[0:4]))
	length := int(binary.BigEndian.Uint32(payload[4:8]))

	if length <= 1 {
		return
	}

	rf.Slices = append(rf.Slices, Slice{Offset: offset, Length: length})
}
