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

// Package iff walks an in-memory IFF-style chunk tree: a flat sequence of
// tag + big-endian-length + payload records, even-padded, with no trailing
// index. It knows nothing about which tags are REX2-specific; the caller
// supplies the dispatch.
package iff

import "encoding/binary"

const (
	headerSize = 8 // 4-byte ASCII tag + 4-byte big-endian length
)

// Chunk is one sibling chunk found during a Walk call.
type Chunk struct {
	Tag     [4]byte
	Payload []byte // exactly Length bytes, bounds-checked against the buffer
	// End is the byte offset, within the buffer Walk was called on, of the
	// first byte after this chunk (including its pad byte, if any). Callers
	// that recurse into a container chunk pass Payload back into Walk with
	// their own sub-boundary.
	End int
}

// Walk calls fn once per sibling chunk found in data[start:end], in order.
// It stops as soon as fewer than headerSize bytes remain before end (a
// normal end of the chunk sequence), as soon as a chunk's declared length
// would read past end (truncated, not a fault — reported via the returned
// truncated flag so the caller can log it), or as soon as fn returns false.
func Walk(data []byte, start, end int, fn func(Chunk) bool) (truncated bool) {
	pos := start

	for end-pos >= headerSize {
		var tag [4]byte
		copy(tag[:], data[pos:pos+4])

		length := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		payloadStart := pos + headerSize
		payloadEnd := payloadStart + length

		// length < 0 only triggers on 32-bit int platforms, where a length at
		// or above 1<<31 wraps the int(uint32) conversion negative; on 64-bit
		// it's always representable and this guard is never hit.
		if length < 0 || payloadEnd > end {
			return true
		}

		next := payloadEnd
		if length%2 == 1 {
			next++ // odd-length payloads are followed by one pad byte
		}

		if !fn(Chunk{Tag: tag, Payload: data[payloadStart:payloadEnd], End: next}) {
			return false
		}

		pos = next
	}

	return false
}
