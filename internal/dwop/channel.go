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

//nolint:gosec // Integer conversions match the reference codec's fixed-width arithmetic.
package dwop

const (
	energyInit = 2560
	rangeInit  = 2

	quantNumer = 3
	quantBias  = 0x24
	quantShift = 7

	unaryQuota = 7
	unaryCap   = 50000 // safety cap on the unary quotient loop

	energyDecayShift = 5
)

// caseOrder remaps an energy-argmin index to a predictor update case. The
// mapping is not the identity and must stay a lookup table: confusing index
// 2 with case 2, or case 4 with index 4, silently diverges after the first
// higher-order predictor is selected.
var caseOrder = [5]int{0, 1, 4, 2, 3}

// ChannelState is one DWOP predictor/entropy-coder state, decoding one
// 16-bit sample per DecodeSample call.
type ChannelState struct {
	S  [5]int32  // predictor registers, doubled representation
	E  [5]uint32 // per-predictor running energy
	RV uint32    // range-coder register, persists across samples
	BA int       // bits-accumulated, persists across samples
}

// NewChannelState returns a channel state in its wire-mandated initial
// condition: S all zero, E all 2560, RV 2, BA 0.
func NewChannelState() ChannelState {
	var cs ChannelState

	for i := range cs.E {
		cs.E[i] = energyInit
	}

	cs.RV = rangeInit

	return cs
}

// DecodeSample decodes one 16-bit sample, advancing c and r in lockstep.
func (c *ChannelState) DecodeSample(r *BitReader) (int16, error) {
	k := c.selectPredictor()
	minE := c.E[k]

	step := (minE*quantNumer + quantBias) >> quantShift

	acc, cs, err := decodeUnary(r, step)
	if err != nil {
		return 0, err
	}

	nb, err := c.rangeBitCount(cs)
	if err != nil {
		return 0, err
	}

	rem := c.readRemainder(r, nb, cs)
	c.BA = nb

	val := acc + rem
	d := int32(val) ^ -(int32(val) & 1) //nolint:gosec // zig-zag decode, spec-mandated wraparound

	c.updatePredictor(caseOrder[k], d)
	c.updateEnergy()

	return int16(c.S[0] >> 1), nil //nolint:gosec // truncation to 16-bit PCM is spec-mandated
}

// selectPredictor scans E[0..4] and returns the lowest index whose energy is
// strictly smaller than every earlier candidate.
func (c *ChannelState) selectPredictor() int {
	best := 0

	for i := 1; i < len(c.E); i++ {
		if c.E[i] < c.E[best] {
			best = i
		}
	}

	return best
}

// decodeUnary reads the unary quotient: acc accumulates cs each time a zero
// bit is read, and cs quadruples after every seven additions (qc counts them
// down and resets when the stride quadruples).
func decodeUnary(r *BitReader, step uint32) (acc, cs uint32, err error) {
	cs = step
	qc := unaryQuota

	for iter := 0; ; iter++ {
		if iter >= unaryCap {
			return 0, 0, ErrUnaryOverrun
		}

		if r.ReadBit() == 1 {
			return acc, cs, nil
		}

		acc += cs
		qc--

		if qc == 0 {
			cs <<= 2
			qc = unaryQuota
		}
	}
}

// rangeBitCount derives the remainder bit count nb for this sample and
// leaves c.RV satisfying cs < RV <= 2*cs.
func (c *ChannelState) rangeBitCount(cs uint32) (int, error) {
	nb := c.BA

	if cs >= c.RV {
		for cs >= c.RV {
			c.RV <<= 1
			nb++

			if c.RV == 0 {
				return 0, ErrRangeCollapse
			}
		}

		return nb, nil
	}

	nb++
	t := c.RV

	for {
		c.RV = t
		t >>= 1
		nb--

		if cs >= t {
			break
		}
	}

	return nb, nil
}

// readRemainder reads the remainder bits and folds them against the
// range-coder cutover co = RV - cs.
func (c *ChannelState) readRemainder(r *BitReader, nb int, cs uint32) uint32 {
	ext := r.ReadBits(nb)
	co := c.RV - cs

	if ext < co {
		return ext
	}

	x := r.ReadBit()

	return co + (ext-co)*2 + x
}

// updatePredictor applies the case-p update from §4.2 step 7, snapshotting
// the prior state o before mutating S.
func (c *ChannelState) updatePredictor(p int, d int32) {
	o := c.S

	switch p {
	case 0:
		c.S[0] = d
		c.S[1] = d - o[0]
		c.S[2] = c.S[1] - o[1]
		c.S[3] = c.S[2] - o[2]
		c.S[4] = c.S[3] - o[3]
	case 1:
		c.S[0] = o[0] + d
		c.S[1] = d
		c.S[2] = d - o[1]
		c.S[3] = c.S[2] - o[2]
		c.S[4] = c.S[3] - o[3]
	case 4:
		c.S[1] = o[1] + d
		c.S[0] = o[0] + c.S[1]
		c.S[2] = d
		c.S[3] = d - o[2]
		c.S[4] = c.S[3] - o[3]
	case 2:
		c.S[2] = o[2] + d
		c.S[1] = o[1] + c.S[2]
		c.S[0] = o[0] + c.S[1]
		c.S[3] = d
		c.S[4] = d - o[3]
	case 3:
		c.S[3] = o[3] + d
		c.S[2] = o[2] + c.S[3]
		c.S[1] = o[1] + c.S[2]
		c.S[0] = o[0] + c.S[1]
		c.S[4] = d
	}
}

// updateEnergy applies the biased-absolute-value decay to every energy slot.
// S[i] ^ (S[i] >> 31) is |S[i]| for non-negative S[i] and |S[i]|-1 for
// negative S[i]; the off-by-one bias is part of the wire contract.
func (c *ChannelState) updateEnergy() {
	for i := range c.E {
		absS := uint32(c.S[i] ^ (c.S[i] >> 31))
		c.E[i] = c.E[i] + absS - (c.E[i] >> energyDecayShift)
	}
}
