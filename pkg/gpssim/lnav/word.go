// Package lnav assembles IS-GPS-200 L1 C/A LNAV subframes: TLM/HOW word
// construction, multi-word parameter placement, Hamming-derived parity, and
// subframe 4/5 page rotation.
package lnav

import "github.com/stratosat/gpssim/pkg/gpssim/bitops"

// parityArray25..30 list, in MSB-is-zero indexing, the data bit positions
// XORed into each of a word's six parity bits (IS-GPS-200 20.3.5, Table
// 20-XIV), ported 1:1 from the original source's zero-indexed tables.
var (
	parityArray25 = [14]uint8{0, 1, 2, 4, 5, 9, 10, 11, 12, 13, 16, 17, 19, 22}
	parityArray26 = [14]uint8{1, 2, 3, 5, 6, 10, 11, 12, 13, 14, 17, 18, 20, 23}
	parityArray27 = [14]uint8{0, 2, 3, 4, 6, 7, 11, 12, 13, 14, 15, 18, 19, 21}
	parityArray28 = [14]uint8{1, 3, 4, 5, 7, 8, 12, 13, 14, 15, 16, 19, 20, 22}
	parityArray29 = [15]uint8{0, 2, 4, 5, 6, 8, 9, 13, 14, 15, 16, 17, 20, 21, 23}
	parityArray30 = [13]uint8{2, 4, 5, 7, 8, 9, 10, 12, 14, 18, 21, 22, 23}
)

// infoMaskWord2And10D29/D30 solve words 2 and 10's non-information bits 23
// and 22 so that D29*/D30* come out zero after Parity. They are
// parityArray29/30 with the bit being solved (23, 22 respectively) removed,
// since solving a bit from a mask that includes itself is self-referential.
var (
	infoMaskWord2And10D29 = [14]uint8{0, 2, 4, 5, 6, 8, 9, 13, 14, 15, 16, 17, 20, 21}
	infoMaskWord2And10D30 = [12]uint8{2, 4, 5, 7, 8, 9, 10, 12, 14, 18, 21, 23}
)

// Word is a 30-bit LNAV register stored in the high 30 bits of a uint32,
// addressed MSB-first (position 0 is the first transmitted bit and the
// register's most significant bit). Positions 30 and 31, the two low bits,
// are not written by any Word operation.
type Word struct {
	bits uint32
}

// NewWord returns a Word with its register preloaded to raw.
func NewWord(raw uint32) Word {
	return Word{bits: raw}
}

// Bit reads the bit at pos.
func (w Word) Bit(pos uint8) bool {
	return bitops.Read(bitops.MSBIsZero, w.bits, pos)
}

// Set forces the bit at pos to 1.
func (w *Word) Set(pos uint8) {
	bitops.Set(bitops.MSBIsZero, &w.bits, pos)
}

// Assign sets the bit at pos to val.
func (w *Word) Assign(pos uint8, val bool) {
	bitops.Assign(bitops.MSBIsZero, &w.bits, pos, val)
}

// SegmentSet copies bits [lo..hi] of val (LSB-indexed) into the word
// starting at dstPos (MSB-indexed).
func (w *Word) SegmentSet(dstPos uint8, val uint32, lo, hi uint8) {
	bitops.SegmentSet(&w.bits, dstPos, val, lo, hi)
}

// Val returns the raw 30-bit register.
func (w Word) Val() uint32 {
	return w.bits
}

// Reset zeroes the register.
func (w *Word) Reset() {
	w.bits = 0
}

// Parity returns a copy of w with its six parity bits (positions 24..29)
// recomputed from D29* and D30*, and bits 0..23 complemented by D30* per
// IS-GPS-200 20.3.5.
func (w Word) Parity(d29, d30 bool) Word {
	result := w
	result.Assign(24, d29 != xorAt(result.bits, parityArray25[:]))
	result.Assign(25, d30 != xorAt(result.bits, parityArray26[:]))
	result.Assign(26, d29 != xorAt(result.bits, parityArray27[:]))
	result.Assign(27, d30 != xorAt(result.bits, parityArray28[:]))
	result.Assign(28, d30 != xorAt(result.bits, parityArray29[:]))
	result.Assign(29, d29 != xorAt(result.bits, parityArray30[:]))
	for i := uint8(0); i < 24; i++ {
		result.Assign(i, result.Bit(i) != d30)
	}
	return result
}

func xorAt(bits uint32, positions []uint8) bool {
	return bitops.XorOf(bitops.MSBIsZero, bits, positions)
}
