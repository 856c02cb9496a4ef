// Package cacode generates the IS-GPS-200 C/A ranging code: a 1023-chip
// Gold code produced by combining two 10-stage LFSRs (G1 and G2), with a
// PRN-indexed pair of output taps selecting the G2 sequence.
package cacode

// Length is the number of chips in one C/A code period.
const Length = 1023

// g1FeedbackTaps are the 0-indexed stage taps for the G1 polynomial
// x^10 + x^3 + 1 (IS-GPS-200 taps 3 and 10, one-indexed).
var g1FeedbackTaps = [2]int{2, 9}

// g2FeedbackTaps are the 0-indexed stage taps for the G2 polynomial
// x^10 + x^9 + x^8 + x^6 + x^3 + x^2 + 1 (IS-GPS-200 taps 2,3,6,8,9,10).
var g2FeedbackTaps = [6]int{1, 2, 5, 7, 8, 9}

// g2OutputTaps holds, for PRN 1..32, the pair of 1-indexed G2 stage taps
// combined (XORed) to form that satellite's chip sequence, per IS-GPS-200
// Table 3-Ia.
var g2OutputTaps = map[uint8][2]int{
	1: {2, 6}, 2: {3, 7}, 3: {4, 8}, 4: {5, 9}, 5: {1, 9},
	6: {2, 10}, 7: {1, 8}, 8: {2, 9}, 9: {3, 10}, 10: {2, 3},
	11: {3, 4}, 12: {5, 6}, 13: {6, 7}, 14: {7, 8}, 15: {8, 9},
	16: {9, 10}, 17: {1, 4}, 18: {2, 5}, 19: {3, 6}, 20: {4, 7},
	21: {5, 8}, 22: {6, 9}, 23: {1, 3}, 24: {4, 6}, 25: {5, 7},
	26: {6, 8}, 27: {7, 9}, 28: {8, 10}, 29: {1, 6}, 30: {2, 7},
	31: {3, 8}, 32: {4, 9},
}

func xorTaps(reg [10]bool, taps []int) bool {
	result := false
	for _, t := range taps {
		result = result != reg[t]
	}
	return result
}

func shift(reg *[10]bool, feedback bool) {
	for i := len(reg) - 1; i > 0; i-- {
		reg[i] = reg[i-1]
	}
	reg[0] = feedback
}

// Generate returns the 1023-chip C/A code sequence for the given PRN
// (1..32).
func Generate(prn uint8) [Length]bool {
	taps, ok := g2OutputTaps[prn]
	if !ok {
		panic("cacode: PRN out of range 1..32")
	}
	g2Taps := []int{taps[0] - 1, taps[1] - 1}

	var g1, g2 [10]bool
	for i := range g1 {
		g1[i] = true
		g2[i] = true
	}

	var code [Length]bool
	for i := 0; i < Length; i++ {
		out1 := g1[9]
		out2 := xorTaps(g2, g2Taps)
		code[i] = out1 != out2

		fb1 := xorTaps(g1, g1FeedbackTaps[:])
		fb2 := xorTaps(g2, g2FeedbackTaps[:])
		shift(&g1, fb1)
		shift(&g2, fb2)
	}
	return code
}
