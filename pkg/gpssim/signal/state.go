// Package signal synthesizes sample-accurate GPS L1 C/A baseband/IF
// signals: an NCO-driven carrier modulated by a C/A code chip sequence and
// the LNAV navigation data bit, across arbitrarily chunked sample buffers
// with phase continuity at buffer boundaries.
package signal

import "github.com/stratosat/gpssim/pkg/gpssim/orbit"

// State is the minimal tuple sufficient to resume synthesis at any sample
// boundary: the LNAV message position (subframe/bit/code cycle) and the
// code/carrier phase.
type State struct {
	Subframe  uint8 // 0..4
	Bit       uint16 // 0..299
	CodeCycle uint8 // 0..19

	Chip         float64 // [0,1023)
	CodeFreq     float64
	CarrierFreq  float64 // intermediate + doppler, Hz
	CarrierPhase float64 // radians
}

// NewState returns a State at the start of the given subframe, with the
// code rate defaulted to the nominal IS-GPS-200 C/A chipping rate.
func NewState(subframe uint8, carrierFreq float64) State {
	if subframe > 4 {
		panic("signal: subframe out of range 0..4")
	}
	return State{
		Subframe:    subframe,
		CodeFreq:    orbit.CARate,
		CarrierFreq: carrierFreq,
	}
}
