package signal

import (
	"github.com/stratosat/gpssim/pkg/gpssim/cacode"
	"github.com/stratosat/gpssim/pkg/gpssim/lnav"
)

// SatelliteInfo bundles one satellite's LNAV data frame, its C/A code, and
// a two-entry cache of parity-encoded subframes. Parity encoding chains
// D29*/D30* bearer bits across subframes, so only two of the five ever
// need to be held ready at once: the one currently broadcasting and the
// one about to follow it.
type SatelliteInfo struct {
	prn uint8

	frame lnav.DataFrame
	code  [cacode.Length]bool

	paritySubframes [2]lnav.Subframe
	subframeNums    [2]uint8
}

// NewSatelliteInfo returns a SatelliteInfo for prn, initialized starting
// at subframe 0.
func NewSatelliteInfo(prn uint8) *SatelliteInfo {
	s := &SatelliteInfo{prn: prn}
	s.Initialize(0)
	return s
}

// Frame returns the satellite's LNAV data frame, for populating ephemeris
// and clock parameters before synthesis begins.
func (s *SatelliteInfo) Frame() *lnav.DataFrame {
	return &s.frame
}

// Code returns the C/A code chip at chipIndex (0..1022).
func (s *SatelliteInfo) Code(chipIndex uint16) bool {
	return s.code[chipIndex]
}

// Initialize generates the satellite's C/A code and seeds the two-entry
// parity cache with firstSubframe and its successor.
func (s *SatelliteInfo) Initialize(firstSubframe uint8) {
	if firstSubframe > 4 {
		panic("signal: subframe out of range 0..4")
	}
	s.code = cacode.Generate(s.prn)
	s.subframeNums[0] = firstSubframe
	s.subframeNums[1] = (firstSubframe + 1) % 5
	s.paritySubframes[0] = s.frame.ParityFrame(s.subframeNums[0])
	s.paritySubframes[1] = s.frame.ParityFrame(s.subframeNums[1])
}

// subframeIndex returns which of the two cached parity subframes holds
// subframeNum, advancing the cache (and recomputing parity) if neither
// entry currently matches.
func (s *SatelliteInfo) subframeIndex(subframeNum uint8) uint8 {
	if subframeNum > 4 {
		panic("signal: subframe out of range 0..4")
	}
	switch subframeNum {
	case s.subframeNums[0]:
		return 0
	case s.subframeNums[1]:
		return 1
	}

	if s.subframeNums[1] == (s.subframeNums[0]+1)%5 {
		s.subframeNums[0] = subframeNum
		s.paritySubframes[0] = s.frame.ParityFrame(s.subframeNums[0])
		return 0
	}
	s.subframeNums[1] = subframeNum
	s.paritySubframes[1] = s.frame.ParityFrame(s.subframeNums[1])
	return 1
}

// GetMessageBit returns the parity-encoded data bit bitI (0..299) of
// subframe subframeI (0..4), encoding it into the cache on demand.
func (s *SatelliteInfo) GetMessageBit(subframeI uint8, bitI uint16) bool {
	index := s.subframeIndex(subframeI)
	return s.paritySubframes[index].Bit(bitI)
}
