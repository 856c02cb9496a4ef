package signal

import (
	"math"
	"math/cmplx"
)

const (
	codeLength  = 1023.0
	codeCycles  = 20
	bitsPerWord = 300
	subframes   = 5
)

// advance rolls state's code cycle counter forward by one code period,
// and every 20th period (one data bit) rolls the bit/subframe position
// too, wrapping subframe 4 back to 0. navData is only refetched on a bit
// boundary; otherwise it is returned unchanged, since the data bit can't
// have changed mid-bit.
func advance(state *State, sat *SatelliteInfo, navData bool) bool {
	state.CodeCycle++
	if state.CodeCycle != codeCycles {
		return navData
	}
	state.CodeCycle = 0
	state.Bit++
	if state.Bit == bitsPerWord {
		state.Bit = 0
		state.Subframe++
		if state.Subframe == subframes {
			state.Subframe = 0
		}
	}
	return sat.GetMessageBit(state.Subframe, state.Bit)
}

// GenSignalWithData synthesizes len(out) complex samples for one
// satellite starting from state, writing them into out and advancing
// state in place (code phase, carrier phase, and message position). It
// assumes constant carrier and code frequency across the call.
//
// carryover must be the newCarryover returned by the previous call for
// the same state (false for the first call); it disambiguates a chip
// wrap occurring exactly at sample 0 from no wrap at all. sess may be nil
// if session-correlated logging isn't wanted.
func GenSignalWithData(sess *Session, state *State, sat *SatelliteInfo, out []complex128, sampleRate, amplitude float64, carryover bool) (newCarryover bool) {
	if state.Subframe > 4 || state.Bit > 299 || state.CodeCycle > 19 {
		panic("signal: state out of range")
	}
	if len(out) == 0 {
		sess.warnEmptyBuffer("GenSignalWithData")
		return carryover
	}

	angularFrequency := state.CarrierFreq * 2 * math.Pi

	prevChip := -1.0
	if carryover {
		prevChip = 1024.0
	}
	navData := sat.GetMessageBit(state.Subframe, state.Bit)

	for i := range out {
		delT := float64(i) / sampleRate
		currentChip := math.Mod(delT*state.CodeFreq+state.Chip, codeLength)

		if prevChip > currentChip {
			navData = advance(state, sat, navData)
		}

		sign := -1.0
		if sat.Code(uint16(currentChip)) != navData {
			sign = 1.0
		}
		phase := angularFrequency*delT + state.CarrierPhase
		out[i] = complex(amplitude*sign, 0) * cmplx.Exp(complex(0, phase))

		prevChip = currentChip
	}

	delT := float64(len(out)) / sampleRate
	state.Chip = math.Mod(delT*state.CodeFreq+state.Chip, codeLength)
	state.CarrierPhase = math.Mod(angularFrequency*delT+state.CarrierPhase, 2*math.Pi)

	return prevChip > state.Chip
}

// GenBasebandSignalsWithData synthesizes len(out) complex samples as the
// lock-step sum of multiple satellites' contributions, one State and
// SatelliteInfo pair per satellite. Unlike GenSignalWithData it omits the
// carrier factor: every sample is a real-valued sum of ±amplitude chip
// contributions, useful for modeling a post-downconversion composite
// baseband signal rather than an IF one.
func GenBasebandSignalsWithData(sess *Session, states []*State, sats []*SatelliteInfo, out []complex128, sampleRate, amplitude float64, carryovers []bool) (newCarryovers []bool) {
	if len(states) != len(sats) || len(states) != len(carryovers) {
		panic("signal: states, sats, and carryovers must have equal length")
	}
	if len(out) == 0 {
		sess.warnEmptyBuffer("GenBasebandSignalsWithData")
		return carryovers
	}

	prevChips := make([]float64, len(states))
	navData := make([]bool, len(states))
	for i, st := range states {
		if st.Subframe > 4 || st.Bit > 299 || st.CodeCycle > 19 {
			panic("signal: state out of range")
		}
		prevChips[i] = -1.0
		if carryovers[i] {
			prevChips[i] = 1024.0
		}
		navData[i] = sats[i].GetMessageBit(st.Subframe, st.Bit)
	}

	currentChips := make([]float64, len(states))
	for k := range out {
		delT := float64(k) / sampleRate
		sample := 0.0
		for i, st := range states {
			currentChips[i] = math.Mod(delT*st.CodeFreq+st.Chip, codeLength)

			if prevChips[i] > currentChips[i] {
				navData[i] = advance(st, sats[i], navData[i])
			}

			sign := -1.0
			if sats[i].Code(uint16(currentChips[i])) != navData[i] {
				sign = 1.0
			}
			sample += amplitude * sign
			prevChips[i] = currentChips[i]
		}
		out[k] = complex(sample, 0)
	}

	delT := float64(len(out)) / sampleRate
	newCarryovers = make([]bool, len(states))
	for i, st := range states {
		st.Chip = math.Mod(delT*st.CodeFreq+st.Chip, codeLength)
		newCarryovers[i] = prevChips[i] > st.Chip
	}
	return newCarryovers
}
