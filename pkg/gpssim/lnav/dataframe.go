package lnav

import (
	"github.com/stratosat/gpssim/pkg/gpssim/orbit"
	"github.com/stratosat/gpssim/pkg/gpssim/paramcodec"
)

// uniformSource is the randomness dependency RandomizeParams needs,
// satisfied by *rng.Source.
type uniformSource interface {
	Uniform01() float64
}

var reservedPages4 = [13]uint8{1, 6, 11, 12, 14, 15, 16, 19, 20, 21, 22, 23, 24}
var almanacPages4 = [8]uint8{2, 3, 4, 5, 7, 8, 9, 10}
var subframe4Ids = [25]uint8{
	57, 25, 26, 27, 28, 57, 29, 30, 31, 32, 57, 62, 52, 53, 54,
	57, 55, 56, 58, 59, 57, 60, 61, 62, 63,
}
var subframe5Ids = [25]uint8{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 51,
}

// DataFrame assembles the five LNAV subframes broadcast by one satellite:
// clock/ephemeris data (subframes 1-3) and the rotating page content of
// subframes 4 and 5.
type DataFrame struct {
	subframes [5]Subframe

	clock orbit.ClockData
	eph   orbit.Ephemeris

	tow  uint32
	week uint16 // 10 bits

	integrityStatusFlag bool
	alertFlag           bool
	antiSpoofFlag       bool

	l2Flag uint8
	ura    uint8
	health uint8

	fitIntervalFlag bool
	aodo            uint8

	page uint8

	d29Star bool
	d30Star bool
}

// Subframe returns the assembled subframe at index (0..4).
func (f *DataFrame) Subframe(index uint8) Subframe {
	if index > 4 {
		panic("lnav: subframe index out of range 0..4")
	}
	return f.subframes[index]
}

// SetClockData installs the clock parameters subframe 1 encodes.
func (f *DataFrame) SetClockData(c orbit.ClockData) { f.clock = c }

// SetEphemeris installs the orbital parameters subframes 2 and 3 encode.
func (f *DataFrame) SetEphemeris(e orbit.Ephemeris) { f.eph = e }

// SetTOW sets the time-of-week count backing the HOW word of subframe 1.
func (f *DataFrame) SetTOW(tow uint32) { f.tow = tow }

// SetWeek sets the 10-bit broadcast week number.
func (f *DataFrame) SetWeek(week uint16) { f.week = week }

// SetFlags sets the integrity status, alert, and anti-spoof flags carried
// in the TLM/HOW words of every subframe.
func (f *DataFrame) SetFlags(integrityStatus, alert, antiSpoof bool) {
	f.integrityStatusFlag = integrityStatus
	f.alertFlag = alert
	f.antiSpoofFlag = antiSpoof
}

// SetSignalHealth sets the 2-bit L2 signal code, 4-bit user range
// accuracy index, and 6-bit SV health fields of subframe 1.
func (f *DataFrame) SetSignalHealth(l2Flag, ura, health uint8) {
	f.l2Flag = l2Flag
	f.ura = ura
	f.health = health
}

// SetFitInterval sets the subframe 2 curve-fit interval flag and the
// 5-bit age-of-data-offset field.
func (f *DataFrame) SetFitInterval(fitIntervalFlag bool, aodo uint8) {
	f.fitIntervalFlag = fitIntervalFlag
	f.aodo = aodo
}

// SetPage sets the subframe 4/5 page index (0..24); TimeIncrement
// advances it by one per frame, wrapping from 24 back to 0.
func (f *DataFrame) SetPage(page uint8) {
	if page > 24 {
		panic("lnav: page index out of range 0..24")
	}
	f.page = page
}

// TimeIncrement advances the time-of-week count by one frame period (five
// 6 s subframes, i.e. 20 counts of 1.5 s), rolling the week number over
// when the count exceeds one week, and moves the subframe 4/5 page index
// on to the next page.
func (f *DataFrame) TimeIncrement() {
	f.tow += 20
	if f.tow > 403199 {
		f.tow %= 403200
		f.week++
	}
	f.page = (f.page + 1) % 25
}

// preamble writes the TLM and HOW words (words 1 and 2) of subframe sfIdx
// (0-indexed).
func (f *DataFrame) preamble(sfIdx uint8) {
	f.subframes[sfIdx].SetWord(0, TLM(0, f.integrityStatusFlag))
	fullTOW := f.tow + uint32(sfIdx)*4
	f.subframes[sfIdx].SetWord(1, HOW(fullTOW, f.alertFlag, f.antiSpoofFlag, sfIdx+1))
}

// ParityFrame returns subframe sf with D29*/D30* parity-carry bits
// threaded word-to-word and full parity recomputed, matching the
// bit-exact broadcast encoding. It mutates the frame's own D29*/D30*
// bearer state, which carries into the next call (subframes are parity-
// encoded in broadcast order).
func (f *DataFrame) ParityFrame(sf uint8) Subframe {
	result := f.subframes[sf]

	for w := uint8(0); w < 10; w++ {
		word := result.Word(w)
		if w == 1 || w == 9 {
			word.Assign(23, f.d30Star != xorAt(word.Val(), infoMaskWord2And10D29[:]))
			word.Assign(22, f.d29Star != xorAt(word.Val(), infoMaskWord2And10D30[:]))
		}
		word = word.Parity(f.d29Star, f.d30Star)
		f.d29Star = word.Bit(28)
		f.d30Star = word.Bit(29)
		result.SetWord(w, word)
	}
	return result
}

// SetSubframe sets subframe sfIdx (0-indexed, 0..4).
func (f *DataFrame) SetSubframe(sfIdx uint8) {
	switch sfIdx {
	case 0:
		f.SetSubframe1()
	case 1:
		f.SetSubframe2()
	case 2:
		f.SetSubframe3()
	case 3:
		f.SetSubframe4()
	case 4:
		f.SetSubframe5()
	default:
		panic("lnav: subframe index out of range 0..4")
	}
}

// SetSubframes sets all five subframes.
func (f *DataFrame) SetSubframes() {
	f.SetSubframe1()
	f.SetSubframe2()
	f.SetSubframe3()
	f.SetSubframe4()
	f.SetSubframe5()
}

// --- subframe 1: clock data ---

func (f *DataFrame) tgd() uint32 {
	return paramcodec.Encode(f.clock.TGD, orbit.ClockLimits.TGD.Scale)
}

func (f *DataFrame) toc() uint32 {
	return paramcodec.Encode(f.clock.Toc, orbit.ClockLimits.Toc.Scale)
}

func (f *DataFrame) af0() uint32 {
	return paramcodec.Encode(f.clock.Af0, orbit.ClockLimits.Af0.Scale)
}

func (f *DataFrame) af1() uint32 {
	return paramcodec.Encode(f.clock.Af1, orbit.ClockLimits.Af1.Scale)
}

func (f *DataFrame) af2() uint32 {
	return paramcodec.Encode(f.clock.Af2, orbit.ClockLimits.Af2.Scale)
}

// SetSubframe1 assembles the clock correction subframe.
func (f *DataFrame) SetSubframe1() {
	f.preamble(0)

	w2 := f.subframes[0].Word(2)
	w2.SegmentSet(0, uint32(f.week), 0, 9)
	w2.SegmentSet(10, uint32(f.l2Flag), 0, 1)
	w2.SegmentSet(12, uint32(f.ura), 0, 3)
	w2.SegmentSet(16, uint32(f.health), 0, 5)
	w2.SegmentSet(22, uint32(f.clock.IODC), 8, 9)
	f.subframes[0].SetWord(2, w2)

	// Words 4, 5, 6 are reserved.

	w6 := f.subframes[0].Word(6)
	w6.SegmentSet(16, f.tgd(), 0, 7)
	f.subframes[0].SetWord(6, w6)

	w7 := f.subframes[0].Word(7)
	w7.SegmentSet(0, uint32(f.clock.IODC), 0, 7)
	w7.SegmentSet(8, f.toc(), 0, 15)
	f.subframes[0].SetWord(7, w7)

	w8 := f.subframes[0].Word(8)
	w8.SegmentSet(0, f.af2(), 0, 7)
	w8.SegmentSet(8, f.af1(), 0, 15)
	f.subframes[0].SetWord(8, w8)

	w9 := f.subframes[0].Word(9)
	w9.SegmentSet(0, f.af0(), 0, 21)
	f.subframes[0].SetWord(9, w9)
}

// --- subframe 2: ephemeris part A ---

func (f *DataFrame) crs() uint32 {
	return paramcodec.Encode(f.eph.Crs, orbit.EphemerisLimits.Crs.Scale)
}

func (f *DataFrame) deltaN() uint32 {
	return paramcodec.Encode(f.eph.DeltaN, orbit.EphemerisLimits.DeltaN.Scale)
}

func (f *DataFrame) m0() uint32 {
	return paramcodec.Encode(f.eph.M0, orbit.EphemerisLimits.M0.Scale)
}

func (f *DataFrame) cuc() uint32 {
	return paramcodec.Encode(f.eph.Cuc, orbit.EphemerisLimits.Cuc.Scale)
}

func (f *DataFrame) eccentricity() uint32 {
	return paramcodec.Encode(f.eph.Eccentricity, orbit.EphemerisLimits.Eccentricity.Scale)
}

func (f *DataFrame) cus() uint32 {
	return paramcodec.Encode(f.eph.Cus, orbit.EphemerisLimits.Cus.Scale)
}

func (f *DataFrame) sqrtA() uint32 {
	return paramcodec.Encode(f.eph.SqrtA, orbit.EphemerisLimits.SqrtA.Scale)
}

func (f *DataFrame) toe() uint32 {
	return paramcodec.Encode(f.eph.Toe, orbit.EphemerisLimits.Toe.Scale)
}

// SetSubframe2 assembles the first ephemeris subframe.
func (f *DataFrame) SetSubframe2() {
	f.preamble(1)

	w2 := f.subframes[1].Word(2)
	w2.SegmentSet(0, uint32(f.eph.IODE), 0, 7)
	w2.SegmentSet(8, f.crs(), 0, 15)
	f.subframes[1].SetWord(2, w2)

	m := f.m0()
	w3 := f.subframes[1].Word(3)
	w3.SegmentSet(0, f.deltaN(), 0, 15)
	w3.SegmentSet(16, m, 24, 31)
	f.subframes[1].SetWord(3, w3)

	w4 := f.subframes[1].Word(4)
	w4.SegmentSet(0, m, 0, 23)
	f.subframes[1].SetWord(4, w4)

	eBin := f.eccentricity()
	w5 := f.subframes[1].Word(5)
	w5.SegmentSet(0, f.cuc(), 0, 15)
	w5.SegmentSet(16, eBin, 24, 31)
	f.subframes[1].SetWord(5, w5)

	w6 := f.subframes[1].Word(6)
	w6.SegmentSet(0, eBin, 0, 23)
	f.subframes[1].SetWord(6, w6)

	sqrtABin := f.sqrtA()
	w7 := f.subframes[1].Word(7)
	w7.SegmentSet(0, f.cus(), 0, 15)
	w7.SegmentSet(16, sqrtABin, 24, 31)
	f.subframes[1].SetWord(7, w7)

	w8 := f.subframes[1].Word(8)
	w8.SegmentSet(0, sqrtABin, 0, 23)
	f.subframes[1].SetWord(8, w8)

	w9 := f.subframes[1].Word(9)
	w9.SegmentSet(0, f.toe(), 0, 15)
	w9.Assign(16, f.fitIntervalFlag)
	w9.SegmentSet(17, uint32(f.aodo), 0, 4)
	f.subframes[1].SetWord(9, w9)
}

// --- subframe 3: ephemeris part B ---

func (f *DataFrame) cic() uint32 {
	return paramcodec.Encode(f.eph.Cic, orbit.EphemerisLimits.Cic.Scale)
}

func (f *DataFrame) omega0() uint32 {
	return paramcodec.Encode(f.eph.Omega0, orbit.EphemerisLimits.Omega0.Scale)
}

func (f *DataFrame) cis() uint32 {
	return paramcodec.Encode(f.eph.Cis, orbit.EphemerisLimits.Cis.Scale)
}

func (f *DataFrame) i0() uint32 {
	return paramcodec.Encode(f.eph.I0, orbit.EphemerisLimits.I0.Scale)
}

func (f *DataFrame) crc() uint32 {
	return paramcodec.Encode(f.eph.Crc, orbit.EphemerisLimits.Crc.Scale)
}

func (f *DataFrame) omega() uint32 {
	return paramcodec.Encode(f.eph.Omega, orbit.EphemerisLimits.Omega.Scale)
}

func (f *DataFrame) omegaDot() uint32 {
	return paramcodec.Encode(f.eph.OmegaDot, orbit.EphemerisLimits.OmegaDot.Scale)
}

func (f *DataFrame) idot() uint32 {
	return paramcodec.Encode(f.eph.IDOT, orbit.EphemerisLimits.IDOT.Scale)
}

// SetSubframe3 assembles the second ephemeris subframe.
func (f *DataFrame) SetSubframe3() {
	f.preamble(2)

	omega0Bin := f.omega0()
	w2 := f.subframes[2].Word(2)
	w2.SegmentSet(0, f.cic(), 0, 15)
	w2.SegmentSet(16, omega0Bin, 24, 31)
	f.subframes[2].SetWord(2, w2)

	w3 := f.subframes[2].Word(3)
	w3.SegmentSet(0, omega0Bin, 0, 23)
	f.subframes[2].SetWord(3, w3)

	i0Bin := f.i0()
	w4 := f.subframes[2].Word(4)
	w4.SegmentSet(0, f.cis(), 0, 15)
	w4.SegmentSet(16, i0Bin, 24, 31)
	f.subframes[2].SetWord(4, w4)

	w5 := f.subframes[2].Word(5)
	w5.SegmentSet(0, i0Bin, 0, 23)
	f.subframes[2].SetWord(5, w5)

	omegaBin := f.omega()
	w6 := f.subframes[2].Word(6)
	w6.SegmentSet(0, f.crc(), 0, 15)
	w6.SegmentSet(16, omegaBin, 24, 31)
	f.subframes[2].SetWord(6, w6)

	w7 := f.subframes[2].Word(7)
	w7.SegmentSet(0, omegaBin, 0, 23)
	f.subframes[2].SetWord(7, w7)

	w8 := f.subframes[2].Word(8)
	w8.SegmentSet(0, f.omegaDot(), 0, 23)
	f.subframes[2].SetWord(8, w8)

	w9 := f.subframes[2].Word(9)
	w9.SegmentSet(0, uint32(f.eph.IODE), 0, 7)
	w9.SegmentSet(8, f.idot(), 0, 13)
	f.subframes[2].SetWord(9, w9)
}

// SetSubframe4 assembles the current page of subframe 4. Reserved,
// almanac, NMCT, special-message, ionospheric/UTC, and SV-config/health
// pages are left with only their data-ID and page-ID words populated
// (their payload words keep the subframe's zero-initialized content).
func (f *DataFrame) SetSubframe4() {
	f.preamble(3)

	w2 := f.subframes[3].Word(2)
	w2.Assign(0, false)
	w2.Assign(1, true)
	w2.SegmentSet(2, uint32(subframe4Ids[f.page]), 0, 5)
	f.subframes[3].SetWord(2, w2)

	pageNum := f.page + 1
	if containsUint8(reservedPages4[:], pageNum) {
		return
	}
	if containsUint8(almanacPages4[:], pageNum) {
		// almanac data
		return
	}
	switch pageNum {
	case 13:
		// NMCT (navigation message correction table)
		return
	case 17:
		// special messages
		return
	case 18:
		// ionospheric and UTC data
		return
	case 25:
		// A-S flags, SV configs, health
		return
	}
}

// SetSubframe5 assembles the current page of subframe 5.
func (f *DataFrame) SetSubframe5() {
	f.preamble(4)

	w2 := f.subframes[4].Word(2)
	w2.Assign(0, false)
	w2.Assign(1, true)
	w2.SegmentSet(2, uint32(subframe5Ids[f.page]), 0, 5)
	f.subframes[4].SetWord(2, w2)

	if f.page < 24 {
		// almanac data
		return
	}
	// page == 24: SV health
}

func containsUint8(haystack []uint8, needle uint8) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// RandomizeParams draws new clock and ephemeris parameters within their
// IS-GPS-200 tabulated ranges, ties the clock reference time to the
// ephemeris reference time as IS-GPS-200 requires, and derives IODC from
// a freshly randomized IODE (rather than a fixed constant) so repeated
// calls don't collide on the same issue-of-data pairing.
func (f *DataFrame) RandomizeParams(src uniformSource) {
	f.clock.Randomize(src)
	f.eph.Randomize(src)
	f.clock.Toc = f.eph.Toe

	f.eph.IODE = uint8(src.Uniform01() * 256)
	f.clock.IODC = uint16(f.eph.IODE)
}
