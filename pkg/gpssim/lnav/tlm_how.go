package lnav

// TLM assembles the telemetry word: the fixed 8-bit preamble `10001011`,
// a 14-bit telemetry message, a reserved bit, and the integrity status
// flag.
func TLM(tlmMessage uint16, integrityStatusFlag bool) Word {
	var w Word
	w.Set(0)
	w.Set(4)
	w.Set(6)
	w.Set(7)
	w.SegmentSet(8, uint32(tlmMessage), 0, 13)
	w.Assign(22, integrityStatusFlag)
	return w
}

// HOW assembles the handover word: the truncated time-of-week count,
// alert and anti-spoof flags, and the subframe ID (1..5).
func HOW(fullTOW uint32, alertFlag, antiSpoofFlag bool, subframeID uint8) Word {
	if subframeID < 1 || subframeID > 5 {
		panic("lnav: subframe ID out of range 1..5")
	}
	var w Word
	w.SegmentSet(0, fullTOW, 2, 18)
	w.Assign(17, alertFlag)
	w.Assign(18, antiSpoofFlag)
	w.SegmentSet(19, uint32(subframeID), 0, 2)
	return w
}
