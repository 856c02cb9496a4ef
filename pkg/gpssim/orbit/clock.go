package orbit

import (
	"github.com/stratosat/gpssim/pkg/gpssim/paramcodec"
)

// uniformSource is the randomness dependency Randomize needs, satisfied by
// *rng.Source. Declared as an interface here so orbit does not need to
// import rng just to name a type.
type uniformSource interface {
	Uniform01() float64
}

// ClockData holds the broadcast satellite clock correction parameters
// (IS-GPS-200 subframe 1).
type ClockData struct {
	TGD  float64
	Toc  float64
	Af0  float64
	Af1  float64
	Af2  float64
	IODC uint16
}

// clockFieldLimits mirrors the field-by-field scale factor and tabulated
// range for ClockData, one paramcodec.Limits per field.
type clockFieldLimits struct {
	TGD, Toc, Af0, Af1, Af2, IODC paramcodec.Limits
}

// ClockLimits are the IS-GPS-200 scale factors and tabulated ranges for
// ClockData, ported from the original source's ClockDataScaleFactors /
// ClockDataLowerLimits / ClockDataUpperLimits tables.
var ClockLimits = clockFieldLimits{
	TGD: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(7 - 31),
		Upper: 127 * paramcodec.ScalePow2(-31),
	},
	Toc: paramcodec.Limits{
		Scale: 16,
		Lower: 0,
		Upper: 604784,
	},
	Af0: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(21 - 31),
		Upper: (paramcodec.ScalePow2(21) - 1.0) * paramcodec.ScalePow2(-31),
	},
	Af1: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-43),
		Lower: -paramcodec.ScalePow2(15 - 43),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-43),
	},
	Af2: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-55),
		Lower: -paramcodec.ScalePow2(7 - 55),
		Upper: 127 * paramcodec.ScalePow2(-55),
	},
	IODC: paramcodec.Limits{
		Scale: 1,
		Lower: 0,
		Upper: 1023,
	},
}

// Offset returns the clock bias at gps_time, per IS-GPS-200 20.3.3.3.3.1.
func (c ClockData) Offset(gpsTime float64) float64 {
	dt := gpsTime - c.Toc
	return c.Af0 + c.Af1*dt + c.Af2*dt*dt
}

// OffsetRate returns the first time derivative of the clock bias.
func (c ClockData) OffsetRate(gpsTime float64) float64 {
	return c.Af1 + 2.0*(gpsTime-c.Toc)*c.Af2
}

// OffsetRateRate returns the second time derivative of the clock bias,
// which is time-invariant.
func (c ClockData) OffsetRateRate() float64 {
	return 2.0 * c.Af2
}

// Randomize fills c with values drawn uniformly within ClockLimits, using
// src for all draws.
func (c *ClockData) Randomize(src uniformSource) {
	c.TGD = ClockLimits.TGD.RandomizeWithin(src.Uniform01())
	c.Toc = ClockLimits.Toc.RandomizeWithin(src.Uniform01())
	c.Af0 = ClockLimits.Af0.RandomizeWithin(src.Uniform01())
	c.Af1 = ClockLimits.Af1.RandomizeWithin(src.Uniform01())
	c.Af2 = ClockLimits.Af2.RandomizeWithin(src.Uniform01())
}
