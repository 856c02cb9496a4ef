package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stratosat/gpssim/pkg/gpssim/rng"
)

func circularEphemeris() Ephemeris {
	return Ephemeris{
		M0:           0.5,
		DeltaN:       0.0,
		Eccentricity: 0.001,
		SqrtA:        5153.6,
		Omega0:       1.0,
		I0:           0.95,
		Omega:        0.3,
		OmegaDot:     -8e-9,
		IDOT:         1e-10,
		Toe:          259200,
	}
}

func TestClockOffsetMatchesQuadraticModel(t *testing.T) {
	c := ClockData{Af0: 1e-5, Af1: 1e-12, Af2: 1e-20, Toc: 100000}
	dt := 50.0
	want := c.Af0 + c.Af1*dt + c.Af2*dt*dt
	assert.Equal(t, want, c.Offset(c.Toc+dt))
}

func TestClockOffsetRateIsAnalyticDerivative(t *testing.T) {
	c := ClockData{Af0: 0, Af1: 2e-12, Af2: 3e-20, Toc: 0}
	dt := 10.0
	got := c.OffsetRate(dt)
	want := c.Af1 + 2.0*dt*c.Af2
	assert.Equal(t, want, got)
}

func TestClockOffsetRateRateIsConstant(t *testing.T) {
	c := ClockData{Af2: 4e-20}
	assert.Equal(t, 8e-20, c.OffsetRateRate())
}

func TestClockRandomizeStaysWithinLimits(t *testing.T) {
	src := rng.New(7)
	var c ClockData
	for i := 0; i < 200; i++ {
		c.Randomize(src)
		assert.GreaterOrEqual(t, c.TGD, ClockLimits.TGD.Lower)
		assert.LessOrEqual(t, c.TGD, ClockLimits.TGD.Upper)
		assert.GreaterOrEqual(t, c.Toc, ClockLimits.Toc.Lower)
		assert.LessOrEqual(t, c.Toc, ClockLimits.Toc.Upper)
	}
}

func TestEfromAnomalyConvergesForLowEccentricity(t *testing.T) {
	e := circularEphemeris()
	mk := 1.2
	ek := e.EfromAnomaly(mk)
	residual := ek - e.Eccentricity*math.Sin(ek) - mk
	assert.Less(t, math.Abs(residual), 1e-12)
}

func TestEfromAnomalyHandlesZeroEccentricity(t *testing.T) {
	e := Ephemeris{Eccentricity: 0}
	mk := 2.3
	assert.InDelta(t, mk, e.EfromAnomaly(mk), 1e-12)
}

func TestEfromAnomalyRespectsIterationCap(t *testing.T) {
	// Eccentricity near 1 approaches the degenerate (parabolic) case; the
	// solver must still terminate, converging or stopping at the iteration
	// cap, with a finite result.
	e := Ephemeris{Eccentricity: 0.999999}
	ek := e.EfromAnomaly(3.0)
	assert.False(t, math.IsNaN(ek))
	assert.False(t, math.IsInf(ek, 0))
}

func TestPVAPositionMatchesVelocityByFiniteDifference(t *testing.T) {
	e := circularEphemeris()
	const h = 0.001
	p0, _, _ := e.PVA(e.Toe, false, false)
	p1, _, _ := e.PVA(e.Toe+h, false, false)
	_, v0, _ := e.PVA(e.Toe, true, false)

	approxVx := (p1.X - p0.X) / h
	approxVy := (p1.Y - p0.Y) / h
	approxVz := (p1.Z - p0.Z) / h

	assert.InDelta(t, v0.X, approxVx, 1e-3)
	assert.InDelta(t, v0.Y, approxVy, 1e-3)
	assert.InDelta(t, v0.Z, approxVz, 1e-3)
}

func TestPVAVelocityMatchesAccelerationByFiniteDifference(t *testing.T) {
	e := circularEphemeris()
	const h = 0.01
	_, v0, a0 := e.PVA(e.Toe, true, true)
	_, v1, _ := e.PVA(e.Toe+h, true, false)

	approxAx := (v1.X - v0.X) / h
	approxAy := (v1.Y - v0.Y) / h
	approxAz := (v1.Z - v0.Z) / h

	assert.InDelta(t, a0.X, approxAx, 1e-6)
	assert.InDelta(t, a0.Y, approxAy, 1e-6)
	assert.InDelta(t, a0.Z, approxAz, 1e-6)
}

func TestPReturnsSamePositionAsPVA(t *testing.T) {
	e := circularEphemeris()
	pos := e.P(e.Toe + 1000)
	pvaPos, _, _ := e.PVA(e.Toe+1000, false, false)
	assert.Equal(t, pvaPos, pos)
}

func TestPVReturnsSamePositionAndVelocityAsPVA(t *testing.T) {
	e := circularEphemeris()
	pos, vel := e.PV(e.Toe + 1000)
	pvaPos, pvaVel, _ := e.PVA(e.Toe+1000, true, false)
	assert.Equal(t, pvaPos, pos)
	assert.Equal(t, pvaVel, vel)
}

func TestRelTimeIsZeroForCircularOrbit(t *testing.T) {
	e := circularEphemeris()
	e.Eccentricity = 0
	assert.Equal(t, 0.0, e.RelTime(e.Toe))
}

func TestRelTimeRateIsAnalyticNearRelTime(t *testing.T) {
	e := circularEphemeris()
	const h = 1.0
	r0 := e.RelTime(e.Toe)
	r1 := e.RelTime(e.Toe + h)
	approxRate := (r1 - r0) / h
	assert.InDelta(t, e.RelTimeRate(e.Toe), approxRate, 1e-9)
}

func TestWrapHalfWeekWrapsForwardAndBackward(t *testing.T) {
	assert.InDelta(t, -1.0, wrapHalfWeek(secondsPerWeek-1.0), 1e-9)
	assert.InDelta(t, 1.0, wrapHalfWeek(-secondsPerWeek+1.0), 1e-9)
	assert.Equal(t, 100.0, wrapHalfWeek(100.0))
}

func TestEphemerisRandomizeStaysWithinLimits(t *testing.T) {
	src := rng.New(99)
	var e Ephemeris
	for i := 0; i < 200; i++ {
		e.Randomize(src)
		assert.GreaterOrEqual(t, e.Eccentricity, EphemerisLimits.Eccentricity.Lower)
		assert.LessOrEqual(t, e.Eccentricity, EphemerisLimits.Eccentricity.Upper)
		assert.GreaterOrEqual(t, e.SqrtA, EphemerisLimits.SqrtA.Lower)
		assert.LessOrEqual(t, e.SqrtA, EphemerisLimits.SqrtA.Upper)
	}
}
