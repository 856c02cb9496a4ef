package orbit

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/stratosat/gpssim/pkg/gpssim/paramcodec"
)

// Ephemeris holds the broadcast Keplerian orbital elements and harmonic
// correction terms (IS-GPS-200 subframes 2 and 3).
type Ephemeris struct {
	M0           float64
	DeltaN       float64
	Eccentricity float64
	SqrtA        float64
	Omega0       float64
	I0           float64
	Omega        float64
	OmegaDot     float64
	IDOT         float64

	Cuc float64
	Cus float64
	Crc float64
	Crs float64
	Cic float64
	Cis float64

	Toe  float64
	IODE uint8
}

// ephemerisFieldLimits mirrors the field-by-field scale factor and
// tabulated range for Ephemeris, one paramcodec.Limits per field.
type ephemerisFieldLimits struct {
	M0, DeltaN, Eccentricity, SqrtA    paramcodec.Limits
	Omega0, I0, Omega, OmegaDot, IDOT paramcodec.Limits
	Cuc, Cus, Crc, Crs, Cic, Cis       paramcodec.Limits
	Toe, IODE                         paramcodec.Limits
}

// EphemerisLimits are the IS-GPS-200 scale factors and tabulated ranges for
// Ephemeris, ported from the original source's EphemerisScaleFactors /
// EphemerisLowerLimits / EphemerisUpperLimits tables.
var EphemerisLimits = ephemerisFieldLimits{
	M0: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(31 - 31),
		Upper: (paramcodec.ScalePow2(31) - 1.0) * paramcodec.ScalePow2(-31),
	},
	DeltaN: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-43),
		Lower: -paramcodec.ScalePow2(15 - 43),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-43),
	},
	Eccentricity: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-33),
		Lower: 0.0,
		Upper: 0.03,
	},
	SqrtA: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-19),
		Lower: 2530.0,
		Upper: 8192.0,
	},
	Omega0: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(31 - 31),
		Upper: (paramcodec.ScalePow2(31) - 1.0) * paramcodec.ScalePow2(-31),
	},
	I0: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(31 - 31),
		Upper: (paramcodec.ScalePow2(31) - 1.0) * paramcodec.ScalePow2(-31),
	},
	Omega: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-31),
		Lower: -paramcodec.ScalePow2(31 - 31),
		Upper: (paramcodec.ScalePow2(31) - 1.0) * paramcodec.ScalePow2(-31),
	},
	OmegaDot: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-43),
		Lower: -6.33e-7,
		Upper: 0.0,
	},
	IDOT: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-43),
		Lower: -paramcodec.ScalePow2(13 - 43),
		Upper: (paramcodec.ScalePow2(13) - 1.0) * paramcodec.ScalePow2(-43),
	},
	Cuc: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-29),
		Lower: -paramcodec.ScalePow2(15 - 29),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-29),
	},
	Cus: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-29),
		Lower: -paramcodec.ScalePow2(15 - 29),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-29),
	},
	Crc: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-5),
		Lower: -paramcodec.ScalePow2(15 - 5),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-5),
	},
	Crs: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-5),
		Lower: -paramcodec.ScalePow2(15 - 5),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-5),
	},
	Cic: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-29),
		Lower: -paramcodec.ScalePow2(15 - 29),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-29),
	},
	Cis: paramcodec.Limits{
		Scale: paramcodec.ScalePow2(-29),
		Lower: -paramcodec.ScalePow2(15 - 29),
		Upper: (paramcodec.ScalePow2(15) - 1.0) * paramcodec.ScalePow2(-29),
	},
	Toe: paramcodec.Limits{
		Scale: 16,
		Lower: 0,
		Upper: 604784,
	},
	IODE: paramcodec.Limits{
		Scale: 1,
		Lower: 0,
		Upper: 255,
	},
}

// keplerLogger is where EfromAnomaly reports non-convergence. Defaults to a
// logrus logger with output discarded by nothing in particular (it writes
// to stderr like any other logrus.New()); callers that want the warning
// routed elsewhere can reassign this with SetLogger.
var keplerLogger logrus.FieldLogger = logrus.New()

// SetLogger replaces the logger used to report Kepler solver
// non-convergence.
func SetLogger(l logrus.FieldLogger) {
	keplerLogger = l
}

// meanMotion returns the computed mean motion n = n0 + DeltaN, and the
// time-from-ephemeris t_k, both needed by every method below that touches
// anomaly.
func (e Ephemeris) meanMotion(gpsTime float64) (n, tk float64) {
	a := e.SqrtA * e.SqrtA
	n0 := math.Sqrt(WGS84Mu / (a * a * a))
	tk = wrapHalfWeek(gpsTime - e.Toe)
	return n0 + e.DeltaN, tk
}

// EfromAnomaly solves Kepler's equation M = E - e*sin(E) for E via
// Newton-Raphson, starting from E_0 = M_k. It logs and returns the current
// estimate if maxKeplerIterations is exceeded without converging to
// keplerTolerance.
func (e Ephemeris) EfromAnomaly(mk float64) float64 {
	ek := mk
	for i := 0; i < maxKeplerIterations; i++ {
		deltaE := (mk - ek + e.Eccentricity*math.Sin(ek)) / (1.0 - e.Eccentricity*math.Cos(ek))
		ek += deltaE
		if math.Abs(deltaE) < keplerTolerance {
			return ek
		}
	}
	keplerLogger.Warnf("orbit: kepler iteration did not converge within %d iterations", maxKeplerIterations)
	return ek
}

// EfromTime solves Kepler's equation for the eccentric anomaly at gpsTime.
func (e Ephemeris) EfromTime(gpsTime float64) float64 {
	n, tk := e.meanMotion(gpsTime)
	return e.EfromAnomaly(e.M0 + n*tk)
}

// PVA computes ECEF position and, when requested, velocity and
// acceleration at gpsTime. Acceleration additionally requires velocity, so
// wantAccel implies the velocity terms are computed regardless of
// wantVel.
func (e Ephemeris) PVA(gpsTime float64, wantVel, wantAccel bool) (pos, vel, accel Vector3) {
	wantVel = wantVel || wantAccel

	n, tk := e.meanMotion(gpsTime)
	mk := e.M0 + n*tk
	ek := e.EfromAnomaly(mk)

	sinE, cosE := math.Sin(ek), math.Cos(ek)
	a := e.SqrtA * e.SqrtA

	cvk := (cosE - e.Eccentricity) / (1.0 - e.Eccentricity*cosE)
	svk := (math.Sqrt(1.0-e.Eccentricity*e.Eccentricity) * sinE) / (1.0 - e.Eccentricity*cosE)
	vk := math.Atan2(svk, cvk)

	phik := vk + e.Omega
	sin2phi, cos2phi := math.Sin(2.0*phik), math.Cos(2.0*phik)

	duk := e.Cus*sin2phi + e.Cuc*cos2phi
	drk := e.Crs*sin2phi + e.Crc*cos2phi
	dik := e.Cis*sin2phi + e.Cic*cos2phi

	uk := phik + duk
	rk := a*(1.0-e.Eccentricity*cosE) + drk
	ik := e.I0 + dik + e.IDOT*tk

	xOrb := rk * math.Cos(uk)
	yOrb := rk * math.Sin(uk)

	omegaK := e.Omega0 + (e.OmegaDot-WGS84EarthRate)*tk - WGS84EarthRate*e.Toe

	sinOmega, cosOmega := math.Sin(omegaK), math.Cos(omegaK)
	cosI := math.Cos(ik)
	sinI := math.Sin(ik)

	pos = Vector3{
		X: xOrb*cosOmega - yOrb*cosI*sinOmega,
		Y: xOrb*sinOmega + yOrb*cosI*cosOmega,
		Z: yOrb * sinI,
	}

	if !wantVel {
		return pos, Vector3{}, Vector3{}
	}

	edk := n / (1.0 - e.Eccentricity*cosE)
	vdk := edk * math.Sqrt(1.0-e.Eccentricity*e.Eccentricity) / (1.0 - e.Eccentricity*cosE)
	idk := e.IDOT + 2.0*vdk*(e.Cis*cos2phi-e.Cic*sin2phi)
	udk := vdk + 2.0*vdk*(e.Cus*cos2phi-e.Cuc*sin2phi)
	rdk := e.Eccentricity*a*edk*sinE + 2.0*vdk*(e.Crs*cos2phi-e.Crc*sin2phi)
	omegaDotK := e.OmegaDot - WGS84EarthRate

	xdOrb := rdk*math.Cos(uk) - rk*udk*math.Sin(uk)
	ydOrb := rdk*math.Sin(uk) + rk*udk*math.Cos(uk)

	vel = Vector3{
		X: -xOrb*omegaDotK*sinOmega + xdOrb*cosOmega - ydOrb*sinOmega*cosI -
			yOrb*(omegaDotK*cosOmega*cosI-idk*sinOmega*sinI),
		Y: xOrb*omegaDotK*cosOmega + xdOrb*sinOmega + ydOrb*cosOmega*cosI -
			yOrb*(omegaDotK*sinOmega*cosI+idk*cosOmega*sinI),
		Z: ydOrb*sinI + yOrb*idk*cosI,
	}

	if !wantAccel {
		return pos, vel, Vector3{}
	}

	r2 := rk * rk
	r3 := r2 * rk
	f := -1.5 * J2 * (WGS84Mu / r2) * math.Pow(WGS84EquatorialRadius/rk, 2.0)
	fTerm := f * (1.0 - 5.0*math.Pow(pos.Z/rk, 2.0))
	omegaE2 := WGS84EarthRate * WGS84EarthRate

	accel = Vector3{
		X: -WGS84Mu*pos.X/r3 + fTerm*pos.X/rk + 2.0*vel.Y*WGS84EarthRate + pos.X*omegaE2,
		Y: -WGS84Mu*pos.Y/r3 + fTerm*pos.Y/rk - 2.0*vel.X*WGS84EarthRate + pos.Y*omegaE2,
		Z: -WGS84Mu*pos.Z/r3 + f*(3.0-5.0*math.Pow(pos.Z/rk, 2.0))*pos.Z/rk,
	}
	return pos, vel, accel
}

// P returns the ECEF position at gpsTime.
func (e Ephemeris) P(gpsTime float64) Vector3 {
	pos, _, _ := e.PVA(gpsTime, false, false)
	return pos
}

// PV returns the ECEF position and velocity at gpsTime.
func (e Ephemeris) PV(gpsTime float64) (pos, vel Vector3) {
	pos, vel, _ = e.PVA(gpsTime, true, false)
	return pos, vel
}

// RelTime returns the relativistic clock correction term at gpsTime.
func (e Ephemeris) RelTime(gpsTime float64) float64 {
	return RelativisticF * e.Eccentricity * e.SqrtA * math.Sin(e.EfromTime(gpsTime))
}

// RelTimeRate returns the first time derivative of the relativistic clock
// correction term at gpsTime.
func (e Ephemeris) RelTimeRate(gpsTime float64) float64 {
	n, tk := e.meanMotion(gpsTime)
	eCosE := e.Eccentricity * math.Cos(e.EfromAnomaly(e.M0+n*tk))
	return (n * RelativisticF * e.SqrtA * eCosE) / (1.0 - eCosE)
}

// RelTimeRateRate returns the second time derivative of the relativistic
// clock correction term at gpsTime.
func (e Ephemeris) RelTimeRateRate(gpsTime float64) float64 {
	n, tk := e.meanMotion(gpsTime)
	ek := e.EfromAnomaly(e.M0 + n*tk)
	denom := 1.0 - e.Eccentricity*math.Cos(ek)
	return -(n * n * RelativisticF * e.Eccentricity * e.SqrtA * math.Sin(ek)) / (denom * denom * denom)
}

// Randomize fills e with values drawn uniformly within EphemerisLimits,
// using src for all draws. IODE is left untouched; callers that need a
// consistent IODC/IODE pairing (e.g. lnav.DataFrame.RandomizeParams) derive
// IODE separately and assign it after calling Randomize.
func (e *Ephemeris) Randomize(src uniformSource) {
	e.M0 = EphemerisLimits.M0.RandomizeWithin(src.Uniform01())
	e.DeltaN = EphemerisLimits.DeltaN.RandomizeWithin(src.Uniform01())
	e.Eccentricity = EphemerisLimits.Eccentricity.RandomizeWithin(src.Uniform01())
	e.SqrtA = EphemerisLimits.SqrtA.RandomizeWithin(src.Uniform01())
	e.Omega0 = EphemerisLimits.Omega0.RandomizeWithin(src.Uniform01())
	e.I0 = EphemerisLimits.I0.RandomizeWithin(src.Uniform01())
	e.Omega = EphemerisLimits.Omega.RandomizeWithin(src.Uniform01())
	e.OmegaDot = EphemerisLimits.OmegaDot.RandomizeWithin(src.Uniform01())
	e.IDOT = EphemerisLimits.IDOT.RandomizeWithin(src.Uniform01())
	e.Cuc = EphemerisLimits.Cuc.RandomizeWithin(src.Uniform01())
	e.Cus = EphemerisLimits.Cus.RandomizeWithin(src.Uniform01())
	e.Crc = EphemerisLimits.Crc.RandomizeWithin(src.Uniform01())
	e.Crs = EphemerisLimits.Crs.RandomizeWithin(src.Uniform01())
	e.Cic = EphemerisLimits.Cic.RandomizeWithin(src.Uniform01())
	e.Cis = EphemerisLimits.Cis.RandomizeWithin(src.Uniform01())
	e.Toe = EphemerisLimits.Toe.RandomizeWithin(src.Uniform01())
}
