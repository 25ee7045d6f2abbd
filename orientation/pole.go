// Package orientation computes body-fixed orientation: the rotation between
// a body's principal-axis (or fixed-axis) frame and the inertial frame the
// planetary orientation constants are expressed against, following the IAU
// Working Group pole right-ascension/declination/prime-meridian convention
//.
package orientation

import "math"

const deg2rad = math.Pi / 180.0

// Term is one periodic nutation/precession correction applied to a pole's
// RA, Dec, and prime-meridian angles. Argument0 + Argument1*T (degrees,
// T in Julian centuries TDB past J2000) gives the term's phase angle; its
// amplitudes are added as RAAmp*sin, DecAmp*cos, WAmp*sin respectively,
// matching the IAU report's own table layout.
type Term struct {
	Argument0, Argument1     float64
	RAAmp, DecAmp, WAmp float64
}

// Pole is a planetary orientation record: the quadratic-in-time pole
// right ascension, declination, and prime-meridian angles, plus an optional
// list of periodic correction Terms.
//
// RA/Dec are quadratic in T (Julian centuries TDB); W is quadratic in d
// (days TDB past J2000), since prime-meridian rotation accumulates far
// faster than pole precession.
type Pole struct {
	RA0, RA1, RA2    float64
	Dec0, Dec1, Dec2 float64
	W0, W1, W2       float64
	Terms            []Term
}

// Angles evaluates the pole's RA, Dec, and W at the given time, in radians.
// T is centuries TDB past J2000, d is days TDB past J2000 (d = T*36525).
// Only the first MaxTerms() periodic corrections are summed — see
// SetMaxTerms.
func (p Pole) Angles(T, d float64) (ra, dec, w float64) {
	raDeg := p.RA0 + p.RA1*T + p.RA2*T*T
	decDeg := p.Dec0 + p.Dec1*T + p.Dec2*T*T
	wDeg := p.W0 + p.W1*d + p.W2*d*d

	n := len(p.Terms)
	if max := precisionMaxTerms; max >= 0 && max < n {
		n = max
	}
	for i := 0; i < n; i++ {
		term := p.Terms[i]
		theta := (term.Argument0 + term.Argument1*T) * deg2rad
		s, c := math.Sincos(theta)
		raDeg += term.RAAmp * s
		decDeg += term.DecAmp * c
		wDeg += term.WAmp * s
	}

	return raDeg * deg2rad, decDeg * deg2rad, wDeg * deg2rad
}

// secPerDay and daysPerCentury convert a rate of change in T or d into a
// per-second rate (see Rates).
const (
	secPerDay      = 86400.0
	daysPerCentury = 36525.0
)

// Rates returns d(ra)/dt, d(dec)/dt, d(w)/dt in radians per second, by
// differentiating the same polynomial-plus-periodic-terms expression
// Angles evaluates.
func (p Pole) Rates(T, d float64) (raRate, decRate, wRate float64) {
	dTdt := 1.0 / (daysPerCentury * secPerDay)
	dDdt := 1.0 / secPerDay

	raDegRate := (p.RA1 + 2*p.RA2*T) * dTdt
	decDegRate := (p.Dec1 + 2*p.Dec2*T) * dTdt
	wDegRate := (p.W1 + 2*p.W2*d) * dDdt

	n := len(p.Terms)
	if max := precisionMaxTerms; max >= 0 && max < n {
		n = max
	}
	for i := 0; i < n; i++ {
		term := p.Terms[i]
		theta := (term.Argument0 + term.Argument1*T) * deg2rad
		s, c := math.Sincos(theta)
		thetaRate := term.Argument1 * deg2rad * dTdt
		raDegRate += term.RAAmp * c * thetaRate
		decDegRate += -term.DecAmp * s * thetaRate
		wDegRate += term.WAmp * c * thetaRate
	}

	return raDegRate * deg2rad, decDegRate * deg2rad, wDegRate * deg2rad
}
