package orientation

import (
	"math"

	"github.com/starhaven/spicekit/spatial"
)

// ToInertial returns the DCM that rotates a vector expressed in the body's
// own (pole/prime-meridian) frame into the inertial frame the pole's RA/Dec
// are referenced against. See ComposeRADecW for the construction.
func (p Pole) ToInertial(T, d float64) spatial.Matrix3 {
	ra, dec, w := p.Angles(T, d)
	return ComposeRADecW(ra, dec, w)
}

// ToInertialRate returns the time derivative (per second) of ToInertial's
// matrix. See ComposeRADecWRate for the construction.
func (p Pole) ToInertialRate(T, d float64) spatial.Matrix3 {
	ra, dec, w := p.Angles(T, d)
	raRate, decRate, wRate := p.Rates(T, d)
	return ComposeRADecWRate(ra, dec, w, raRate, decRate, wRate)
}

// ComposeRADecW builds the DCM that rotates a vector expressed in a body's
// own pole/prime-meridian frame into the inertial frame the angles are
// referenced against:
//
//	M = R3(-(ra+90°)) * R1(-(90°-dec)) * R3(-w)
//
// This is the standard IAU Working Group construction: R3(-w) undoes the
// body's own spin, R1 tilts the spin axis to the pole's declination, and the
// final R3 aligns the ascending node with the pole's right ascension. A BPC
// Chebyshev Euler-angle segment's three angles follow this exact same
// convention, so this constructor serves both the polynomial Pole model and
// the BPC segment path.
func ComposeRADecW(ra, dec, w float64) spatial.Matrix3 {
	r3w := spatial.RotationZ(-w)
	r1dec := spatial.RotationX(-(math.Pi/2 - dec))
	r3ra := spatial.RotationZ(-(ra + math.Pi/2))
	return r3ra.Mul(r1dec).Mul(r3w)
}

// ComposeRADecWRate returns the time derivative of ComposeRADecW's matrix,
// built via the product rule across its three elementary-rotation factors.
func ComposeRADecWRate(ra, dec, w, raRate, decRate, wRate float64) spatial.Matrix3 {
	r3w := spatial.RotationZ(-w)
	r1dec := spatial.RotationX(-(math.Pi/2 - dec))
	r3ra := spatial.RotationZ(-(ra + math.Pi/2))

	dr3w := spatial.RotationZRate(-w, -wRate)
	dr1dec := spatial.RotationXRate(-(math.Pi/2 - dec), decRate)
	dr3ra := spatial.RotationZRate(-(ra + math.Pi/2), -raRate)

	// d/dt(ABC) = A'BC + AB'C + ABC'
	term1 := dr3ra.Mul(r1dec).Mul(r3w)
	term2 := r3ra.Mul(dr1dec).Mul(r3w)
	term3 := r3ra.Mul(r1dec).Mul(dr3w)
	return term1.Add(term2).Add(term3)
}
