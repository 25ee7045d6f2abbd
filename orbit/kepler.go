// Package orbit provides closed-form Keplerian orbit propagation and its
// inverse: osculating elements from a state vector. It does not do
// numerical integration or perturbation modeling — every position here
// comes from solving Kepler's equation directly, not stepping an ODE.
package orbit

import "math"

const (
	// GMSunAU3D2 is the gravitational parameter of the Sun in AU³/day²,
	// equal to the square of the Gaussian gravitational constant k.
	GMSunAU3D2 = 2.9591220828559115e-4

	auKm = 149597870.7

	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi

	// J2000 mean obliquity: 84381.448 arcseconds (Lieske 1979).
	obliquitySin = 0.3977771559319137062
	obliquityCos = 0.9174820620691818140
)

// Elements represents a Keplerian orbit defined by classical orbital
// elements in the J2000 ecliptic frame.
type Elements struct {
	// SemiMajorAxisAU is the semi-major axis in AU. Required for elliptic
	// orbits (e < 1); for parabolic orbits (e = 1) use PerihelionAU instead.
	SemiMajorAxisAU float64

	// PerihelionAU is the perihelion distance in AU. If zero, it is derived
	// from SemiMajorAxisAU * (1 - Eccentricity).
	PerihelionAU float64

	Eccentricity    float64
	InclinationDeg  float64
	LongAscNodeDeg  float64
	ArgPeriapsisDeg float64

	// MeanAnomalyDeg is the mean anomaly at EpochJD, in degrees. For
	// comet-style elements, set PeriapsisTimeJD instead.
	MeanAnomalyDeg float64

	// EpochJD is the TDB Julian date at which the elements are valid.
	EpochJD float64

	// PeriapsisTimeJD is the TDB Julian date of periapsis passage. If
	// nonzero, it overrides MeanAnomalyDeg.
	PeriapsisTimeJD float64

	// GM is the gravitational parameter of the central body in AU³/day².
	// If zero, GMSunAU3D2 (the Sun) is used.
	GM float64

	ready bool
	mu    float64
	a     float64
	q     float64
	e     float64
	n     float64
	rot   [3][3]float64
}

func (o *Elements) init() {
	if o.ready {
		return
	}
	o.ready = true

	o.mu = o.GM
	if o.mu == 0 {
		o.mu = GMSunAU3D2
	}

	o.e = o.Eccentricity

	if o.SemiMajorAxisAU != 0 {
		o.a = o.SemiMajorAxisAU
		o.q = o.a * (1.0 - o.e)
	} else if o.PerihelionAU != 0 {
		o.q = o.PerihelionAU
		if o.e < 1.0 {
			o.a = o.q / (1.0 - o.e)
		}
	}

	if o.e < 1.0 && o.a > 0 {
		o.n = math.Sqrt(o.mu / (o.a * o.a * o.a))
	}

	i := o.InclinationDeg * deg2rad
	omega := o.LongAscNodeDeg * deg2rad
	w := o.ArgPeriapsisDeg * deg2rad

	sinI, cosI := math.Sincos(i)
	sinO, cosO := math.Sincos(omega)
	sinW, cosW := math.Sincos(w)

	// R = Rz(-Ω) · Rx(-i) · Rz(-ω); columns are the P, Q, W unit vectors.
	o.rot = [3][3]float64{
		{cosO*cosW - sinO*sinW*cosI, -cosO*sinW - sinO*cosW*cosI, sinO * sinI},
		{sinO*cosW + cosO*sinW*cosI, -sinO*sinW + cosO*cosW*cosI, -cosO * sinI},
		{sinW * sinI, cosW * sinI, cosI},
	}
}

// semiLatusRectum returns p = a(1-e²) for elliptic orbits or q·2 for
// parabolic, used by the vis-viva velocity formula.
func (o *Elements) semiLatusRectum() float64 {
	if o.e == 1.0 {
		return 2.0 * o.q
	}
	return o.a * (1.0 - o.e*o.e)
}

// perifocalState returns position and velocity (AU, AU/day) in the
// perifocal (PQW) frame at true anomaly nu and radius r.
func (o *Elements) perifocalState(nu, r float64) (posPQW, velPQW [2]float64) {
	cosNu, sinNu := math.Cos(nu), math.Sin(nu)
	posPQW = [2]float64{r * cosNu, r * sinNu}

	p := o.semiLatusRectum()
	sqrtMuOverP := math.Sqrt(o.mu / p)
	velPQW = [2]float64{
		-sqrtMuOverP * sinNu,
		sqrtMuOverP * (o.e + cosNu),
	}
	return posPQW, velPQW
}

// rotateToICRF rotates a perifocal-frame 2D vector (z implicitly 0) through
// the orbit's PQW→ecliptic rotation, then ecliptic→equatorial (ICRF).
func (o *Elements) rotateToICRF(pqw [2]float64) [3]float64 {
	xEcl := o.rot[0][0]*pqw[0] + o.rot[0][1]*pqw[1]
	yEcl := o.rot[1][0]*pqw[0] + o.rot[1][1]*pqw[1]
	zEcl := o.rot[2][0]*pqw[0] + o.rot[2][1]*pqw[1]

	return [3]float64{
		xEcl,
		obliquityCos*yEcl - obliquitySin*zEcl,
		obliquitySin*yEcl + obliquityCos*zEcl,
	}
}

// StateAU returns heliocentric ICRF position (AU) and velocity (AU/day) at
// the given TDB Julian date, via vis-viva in the perifocal frame rotated
// into the equatorial frame.
func (o *Elements) StateAU(tdbJD float64) (pos, vel [3]float64) {
	o.init()

	M := o.meanAnomalyAt(tdbJD)

	var nu, r float64
	switch {
	case o.e < 1.0:
		nu, r = o.solveElliptic(M)
	case o.e == 1.0:
		nu, r = o.solveParabolic(M)
	default:
		nu, r = o.solveHyperbolic(M)
	}

	posPQW, velPQW := o.perifocalState(nu, r)
	return o.rotateToICRF(posPQW), o.rotateToICRF(velPQW)
}

// PositionAU returns the heliocentric ICRF position in AU at tdbJD.
func (o *Elements) PositionAU(tdbJD float64) [3]float64 {
	pos, _ := o.StateAU(tdbJD)
	return pos
}

// PositionKm returns the heliocentric ICRF position in km at tdbJD.
func (o *Elements) PositionKm(tdbJD float64) [3]float64 {
	pos := o.PositionAU(tdbJD)
	return [3]float64{pos[0] * auKm, pos[1] * auKm, pos[2] * auKm}
}

// StateKm returns heliocentric ICRF position (km) and velocity (km/s) at
// tdbJD.
func (o *Elements) StateKm(tdbJD float64) (pos, vel [3]float64) {
	posAU, velAU := o.StateAU(tdbJD)
	const auPerDayToKmPerSec = auKm / 86400.0
	pos = [3]float64{posAU[0] * auKm, posAU[1] * auKm, posAU[2] * auKm}
	vel = [3]float64{velAU[0] * auPerDayToKmPerSec, velAU[1] * auPerDayToKmPerSec, velAU[2] * auPerDayToKmPerSec}
	return pos, vel
}

func (o *Elements) meanAnomalyAt(tdbJD float64) float64 {
	if o.PeriapsisTimeJD != 0 {
		dt := tdbJD - o.PeriapsisTimeJD
		if o.e < 1.0 {
			return o.n * dt
		}
		return dt
	}
	M0 := o.MeanAnomalyDeg * deg2rad
	dt := tdbJD - o.EpochJD
	return M0 + o.n*dt
}

func (o *Elements) solveElliptic(M float64) (nu, r float64) {
	e := o.e

	M = math.Mod(M, 2*math.Pi)
	if M > math.Pi {
		M -= 2 * math.Pi
	} else if M < -math.Pi {
		M += 2 * math.Pi
	}

	E := M
	if e > 0.8 {
		if M > 0 {
			E = math.Pi
		} else {
			E = -math.Pi
		}
	}

	for iter := 0; iter < 50; iter++ {
		sinE, cosE := math.Sincos(E)
		f := E - e*sinE - M
		fp := 1.0 - e*cosE
		dE := -f / fp
		E += dE
		if math.Abs(dE) < 1e-15 {
			break
		}
	}

	sinE, cosE := math.Sincos(E)
	nu = math.Atan2(math.Sqrt(1-e*e)*sinE, cosE-e)
	r = o.a * (1.0 - e*cosE)
	return
}

// solveParabolic solves Barker's equation for a parabolic orbit (e = 1). dt
// is days since periapsis.
func (o *Elements) solveParabolic(dt float64) (nu, r float64) {
	q := o.q
	W := 3.0 * math.Sqrt(o.mu/(2.0*q*q*q)) * dt

	Y := math.Cbrt(W + math.Sqrt(W*W+1))
	D := Y - 1.0/Y

	nu = 2.0 * math.Atan(D)
	r = q * (1.0 + D*D)
	return
}

// solveHyperbolic solves the hyperbolic Kepler equation M = e·sinh(H) - H.
// dt is days since periapsis.
func (o *Elements) solveHyperbolic(dt float64) (nu, r float64) {
	e := o.e
	a := -o.q / (e - 1.0)
	absA := math.Abs(a)
	M := math.Sqrt(o.mu/(absA*absA*absA)) * dt

	H := M
	for iter := 0; iter < 50; iter++ {
		sinhH := math.Sinh(H)
		coshH := math.Cosh(H)
		f := e*sinhH - H - M
		fp := e*coshH - 1.0
		dH := -f / fp
		H += dH
		if math.Abs(dH) < 1e-15 {
			break
		}
	}

	nu = 2.0 * math.Atan(math.Sqrt((e+1.0)/(e-1.0))*math.Tanh(H/2.0))
	r = absA * (e*math.Cosh(H) - 1.0)
	return
}
