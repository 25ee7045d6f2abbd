package orientation

import "github.com/starhaven/spicekit/spatial"

// FixedFrameID names a statically-defined inertial frame — one whose
// orientation relative to ICRF never changes with time, unlike a Pole's
// frame.
type FixedFrameID int

const (
	FrameGalactic FixedFrameID = iota
	FrameB1950
	FrameICRSBias
)

// galacticMatrix rotates ICRF (J2000) vectors into Galactic System II
// (IAU 1958). Source: SPICE Toolkit / Skyfield frame constants.
var galacticMatrix = spatial.Matrix3{
	{-0.054875539395742523, -0.87343710472759606, -0.48383499177002515},
	{0.49410945362774389, -0.44482959429757496, 0.74698224869989183},
	{-0.86766613568337381, -0.19807638961301985, 0.45598379452141991},
}

// b1950Matrix rotates ICRF (J2000) vectors into the mean equator and
// equinox of B1950 (FK4). Source: SPICE Toolkit / Skyfield.
var b1950Matrix = spatial.Matrix3{
	{0.99992570795236291, 0.011178938126427691, 0.0048590038414544293},
	{-0.011178938137770135, 0.9999375133499887, -2.715792625851078e-05},
	{-0.0048590038153592712, -2.7162594714247048e-05, 0.9999881946023742},
}

// icrsBiasMatrix is the frame bias from ICRS to the dynamical mean equator
// and equinox of J2000 — a few milliarcseconds (IERS Conventions 2003,
// Chapter 5).
var icrsBiasMatrix spatial.Matrix3

func init() {
	const asec2rad = deg2rad / 3600.0

	xi0 := -0.0166170 * asec2rad
	eta0 := -0.0068192 * asec2rad
	da0 := -0.01460 * asec2rad

	yx := -da0
	zx := xi0
	xy := da0
	zy := eta0
	xz := -xi0
	yz := -eta0

	xx := 1.0 - 0.5*(yx*yx+zx*zx)
	yy := 1.0 - 0.5*(yx*yx+zy*zy)
	zz := 1.0 - 0.5*(zy*zy+zx*zx)

	icrsBiasMatrix = spatial.Matrix3{
		{xx, xy, xz},
		{yx, yy, yz},
		{zx, zy, zz},
	}
}

// FixedFrame returns the rotation matrix from ICRF into the named fixed
// frame, and false if id does not name one of the frames in this table.
func FixedFrame(id FixedFrameID) (spatial.Matrix3, bool) {
	switch id {
	case FrameGalactic:
		return galacticMatrix, true
	case FrameB1950:
		return b1950Matrix, true
	case FrameICRSBias:
		return icrsBiasMatrix, true
	default:
		return spatial.Identity3, false
	}
}
