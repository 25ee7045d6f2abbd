package orientation

import (
	"math"
	"testing"
)

func TestAnglesWithoutTermsIsPureQuadratic(t *testing.T) {
	p := Pole{RA0: 10, RA1: 2, Dec0: 20, Dec1: -1, W0: 0, W1: 360.9856235}
	ra, dec, w := p.Angles(1.0, 36525.0)
	if math.Abs(ra-(12*deg2rad)) > 1e-9 {
		t.Errorf("ra = %v, want %v", ra, 12*deg2rad)
	}
	if math.Abs(dec-(19*deg2rad)) > 1e-9 {
		t.Errorf("dec = %v, want %v", dec, 19*deg2rad)
	}
	wantW := (0 + 360.9856235*36525.0)
	wantW = math.Mod(wantW, 360) * deg2rad
	gotW := math.Mod(w/deg2rad, 360) * deg2rad
	if math.Abs(gotW-wantW) > 1e-6 {
		t.Errorf("w = %v, want %v", gotW, wantW)
	}
}

func TestToInertialIsOrthogonal(t *testing.T) {
	p := Pole{RA0: 0, RA1: -0.641, Dec0: 90, Dec1: -0.557, W0: 190.147, W1: 360.9856235}
	m := p.ToInertial(0.5, 0.5*36525.0)
	mt := m.Transpose()
	prod := mt.Mul(m)
	diff := prod.Sub([3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	if diff.FrobeniusNorm() > 1e-9 {
		t.Errorf("ToInertial not orthogonal, residual norm %v", diff.FrobeniusNorm())
	}
}

func TestMaxTermsLimitsPeriodicSum(t *testing.T) {
	p := Pole{
		Terms: []Term{
			{Argument0: 90, Argument1: 0, RAAmp: 10},
			{Argument0: 0, Argument1: 0, RAAmp: 10},
		},
	}
	SetMaxTerms(1)
	defer SetMaxTerms(-1)

	ra, _, _ := p.Angles(0, 0)
	// Only the first term (argument 90 deg -> sin=1 -> +10 deg) applies.
	want := 10 * deg2rad
	if math.Abs(ra-want) > 1e-9 {
		t.Errorf("ra = %v, want %v (only first term applied)", ra, want)
	}
}

func TestFixedFramesAreOrthogonal(t *testing.T) {
	for _, id := range []FixedFrameID{FrameGalactic, FrameB1950, FrameICRSBias} {
		m, ok := FixedFrame(id)
		if !ok {
			t.Fatalf("FixedFrame(%v) reported not found", id)
		}
		mt := m.Transpose()
		prod := mt.Mul(m)
		diff := prod.Sub([3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		if diff.FrobeniusNorm() > 1e-6 {
			t.Errorf("fixed frame %v not orthogonal, residual %v", id, diff.FrobeniusNorm())
		}
	}
}
