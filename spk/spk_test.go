package spk

import (
	"encoding/binary"
	"math"
	"testing"
)

const recSize = 1024

// buildChebyshevSPK synthesizes a minimal SPK byte buffer holding exactly one
// Chebyshev (Type 2) segment, so tests don't depend on a real .bsp file.
func buildChebyshevSPK(t *testing.T) []byte {
	t.Helper()

	// Layout: record 1 = file record, record 2 = summary record,
	// record 3 = name record, record 4 = segment payload (12 words).
	buf := make([]byte, 4*recSize)
	order := binary.LittleEndian

	copy(buf[0:8], "DAF/SPK ")
	order.PutUint32(buf[8:12], 2)  // nd
	order.PutUint32(buf[12:16], 6) // ni
	copy(buf[16:76], "TEST EPHEMERIS")
	order.PutUint32(buf[76:80], 2) // forward
	order.PutUint32(buf[80:84], 2) // backward
	order.PutUint32(buf[84:88], 0)
	copy(buf[88:96], "LTL-IEEE")

	summaryRec := buf[recSize : 2*recSize]
	order.PutUint64(summaryRec[0:8], math.Float64bits(0))
	order.PutUint64(summaryRec[16:24], math.Float64bits(1))

	// firstAddr/lastAddr: record 4 starts at word 385 (3*1024/8 + 1).
	firstAddr, lastAddr := 385, 385+12-1

	doubles := []float64{0.0, 86400.0} // startSec, endSec
	for i, d := range doubles {
		order.PutUint64(summaryRec[24+i*8:24+i*8+8], math.Float64bits(d))
	}
	ints := []int32{399, 10, 1, 2, int32(firstAddr), int32(lastAddr)}
	intOffset := 24 + 2*8
	for i, v := range ints {
		order.PutUint32(summaryRec[intOffset+i*4:intOffset+i*4+4], uint32(v))
	}

	nameRec := buf[2*recSize : 3*recSize]
	copy(nameRec[0:40], "EARTH BARYCENTER                       ")

	payload := buf[3*recSize : 4*recSize]
	words := []float64{
		43200.0, 43200.0, // record midpoint, radius
		100.0, 1.0, // x coeffs
		200.0, 2.0, // y coeffs
		300.0, 3.0, // z coeffs
		0.0,     // init
		86400.0, // intLen
		8.0,     // rsize
		1.0,     // n
	}
	for i, w := range words {
		order.PutUint64(payload[i*8:i*8+8], math.Float64bits(w))
	}

	return buf
}

func TestLoadChebyshevSegment(t *testing.T) {
	buf := buildChebyshevSPK(t)
	file, err := Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(file.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(file.Segments))
	}

	seg := file.Segments[0]
	if seg.Target != 399 || seg.Center != 10 {
		t.Errorf("Target/Center = %d/%d, want 399/10", seg.Target, seg.Center)
	}
	if seg.Type != TypeChebyshevPosition {
		t.Errorf("Type = %d, want %d", seg.Type, TypeChebyshevPosition)
	}
	if !seg.Covers(43200) {
		t.Errorf("segment should cover midpoint epoch")
	}
	if seg.Covers(-1) || seg.Covers(86401) {
		t.Errorf("segment incorrectly covers out-of-range epoch")
	}

	pos, vel, err := seg.Evaluate(43200.0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// At the record midpoint, normalized time tc=0 and Clenshaw reduces to c0.
	want := [3]float64{100.0, 200.0, 300.0}
	for i := range want {
		if math.Abs(pos[i]-want[i]) > 1e-9 {
			t.Errorf("pos[%d] = %v, want %v", i, pos[i], want[i])
		}
	}
	// velocity = d(pos)/d(seconds) = dc1 * (2/intLen); derivative of c0+c1*tc
	// wrt tc is c1, scaled by 2/86400.
	wantVel := [3]float64{1.0 * 2 / 86400.0, 2.0 * 2 / 86400.0, 3.0 * 2 / 86400.0}
	for i := range wantVel {
		if math.Abs(vel[i]-wantVel[i]) > 1e-9 {
			t.Errorf("vel[%d] = %v, want %v", i, vel[i], wantVel[i])
		}
	}
}

func TestHermiteInterpolateMatchesCubicAtNodes(t *testing.T) {
	// f(x) = x^3, f'(x) = 3x^2. Two-node Hermite should reproduce exact
	// cubic values and derivatives at and between the nodes, since a cubic
	// is exactly representable by a degree-3 (two-node, 4-condition)
	// Hermite interpolant.
	epochs := []float64{0.0, 2.0}
	values := []float64{0.0, 8.0}
	derivs := []float64{0.0, 12.0}

	for _, x := range []float64{0.0, 0.5, 1.0, 1.5, 2.0} {
		v, d := hermiteInterpolate(epochs, values, derivs, x)
		wantV := x * x * x
		wantD := 3 * x * x
		if math.Abs(v-wantV) > 1e-9 {
			t.Errorf("hermiteInterpolate value at %v = %v, want %v", x, v, wantV)
		}
		if math.Abs(d-wantD) > 1e-9 {
			t.Errorf("hermiteInterpolate derivative at %v = %v, want %v", x, d, wantD)
		}
	}
}

func TestHermiteInterpolateMultiNode(t *testing.T) {
	// Three nodes, none collinear/coplanar with a low-degree polynomial, so
	// the osculating quintic is only pinned down by the full doubled-node
	// recurrence rather than trivially satisfied by any simple formula. The
	// expected value and derivative at t=0.5 were hand-traced through the
	// column-by-column recurrence (derivative column before value column,
	// each iteration) to catch a regression to the wrong evaluation order,
	// which a test built only from an exactly-reproducible cubic would miss.
	epochs := []float64{0.0, 1.0, 2.0}
	values := []float64{0.0, 1.0, 0.0}
	derivs := []float64{0.0, 0.0, 0.0}

	v, d := hermiteInterpolate(epochs, values, derivs, 0.5)
	if math.Abs(v-0.5625) > 1e-12 {
		t.Errorf("value at 0.5 = %v, want 0.5625", v)
	}
	if math.Abs(d-1.5) > 1e-12 {
		t.Errorf("derivative at 0.5 = %v, want 1.5", d)
	}

	// Osculating property: at each node the interpolant must reproduce that
	// node's own value and derivative exactly.
	for i, x := range epochs {
		v, d := hermiteInterpolate(epochs, values, derivs, x)
		if math.Abs(v-values[i]) > 1e-9 {
			t.Errorf("value at node %v = %v, want %v", x, v, values[i])
		}
		if math.Abs(d-derivs[i]) > 1e-9 {
			t.Errorf("derivative at node %v = %v, want %v", x, d, derivs[i])
		}
	}
}

func TestBodyName(t *testing.T) {
	if name, ok := BodyName(Earth); !ok || name != "Earth" {
		t.Errorf("BodyName(Earth) = %q, %v, want \"Earth\", true", name, ok)
	}
	if _, ok := BodyName(-999); ok {
		t.Errorf("BodyName(-999) should report ok=false for an unlisted ID")
	}
}

func TestLoadRejectsNonSPKSubtype(t *testing.T) {
	buf := make([]byte, recSize)
	copy(buf[0:8], "DAF/PCK ")
	copy(buf[88:96], "LTL-IEEE")
	if _, err := Load(buf); err == nil {
		t.Fatalf("expected error loading a PCK file as SPK")
	}
}
