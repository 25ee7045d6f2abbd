package bpc

import (
	"encoding/binary"
	"math"
	"testing"
)

const recSize = 1024

// buildTestBPC synthesizes a minimal binary PCK buffer with one Type-2
// (Chebyshev Euler angle) segment for the given body/frame, carrying a
// single record with nCoeffs coefficients per angle. No real .bpc file is
// available in this environment, so the fixture is built byte-by-byte.
func buildTestBPC(t *testing.T, body, frame int, coeffs [3][]float64, startSec, endSec float64) []byte {
	t.Helper()
	order := binary.LittleEndian
	nCoeffs := len(coeffs[0])
	rsize := 2 + 3*nCoeffs

	payloadWords := rsize + 4
	buf := make([]byte, 3*recSize+payloadWords*8)

	copy(buf[0:8], "DAF/PCK ")
	order.PutUint32(buf[8:12], 2)
	order.PutUint32(buf[12:16], 5)
	copy(buf[16:76], "TEST BPC")
	order.PutUint32(buf[76:80], 2)
	order.PutUint32(buf[80:84], 2)
	copy(buf[88:96], "LTL-IEEE")

	summaryRec := buf[recSize : 2*recSize]
	order.PutUint64(summaryRec[0:8], math.Float64bits(0))
	order.PutUint64(summaryRec[16:24], math.Float64bits(1))

	nameRec := buf[2*recSize : 3*recSize]
	copy(nameRec[0:], "TEST FRAME")

	payloadBase := 3 * recSize
	firstAddr := payloadBase/8 + 1
	lastAddr := firstAddr + payloadWords - 1

	order.PutUint64(summaryRec[24:32], math.Float64bits(startSec))
	order.PutUint64(summaryRec[32:40], math.Float64bits(endSec))
	ints := []int32{int32(body), int32(frame), 2, int32(firstAddr), int32(lastAddr)}
	for i, v := range ints {
		order.PutUint32(summaryRec[40+i*4:44+i*4], uint32(v))
	}

	words := make([]float64, 0, payloadWords)
	words = append(words, 2.0, 1.0)
	for comp := 0; comp < 3; comp++ {
		words = append(words, coeffs[comp]...)
	}
	words = append(words, startSec, endSec-startSec, float64(rsize), 1.0)

	for i, w := range words {
		off := payloadBase + i*8
		order.PutUint64(buf[off:off+8], math.Float64bits(w))
	}

	return buf
}

func TestLoadEulerSegment(t *testing.T) {
	coeffs := [3][]float64{
		{0.1, 0.0},
		{0.2, 0.01},
		{0.3, 0.0},
	}
	buf := buildTestBPC(t, 31006, 1, coeffs, 0.0, 1e6)

	file, err := Load(buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(file.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(file.Segments))
	}

	seg := file.Segments[0]
	if seg.Body != 31006 || seg.ReferenceFrame != 1 {
		t.Errorf("Body=%d ReferenceFrame=%d, want 31006/1", seg.Body, seg.ReferenceFrame)
	}
	if !seg.Covers(5e5) {
		t.Errorf("Covers(midpoint) = false")
	}
	if seg.Covers(-1) || seg.Covers(2e6) {
		t.Errorf("Covers reported true outside declared range")
	}

	// At the midpoint, the normalized Chebyshev argument is 0, so the
	// series reduces to its constant term.
	angles, _ := seg.EulerAngles(5e5)
	want := [3]float64{0.1, 0.2, 0.3}
	for i := range angles {
		if math.Abs(angles[i]-want[i]) > 1e-12 {
			t.Errorf("angles[%d] = %v, want %v", i, angles[i], want[i])
		}
	}
}

func TestLoadRejectsNonPCKSubtype(t *testing.T) {
	buf := buildTestBPC(t, 31006, 1, [3][]float64{{0.1}, {0.2}, {0.3}}, 0.0, 1e6)
	copy(buf[0:8], "DAF/SPK ")
	if _, err := Load(buf); err == nil {
		t.Fatalf("expected error loading an SPK-labeled buffer as a BPC file")
	}
}
