// Package bpc decodes binary PCK ("BPC") orientation kernels: DAF files
// whose segments give a body-fixed frame's orientation, as three Euler
// angles, as Chebyshev polynomials of time (PCK Type 2). It shares its DAF
// container handling with package daf and its Chebyshev evaluator with
// package spk — a BPC segment's payload layout is the same
// midpoint/radius/coefficients/metadata shape as an SPK Type 2 segment,
// just three angle components instead of three position components.
package bpc

import (
	"encoding/binary"
	"math"

	"github.com/starhaven/spicekit/daf"
	"github.com/starhaven/spicekit/errkit"
	"github.com/starhaven/spicekit/spk"
)

// Segment is one decoded BPC orientation segment: Euler angles for Body
// relative to ReferenceFrame over [StartSec, EndSec].
type Segment struct {
	Body            int
	ReferenceFrame  int
	StartSec        float64
	EndSec          float64

	init, intLen      float64
	rsize, n, nCoeffs int
	data              []float64
}

// File is a parsed BPC file: an ordered list of segments in file order.
type File struct {
	Segments []Segment
}

// Load parses buf as a binary PCK file.
func Load(buf []byte) (*File, error) {
	fr, err := daf.ParseFileRecord(buf)
	if err != nil {
		return nil, errkit.Wrap(errkit.ParseError, "parsing BPC file record", err)
	}
	if fr.Subtype != daf.SubtypePCK {
		return nil, errkit.Newf(errkit.ParseError, "not a binary PCK file: subtype %q", fr.Subtype)
	}
	if fr.ND != 2 {
		return nil, errkit.Newf(errkit.ParseError, "unexpected PCK summary shape: nd=%d, want 2", fr.ND)
	}

	daySegments, err := daf.WalkSummaries(buf, fr)
	if err != nil {
		return nil, errkit.Wrap(errkit.ParseError, "walking BPC summary chain", err)
	}

	order := hostOrder()
	file := &File{Segments: make([]Segment, 0, len(daySegments))}

	for _, ds := range daySegments {
		s := ds.Summary
		if len(s.Doubles) < 2 || len(s.Ints) < 5 {
			return nil, errkit.New(errkit.ParseError, "malformed BPC summary")
		}

		startSec, endSec := s.Doubles[0], s.Doubles[1]
		body, frame, dataType := int(s.Ints[0]), int(s.Ints[1]), int(s.Ints[2])
		if dataType != 2 {
			return nil, errkit.Newf(errkit.ParseError, "unsupported BPC data type %d (body=%d)", dataType, body)
		}
		firstAddr, lastAddr := s.AddressRange()

		words, err := readWordRange(buf, order, firstAddr, lastAddr)
		if err != nil {
			return nil, errkit.Wrapf(errkit.ParseError, err, "reading payload for body=%d", body)
		}

		n := len(words)
		seg := Segment{
			Body:           body,
			ReferenceFrame: frame,
			StartSec:       startSec,
			EndSec:         endSec,
			init:           words[n-4],
			intLen:         words[n-3],
			rsize:          int(words[n-2]),
			n:              int(words[n-1]),
			data:           words[:n-4],
		}
		seg.nCoeffs = (seg.rsize - 2) / 3

		file.Segments = append(file.Segments, seg)
	}

	return file, nil
}

// Covers reports whether tdbSec falls within seg's declared coverage.
func (seg Segment) Covers(tdbSec float64) bool {
	return tdbSec >= seg.StartSec && tdbSec <= seg.EndSec
}

// EulerAngles returns the three body-fixed Euler angles (radians) and their
// time derivatives (radians/second) at tdbSec.
func (seg Segment) EulerAngles(tdbSec float64) (angles, rates [3]float64) {
	idx := int((tdbSec - seg.init) / seg.intLen)
	if idx < 0 {
		idx = 0
	}
	if idx >= seg.n {
		idx = seg.n - 1
	}

	offset := tdbSec - seg.init - float64(idx)*seg.intLen
	tc := 2.0*offset/seg.intLen - 1.0
	scale := 2.0 / seg.intLen

	recStart := idx * seg.rsize
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + comp*seg.nCoeffs
		coeffs := seg.data[cStart : cStart+seg.nCoeffs]
		angles[comp] = spk.Chebyshev(coeffs, tc)
		rates[comp] = spk.ChebyshevDerivative(coeffs, tc) * scale
	}
	return angles, rates
}

func hostOrder() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) != 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func readWordRange(buf []byte, order binary.ByteOrder, first, last int) ([]float64, error) {
	if first < 1 || last < first {
		return nil, errkit.Newf(errkit.ParseError, "invalid word range [%d, %d]", first, last)
	}
	byteStart := int64(first-1) * 8
	byteEnd := int64(last) * 8
	if byteStart < 0 || byteEnd > int64(len(buf)) {
		return nil, errkit.Newf(errkit.ParseError, "word range [%d, %d] extends past end of file", first, last)
	}

	words := make([]float64, last-first+1)
	for i := range words {
		off := byteStart + int64(i)*8
		words[i] = math.Float64frombits(order.Uint64(buf[off : off+8]))
	}
	return words, nil
}
