// Package spk evaluates SPK ephemeris segments: Chebyshev polynomial
// segments (Types 2 and 3) and Hermite-with-state segments (Type 13). It
// builds directly on package daf for the DAF container mechanics and owns
// only the interpretation of a segment's payload words.
//
// spk does not resolve frame chains or pick which (target, center) pair
// answers a caller's question — that graph-traversal responsibility belongs
// to package frame. spk answers exactly one question: given a segment and
// an epoch within its coverage, what is the state?
package spk

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/starhaven/spicekit/daf"
	"github.com/starhaven/spicekit/errkit"
)

// SegmentType identifies the SPK data type of a segment's payload.
type SegmentType int

const (
	TypeChebyshevPosition SegmentType = 2
	TypeChebyshevState    SegmentType = 3
	TypeHermiteState      SegmentType = 13
)

// chebyshevPayload holds a decoded Type 2/3 segment's record table.
type chebyshevPayload struct {
	init, intLen     float64
	rsize, n, nCoeffs int
	hasVelocity      bool
	data             []float64
}

// hermitePayload holds a decoded Type 13 segment's discrete state/epoch
// tables.
type hermitePayload struct {
	epochs     []float64
	states     [][6]float64 // x, y, z, vx, vy, vz per epoch
	windowSize int
}

// Segment is one decoded SPK segment: a claim about the state of Target
// relative to Center over [StartSec, EndSec] (TDB seconds past J2000).
type Segment struct {
	Target, Center int
	Frame          int
	Type           SegmentType
	StartSec       float64
	EndSec         float64

	cheb *chebyshevPayload
	herm *hermitePayload
}

// File is a parsed SPK file: an ordered list of segments in file order,
// later segments taking precedence over earlier ones that cover the same
// (target, center) pair and epoch.
type File struct {
	Segments []Segment
}

// Load parses buf as an SPK file. Segment payloads are decoded eagerly into
// slices owned by the returned File, so repeated evaluation doesn't re-walk
// the DAF chain; the File does not retain buf.
func Load(buf []byte) (*File, error) {
	fr, err := daf.ParseFileRecord(buf)
	if err != nil {
		return nil, errkit.Wrap(errkit.ParseError, "parsing SPK file record", err)
	}
	if fr.Subtype != daf.SubtypeSPK {
		return nil, errkit.Newf(errkit.ParseError, "not an SPK file: subtype %q", fr.Subtype)
	}
	if fr.ND != 2 {
		return nil, errkit.Newf(errkit.ParseError, "unexpected SPK summary shape: nd=%d, want 2", fr.ND)
	}

	daySegments, err := daf.WalkSummaries(buf, fr)
	if err != nil {
		return nil, errkit.Wrap(errkit.ParseError, "walking SPK summary chain", err)
	}

	order := hostOrder()
	file := &File{Segments: make([]Segment, 0, len(daySegments))}

	for _, ds := range daySegments {
		s := ds.Summary
		if len(s.Doubles) < 2 || len(s.Ints) < 6 {
			return nil, errkit.New(errkit.ParseError, "malformed SPK summary")
		}

		startSec, endSec := s.Doubles[0], s.Doubles[1]
		target, center, frame, dataType := int(s.Ints[0]), int(s.Ints[1]), int(s.Ints[2]), int(s.Ints[3])
		firstAddr, lastAddr := s.AddressRange()

		words, err := readWordRange(buf, order, firstAddr, lastAddr)
		if err != nil {
			return nil, errkit.Wrapf(errkit.ParseError, err, "reading payload for target=%d center=%d", target, center)
		}

		seg := Segment{
			Target:   target,
			Center:   center,
			Frame:    frame,
			Type:     SegmentType(dataType),
			StartSec: startSec,
			EndSec:   endSec,
		}

		switch SegmentType(dataType) {
		case TypeChebyshevPosition, TypeChebyshevState:
			seg.cheb = decodeChebyshevPayload(words, dataType == int(TypeChebyshevState))
		case TypeHermiteState:
			payload, err := decodeHermitePayload(words)
			if err != nil {
				return nil, errkit.Wrapf(errkit.ParseError, err, "decoding Hermite segment target=%d center=%d", target, center)
			}
			seg.herm = payload
		default:
			return nil, errkit.Newf(errkit.ParseError, "unsupported SPK data type %d (target=%d, center=%d)", dataType, target, center)
		}

		file.Segments = append(file.Segments, seg)
	}

	return file, nil
}

func decodeChebyshevPayload(words []float64, hasVelocity bool) *chebyshevPayload {
	n := len(words)
	p := &chebyshevPayload{
		init:        words[n-4],
		intLen:      words[n-3],
		rsize:       int(words[n-2]),
		n:           int(words[n-1]),
		hasVelocity: hasVelocity,
		data:        words[:n-4],
	}
	if hasVelocity {
		p.nCoeffs = (p.rsize - 2) / 6
	} else {
		p.nCoeffs = (p.rsize - 2) / 3
	}
	return p
}

func decodeHermitePayload(words []float64) (*hermitePayload, error) {
	n := len(words)
	if n < 2 {
		return nil, errkit.New(errkit.ParseError, "Hermite segment too short")
	}
	count := int(words[n-1])
	windowSize := int(words[n-2])
	if count <= 0 || windowSize <= 0 || windowSize > count {
		return nil, errkit.Newf(errkit.ParseError, "invalid Hermite segment shape: n=%d window=%d", count, windowSize)
	}

	epochsStart := n - 2 - count
	statesEnd := epochsStart
	if epochsStart < 0 || statesEnd != count*6 {
		return nil, errkit.New(errkit.ParseError, "Hermite segment word count inconsistent with header")
	}

	states := make([][6]float64, count)
	for i := 0; i < count; i++ {
		copy(states[i][:], words[i*6:i*6+6])
	}
	epochs := append([]float64(nil), words[epochsStart:epochsStart+count]...)

	return &hermitePayload{epochs: epochs, states: states, windowSize: windowSize}, nil
}

// Evaluate returns the state (position in km, velocity in km/s) of seg's
// target relative to seg's center at tdbSec (TDB seconds past J2000).
func (seg Segment) Evaluate(tdbSec float64) (pos, vel [3]float64, err error) {
	switch {
	case seg.cheb != nil:
		return evaluateChebyshev(seg.cheb, tdbSec)
	case seg.herm != nil:
		return evaluateHermite(seg.herm, tdbSec)
	default:
		return pos, vel, errkit.New(errkit.ParseError, "segment has no decoded payload")
	}
}

// Covers reports whether tdbSec falls within seg's declared coverage
// interval.
func (seg Segment) Covers(tdbSec float64) bool {
	return tdbSec >= seg.StartSec && tdbSec <= seg.EndSec
}

func evaluateChebyshev(p *chebyshevPayload, tdbSec float64) (pos, vel [3]float64, err error) {
	idx := int((tdbSec - p.init) / p.intLen)
	if idx < 0 {
		idx = 0
	}
	if idx >= p.n {
		idx = p.n - 1
	}

	offset := tdbSec - p.init - float64(idx)*p.intLen
	tc := 2.0*offset/p.intLen - 1.0

	recStart := idx * p.rsize
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + comp*p.nCoeffs
		coeffs := p.data[cStart : cStart+p.nCoeffs]
		pos[comp] = chebyshev(coeffs, tc)
		if p.hasVelocity {
			vStart := recStart + 2 + (3+comp)*p.nCoeffs
			vel[comp] = chebyshev(p.data[vStart:vStart+p.nCoeffs], tc)
		} else {
			vel[comp] = chebyshevDerivative(coeffs, tc) * (2.0 / p.intLen)
		}
	}
	return pos, vel, nil
}

func evaluateHermite(p *hermitePayload, tdbSec float64) (pos, vel [3]float64, err error) {
	n := len(p.epochs)
	w := p.windowSize
	if w > n {
		w = n
	}

	start := sort.Search(n, func(i int) bool { return p.epochs[i] > tdbSec })
	start -= w / 2
	if start < 0 {
		start = 0
	}
	if start > n-w {
		start = n - w
	}

	epochs := p.epochs[start : start+w]
	for comp := 0; comp < 3; comp++ {
		values := make([]float64, w)
		derivs := make([]float64, w)
		for i := 0; i < w; i++ {
			values[i] = p.states[start+i][comp]
			derivs[i] = p.states[start+i][3+comp]
		}
		v, d := hermiteInterpolate(epochs, values, derivs, tdbSec)
		pos[comp] = v
		vel[comp] = d
	}
	return pos, vel, nil
}

func hostOrder() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) != 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// readWordRange reads the inclusive 1-based double-precision word range
// [first, last] from buf as a slice of float64s.
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
