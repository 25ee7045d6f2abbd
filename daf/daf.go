// Package daf decodes the DAF ("Double-precision Array File") binary family
// used by NAIF SPICE: SPK ephemeris kernels and the binary PCK ("BPC")
// orientation kernels share this exact container format, differing only in
// how the integer tail of each summary and the segment payload are
// interpreted (spk and bpc build on top of this package for that part).
//
// The file record and the summary/name chain are read straight from the
// caller-owned byte buffer without byte-swapping. Each Summary and Name
// returned by WalkSummaries is decoded into its own slices and string; they
// do not borrow from the buffer and stay valid after it is released.
package daf

import (
	"encoding/binary"
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/starhaven/spicekit/errkit"
)

const (
	// RecordSize is the fixed DAF record length in bytes; every record
	// (file, summary, name) is exactly one of these.
	RecordSize = 1024
)

// Subtype identifies the three-letter DAF subtype following "DAF/".
type Subtype string

const (
	SubtypeSPK Subtype = "SPK"
	SubtypePCK Subtype = "PCK"
)

// FileRecord is the parsed first 1024-byte record of a DAF file.
type FileRecord struct {
	Subtype       Subtype
	ND            int // number of double-precision components per summary
	NI            int // number of integer components per summary
	InternalName  string
	Forward       int // 1-based record index of the first summary record
	Backward      int // 1-based record index of the last summary record
	FreeAddress   int // first free address in the segment payload region
	BigEndianFile bool
}

// SummarySize returns nd + (ni+1)/2 in integer division (that is,
// nd + ceil(ni/2), two integers packed per double), the number of doubles a
// single summary occupies.
func (fr FileRecord) SummarySize() int {
	return fr.ND + (fr.NI+1)/2
}

// ParseFileRecord parses the first RecordSize bytes of buf as a DAF file
// record. buf must be at least RecordSize bytes.
func ParseFileRecord(buf []byte) (FileRecord, error) {
	if len(buf) < RecordSize {
		return FileRecord{}, errkit.New(errkit.ParseError, "buffer shorter than one DAF record")
	}

	locidw := string(buf[0:8])
	var subtype Subtype
	switch {
	case strings.HasPrefix(locidw, "DAF/SPK"):
		subtype = SubtypeSPK
	case strings.HasPrefix(locidw, "DAF/PCK"):
		subtype = SubtypePCK
	default:
		return FileRecord{}, errkit.Newf(errkit.ParseError, "identifier word %q does not begin with DAF/SPK or DAF/PCK", locidw)
	}

	endianWord := string(buf[88:96])
	var bigEndianFile bool
	switch {
	case strings.HasPrefix(endianWord, "LTL-IEEE"):
		bigEndianFile = false
	case strings.HasPrefix(endianWord, "BIG-IEEE"):
		bigEndianFile = true
	default:
		return FileRecord{}, errkit.Newf(errkit.ParseError, "unrecognized endianness marker %q", endianWord)
	}

	if bigEndianFile != isHostBigEndian() {
		return FileRecord{}, errkit.Newf(errkit.ParseError,
			"file endianness (big=%v) disagrees with host endianness; byte-swap support is out of scope", bigEndianFile)
	}

	order := hostByteOrder()
	nd := int(order.Uint32(buf[8:12]))
	ni := int(order.Uint32(buf[12:16]))
	internalName := strings.TrimRight(string(buf[16:76]), " \x00")
	forward := int(order.Uint32(buf[76:80]))
	backward := int(order.Uint32(buf[80:84]))
	free := int(order.Uint32(buf[84:88]))

	return FileRecord{
		Subtype:       subtype,
		ND:            nd,
		NI:            ni,
		InternalName:  internalName,
		Forward:       forward,
		Backward:      backward,
		FreeAddress:   free,
		BigEndianFile: bigEndianFile,
	}, nil
}

// isHostBigEndian reports whether the running process's native byte order
// is big-endian.
func isHostBigEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) != 1
}

// hostByteOrder returns the binary.ByteOrder matching the host's native
// order — always little-endian in practice for every platform Go currently
// targets, but derived rather than assumed.
func hostByteOrder() binary.ByteOrder {
	if isHostBigEndian() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Summary describes one segment: nd doubles followed by ni integers, the
// last two integers of which are always the inclusive 1-based
// double-precision word address range of the segment's payload.
type Summary struct {
	Doubles []float64
	Ints    []int32
}

// AddressRange returns the inclusive [first, last] 1-based double-precision
// word address range of this summary's segment payload.
func (s Summary) AddressRange() (first, last int) {
	n := len(s.Ints)
	return int(s.Ints[n-2]), int(s.Ints[n-1])
}

// Name is a decoded, trimmed entry from a name record, paired positionally
// with a Summary from the same summary record.
type Name struct {
	Text    string
	Invalid bool // true if the raw bytes were not valid UTF-8
}

// Segment pairs one Summary with its Name, as yielded during chain traversal.
type Segment struct {
	Summary Summary
	Name    Name
}

// WalkSummaries traverses the summary/name record chain starting at
// fr.Forward, emitting each (summary, name) pair, and returns them in file
// order. It never recurses — the chain is walked iteratively — and it does
// not bound the number of records visited beyond what the file itself
// encodes via its "next" pointers.
func WalkSummaries(buf []byte, fr FileRecord) ([]Segment, error) {
	var segments []Segment

	order := hostByteOrder()
	summarySize := fr.SummarySize()
	summaryBytes := summarySize * 8

	recNum := fr.Forward
	for recNum != 0 {
		summaryOffset := int64(recNum-1) * RecordSize
		if summaryOffset < 0 || summaryOffset+RecordSize > int64(len(buf)) {
			return nil, errkit.Newf(errkit.ParseError, "summary record at %d extends past end of file", recNum)
		}
		summaryRec := buf[summaryOffset : summaryOffset+RecordSize]

		next := int(readFloatAsInt(order, summaryRec[0:8]))
		count := int(readFloatAsInt(order, summaryRec[16:24]))

		nameOffset := int64(recNum) * RecordSize // the record immediately following
		if nameOffset < 0 || nameOffset+RecordSize > int64(len(buf)) {
			return nil, errkit.Newf(errkit.ParseError, "name record paired with summary record %d extends past end of file", recNum)
		}
		nameRec := buf[nameOffset : nameOffset+RecordSize]

		pos := 24
		namePos := 0
		for i := 0; i < count; i++ {
			if pos+summaryBytes > len(summaryRec) {
				return nil, errkit.New(errkit.ParseError, "summary count exceeds record capacity")
			}
			raw := summaryRec[pos : pos+summaryBytes]
			summary := decodeSummary(order, raw, fr.ND, fr.NI)

			nameBytes := nameRec[namePos : namePos+summaryBytes]
			name := decodeName(nameBytes)
			if name.Invalid {
				log.Printf("daf: name of segment %d is not valid UTF-8; using %q", len(segments), name.Text)
			}

			segments = append(segments, Segment{Summary: summary, Name: name})

			pos += summaryBytes
			namePos += summaryBytes
		}

		recNum = next
	}

	return segments, nil
}

// readFloatAsInt reinterprets 8 bytes as a float64 and truncates to an int —
// the summary-record header (next, previous, count) is stored as whole
// numbers in double-precision form.
func readFloatAsInt(order binary.ByteOrder, b []byte) int64 {
	bits := order.Uint64(b)
	return int64(math.Float64frombits(bits))
}

func decodeSummary(order binary.ByteOrder, raw []byte, nd, ni int) Summary {
	doubles := make([]float64, nd)
	for i := 0; i < nd; i++ {
		doubles[i] = math.Float64frombits(order.Uint64(raw[i*8 : i*8+8]))
	}

	intOffset := nd * 8
	ints := make([]int32, ni)
	for i := 0; i < ni; i++ {
		ints[i] = int32(order.Uint32(raw[intOffset+i*4 : intOffset+i*4+4]))
	}

	return Summary{Doubles: doubles, Ints: ints}
}

func decodeName(raw []byte) Name {
	trimmed := strings.TrimRight(string(raw), " \x00")
	if !utf8.ValidString(trimmed) {
		return Name{Text: "UNNAMED OBJECT", Invalid: true}
	}
	return Name{Text: trimmed}
}

// MutableNameHandle is the one sanctioned way to rewrite a name-record entry
// in place. It writes into the same backing buffer that WalkSummaries and
// the spk/bpc loaders read from, so calling SetNthName while another
// goroutine reads that buffer is a data race — callers must hold a
// MutableNameHandle exclusively, never alongside concurrent queries. This is
// deliberately not a method on Almanac or on any query-path type: promoting
// it there would let a single mutating call invalidate every other query
// sharing the same loaded file.
type MutableNameHandle struct {
	buf          []byte
	fr           FileRecord
	summaryBytes int
}

// NewMutableNameHandle wraps buf for name rewriting. fr must have been
// parsed from buf (or an identical copy) via ParseFileRecord.
func NewMutableNameHandle(buf []byte, fr FileRecord) *MutableNameHandle {
	return &MutableNameHandle{buf: buf, fr: fr, summaryBytes: fr.SummarySize() * 8}
}

// SetNthName overwrites the n'th (0-based, file order across the whole
// summary/name chain) segment's name with newName, space-padding it to fill
// the fixed-width name slot. It returns an error if n is out of range or
// newName does not fit.
func (h *MutableNameHandle) SetNthName(n int, newName string) error {
	if n < 0 {
		return errkit.Newf(errkit.ParseError, "segment index %d out of range", n)
	}
	if len(newName) > h.summaryBytes {
		return errkit.Newf(errkit.ParseError, "name %q (%d bytes) exceeds the %d-byte name slot", newName, len(newName), h.summaryBytes)
	}

	order := hostByteOrder()
	recNum := h.fr.Forward
	remaining := n
	for recNum != 0 {
		summaryOffset := int64(recNum-1) * RecordSize
		if summaryOffset < 0 || summaryOffset+RecordSize > int64(len(h.buf)) {
			return errkit.Newf(errkit.ParseError, "summary record at %d extends past end of file", recNum)
		}
		summaryRec := h.buf[summaryOffset : summaryOffset+RecordSize]
		next := int(readFloatAsInt(order, summaryRec[0:8]))
		count := int(readFloatAsInt(order, summaryRec[16:24]))

		if remaining < count {
			nameOffset := int64(recNum) * RecordSize
			if nameOffset < 0 || nameOffset+RecordSize > int64(len(h.buf)) {
				return errkit.Newf(errkit.ParseError, "name record paired with summary record %d extends past end of file", recNum)
			}
			nameRec := h.buf[nameOffset : nameOffset+RecordSize]
			namePos := remaining * h.summaryBytes
			slot := nameRec[namePos : namePos+h.summaryBytes]
			copy(slot, newName)
			for i := len(newName); i < len(slot); i++ {
				slot[i] = ' '
			}
			return nil
		}

		remaining -= count
		recNum = next
	}

	return errkit.Newf(errkit.ParseError, "segment index %d out of range", n)
}
