package constants

import (
	"math"

	"github.com/starhaven/spicekit/errkit"
	"github.com/starhaven/spicekit/orientation"
)

const headerSize = 5 + 3 + 1 + 4 // magic + version + type + record count

// Encode serializes ds into the self-describing binary layout: header,
// id→offset table, hashed-name→offset table, then the record region.
// Offsets in both lookup tables are byte offsets from the start of the
// record region.
func Encode(ds *Dataset) []byte {
	records := ds.records
	n := len(records)

	recordBytes := make([][]byte, n)
	offsets := make([]uint32, n)
	var cursor uint32
	for i, r := range records {
		b := encodeRecord(r)
		recordBytes[i] = b
		offsets[i] = cursor
		cursor += uint32(len(b))
	}

	idTableSize := n * 8   // int32 id + uint32 offset
	hashTableSize := n * 12 // uint64 hash + uint32 offset

	buf := make([]byte, headerSize+idTableSize+hashTableSize+int(cursor))
	pos := 0
	copy(buf[pos:pos+5], Magic)
	pos += 5
	buf[pos], buf[pos+1], buf[pos+2] = Version[0], Version[1], Version[2]
	pos += 3
	buf[pos] = byte(ds.Type)
	pos++
	hostOrder.PutUint32(buf[pos:pos+4], uint32(n))
	pos += 4

	for i, r := range records {
		hostOrder.PutUint32(buf[pos:pos+4], uint32(r.ID))
		hostOrder.PutUint32(buf[pos+4:pos+8], offsets[i])
		pos += 8
	}
	for i, r := range records {
		hostOrder.PutUint64(buf[pos:pos+8], hashName(r.Name))
		hostOrder.PutUint32(buf[pos+8:pos+12], offsets[i])
		pos += 12
	}

	recordRegionStart := pos
	for i := range records {
		copy(buf[recordRegionStart+int(offsets[i]):], recordBytes[i])
	}

	return buf
}

func encodeRecord(r PlanetaryRecord) []byte {
	nameBytes := []byte(r.Name)
	terms := r.Pole.Terms

	size := 4 + 2 + len(nameBytes) + 9*8 + 2 + len(terms)*5*8
	b := make([]byte, size)
	pos := 0
	hostOrder.PutUint32(b[pos:pos+4], uint32(r.ID))
	pos += 4
	hostOrder.PutUint16(b[pos:pos+2], uint16(len(nameBytes)))
	pos += 2
	copy(b[pos:], nameBytes)
	pos += len(nameBytes)

	poly := []float64{
		r.Pole.RA0, r.Pole.RA1, r.Pole.RA2,
		r.Pole.Dec0, r.Pole.Dec1, r.Pole.Dec2,
		r.Pole.W0, r.Pole.W1, r.Pole.W2,
	}
	for _, v := range poly {
		hostOrder.PutUint64(b[pos:pos+8], math.Float64bits(v))
		pos += 8
	}

	hostOrder.PutUint16(b[pos:pos+2], uint16(len(terms)))
	pos += 2
	for _, term := range terms {
		vals := []float64{term.Argument0, term.Argument1, term.RAAmp, term.DecAmp, term.WAmp}
		for _, v := range vals {
			hostOrder.PutUint64(b[pos:pos+8], math.Float64bits(v))
			pos += 8
		}
	}

	return b
}

// Decode parses a buffer produced by Encode back into a Dataset.
func Decode(buf []byte) (*Dataset, error) {
	if len(buf) < headerSize || string(buf[0:5]) != Magic {
		return nil, errkit.New(errkit.ParseError, "missing ANISE magic")
	}
	version := [3]uint8{buf[5], buf[6], buf[7]}
	if version[0] != Version[0] {
		return nil, errkit.Newf(errkit.ParseError, "unsupported dataset major version %d", version[0])
	}
	typ := DatasetType(buf[8])
	n := int(hostOrder.Uint32(buf[9:13]))

	pos := headerSize
	idTable := buf[pos : pos+n*8]
	pos += n * 8
	pos += n * 12 // hash table not needed for decode; Dataset rebuilds it

	recordRegion := buf[pos:]

	records := make([]PlanetaryRecord, n)
	for i := 0; i < n; i++ {
		offset := hostOrder.Uint32(idTable[i*8+4 : i*8+8])
		r, err := decodeRecord(recordRegion[offset:])
		if err != nil {
			return nil, errkit.Wrap(errkit.ParseError, "decoding planetary record", err)
		}
		records[i] = r
	}

	return NewDataset(typ, records), nil
}

func decodeRecord(b []byte) (PlanetaryRecord, error) {
	if len(b) < 6 {
		return PlanetaryRecord{}, errkit.New(errkit.ParseError, "record too short")
	}
	id := int32(hostOrder.Uint32(b[0:4]))
	nameLen := int(hostOrder.Uint16(b[4:6]))
	pos := 6
	if pos+nameLen > len(b) {
		return PlanetaryRecord{}, errkit.New(errkit.ParseError, "truncated record name")
	}
	name := string(b[pos : pos+nameLen])
	pos += nameLen

	poly := make([]float64, 9)
	for i := range poly {
		poly[i] = math.Float64frombits(hostOrder.Uint64(b[pos : pos+8]))
		pos += 8
	}

	termCount := int(hostOrder.Uint16(b[pos : pos+2]))
	pos += 2
	terms := make([]orientation.Term, termCount)
	for i := 0; i < termCount; i++ {
		vals := make([]float64, 5)
		for j := range vals {
			vals[j] = math.Float64frombits(hostOrder.Uint64(b[pos : pos+8]))
			pos += 8
		}
		terms[i] = orientation.Term{Argument0: vals[0], Argument1: vals[1], RAAmp: vals[2], DecAmp: vals[3], WAmp: vals[4]}
	}

	return PlanetaryRecord{
		ID:   id,
		Name: name,
		Pole: orientation.Pole{
			RA0: poly[0], RA1: poly[1], RA2: poly[2],
			Dec0: poly[3], Dec1: poly[4], Dec2: poly[5],
			W0: poly[6], W1: poly[7], W2: poly[8],
			Terms: terms,
		},
	}, nil
}

