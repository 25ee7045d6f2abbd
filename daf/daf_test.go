package daf

import (
	"encoding/binary"
	"math"
	"testing"
)

// buildTestDAF synthesizes a minimal valid DAF byte buffer in memory: one
// file record, one summary record holding the given summaries, one paired
// name record. No real .bsp/.tpc kernel ships with this module, so every test
// here builds its own fixture byte-for-byte instead of reading one from
// disk.
func buildTestDAF(t *testing.T, nd, ni int, summaries [][]float64, ints [][]int32, names []string) []byte {
	t.Helper()
	if len(summaries) != len(ints) || len(summaries) != len(names) {
		t.Fatalf("mismatched fixture slice lengths")
	}

	buf := make([]byte, 3*RecordSize)
	order := binary.LittleEndian

	copy(buf[0:8], "DAF/SPK ")
	order.PutUint32(buf[8:12], uint32(nd))
	order.PutUint32(buf[12:16], uint32(ni))
	copy(buf[16:76], "TEST DAF FILE")
	order.PutUint32(buf[76:80], 2) // forward -> summary record 2
	order.PutUint32(buf[80:84], 2) // backward -> same
	order.PutUint32(buf[84:88], 7) // free address, unused by WalkSummaries
	copy(buf[88:96], "LTL-IEEE")

	summarySize := nd + (ni+1)/2
	summaryBytes := summarySize * 8

	summaryRec := buf[RecordSize : 2*RecordSize]
	order.PutUint64(summaryRec[0:8], math.Float64bits(0))                  // next = 0 (end of chain)
	order.PutUint64(summaryRec[8:16], math.Float64bits(0))                 // previous, unused
	order.PutUint64(summaryRec[16:24], math.Float64bits(float64(len(summaries))))

	nameRec := buf[2*RecordSize : 3*RecordSize]

	pos := 24
	namePos := 0
	for i := range summaries {
		for j, d := range summaries[i] {
			order.PutUint64(summaryRec[pos+j*8:pos+j*8+8], math.Float64bits(d))
		}
		intOffset := pos + nd*8
		for j, v := range ints[i] {
			order.PutUint32(summaryRec[intOffset+j*4:intOffset+j*4+4], uint32(v))
		}
		copy(nameRec[namePos:namePos+summaryBytes], names[i])
		for k := len(names[i]); k < summaryBytes; k++ {
			nameRec[namePos+k] = ' '
		}

		pos += summaryBytes
		namePos += summaryBytes
	}

	return buf
}

func TestParseFileRecord(t *testing.T) {
	buf := buildTestDAF(t, 2, 6,
		[][]float64{{1.0, 2.0}},
		[][]int32{{399, 0, 1, 1, 10, 20}},
		[]string{"TEST SEGMENT"},
	)

	fr, err := ParseFileRecord(buf)
	if err != nil {
		t.Fatalf("ParseFileRecord: %v", err)
	}
	if fr.Subtype != SubtypeSPK {
		t.Errorf("Subtype = %v, want SPK", fr.Subtype)
	}
	if fr.ND != 2 || fr.NI != 6 {
		t.Errorf("ND/NI = %d/%d, want 2/6", fr.ND, fr.NI)
	}
	if fr.Forward != 2 {
		t.Errorf("Forward = %d, want 2", fr.Forward)
	}
	if fr.SummarySize() != 2+(6+1)/2 {
		t.Errorf("SummarySize = %d, want %d", fr.SummarySize(), 2+(6+1)/2)
	}
}

func TestParseFileRecordRejectsBadMagic(t *testing.T) {
	buf := make([]byte, RecordSize)
	copy(buf[0:8], "NOTADAF ")
	if _, err := ParseFileRecord(buf); err == nil {
		t.Fatalf("expected error for bad identifier word")
	}
}

func TestParseFileRecordRejectsShortBuffer(t *testing.T) {
	if _, err := ParseFileRecord(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}

func TestWalkSummariesRoundTrip(t *testing.T) {
	buf := buildTestDAF(t, 2, 6,
		[][]float64{{100.0, 200.0}, {300.5, -400.25}},
		[][]int32{{399, 0, 1, 1, 10, 20}, {301, 399, 2, 1, 21, 40}},
		[]string{"EARTH SEGMENT", "MOON SEGMENT"},
	)

	fr, err := ParseFileRecord(buf)
	if err != nil {
		t.Fatalf("ParseFileRecord: %v", err)
	}

	segs, err := WalkSummaries(buf, fr)
	if err != nil {
		t.Fatalf("WalkSummaries: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}

	if segs[0].Name.Text != "EARTH SEGMENT" {
		t.Errorf("segs[0].Name = %q", segs[0].Name.Text)
	}
	if segs[0].Summary.Doubles[0] != 100.0 || segs[0].Summary.Doubles[1] != 200.0 {
		t.Errorf("segs[0].Doubles = %v", segs[0].Summary.Doubles)
	}
	first, last := segs[0].Summary.AddressRange()
	if first != 10 || last != 20 {
		t.Errorf("segs[0] address range = [%d,%d], want [10,20]", first, last)
	}

	if segs[1].Name.Text != "MOON SEGMENT" {
		t.Errorf("segs[1].Name = %q", segs[1].Name.Text)
	}
	if segs[1].Summary.Ints[0] != 301 || segs[1].Summary.Ints[1] != 399 {
		t.Errorf("segs[1].Ints = %v", segs[1].Summary.Ints)
	}
}

func TestMutableNameHandleSetNthName(t *testing.T) {
	buf := buildTestDAF(t, 2, 6,
		[][]float64{{100.0, 200.0}, {300.5, -400.25}},
		[][]int32{{399, 0, 1, 1, 10, 20}, {301, 399, 2, 1, 21, 40}},
		[]string{"EARTH SEGMENT", "MOON SEGMENT"},
	)

	fr, err := ParseFileRecord(buf)
	if err != nil {
		t.Fatalf("ParseFileRecord: %v", err)
	}

	h := NewMutableNameHandle(buf, fr)
	if err := h.SetNthName(1, "RENAMED MOON"); err != nil {
		t.Fatalf("SetNthName: %v", err)
	}

	segs, err := WalkSummaries(buf, fr)
	if err != nil {
		t.Fatalf("WalkSummaries: %v", err)
	}
	if segs[0].Name.Text != "EARTH SEGMENT" {
		t.Errorf("segs[0].Name = %q, want unchanged EARTH SEGMENT", segs[0].Name.Text)
	}
	if segs[1].Name.Text != "RENAMED MOON" {
		t.Errorf("segs[1].Name = %q, want RENAMED MOON", segs[1].Name.Text)
	}
}

func TestMutableNameHandleSetNthNameRejectsOutOfRange(t *testing.T) {
	buf := buildTestDAF(t, 2, 6,
		[][]float64{{1, 2}},
		[][]int32{{399, 0, 1, 1, 10, 20}},
		[]string{"ONLY SEGMENT"},
	)
	fr, err := ParseFileRecord(buf)
	if err != nil {
		t.Fatalf("ParseFileRecord: %v", err)
	}
	h := NewMutableNameHandle(buf, fr)
	if err := h.SetNthName(5, "NOPE"); err == nil {
		t.Fatalf("expected error for out-of-range segment index")
	}
}

func TestWalkSummariesInvalidNameFallsBack(t *testing.T) {
	buf := buildTestDAF(t, 2, 6,
		[][]float64{{1, 2}},
		[][]int32{{399, 0, 1, 1, 10, 20}},
		[]string{"\xff\xfe bad utf8"},
	)
	fr, err := ParseFileRecord(buf)
	if err != nil {
		t.Fatalf("ParseFileRecord: %v", err)
	}
	segs, err := WalkSummaries(buf, fr)
	if err != nil {
		t.Fatalf("WalkSummaries: %v", err)
	}
	if segs[0].Name.Text != "UNNAMED OBJECT" || !segs[0].Name.Invalid {
		t.Errorf("expected UNNAMED OBJECT fallback, got %+v", segs[0].Name)
	}
}
