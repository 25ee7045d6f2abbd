package ephemtime

import (
	"math"
	"testing"
	"time"
)

func TestTimeToJDUTCKnownValues(t *testing.T) {
	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if jd := TimeToJDUTC(j2000); math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("J2000 JD = %.10f, want 2451545.0", jd)
	}

	unixEpoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if jd := TimeToJDUTC(unixEpoch); math.Abs(jd-2440587.5) > 1e-9 {
		t.Errorf("unix epoch JD = %.10f, want 2440587.5", jd)
	}
}

func TestLeapSecondOffsetMonotonicAndClamped(t *testing.T) {
	if got := LeapSecondOffset(2400000.0); got != 10 {
		t.Errorf("pre-1972 offset = %v, want 10", got)
	}
	if got := LeapSecondOffset(2441317.5); got != 10 {
		t.Errorf("1972-01-01 offset = %v, want 10", got)
	}
	if got := LeapSecondOffset(2460000.0); got != 37 {
		t.Errorf("future offset = %v, want 37 (latest)", got)
	}

	prev := LeapSecondOffset(leapSecondTable[0].jdUTC)
	for _, e := range leapSecondTable {
		got := LeapSecondOffset(e.jdUTC)
		if got < prev {
			t.Fatalf("leap second offset not monotonic at jd=%v", e.jdUTC)
		}
		prev = got
	}
}

func TestDeltaTClampsAtEndpoints(t *testing.T) {
	if DeltaT(1700) != DeltaT(1800) {
		t.Errorf("DeltaT should clamp below first table entry")
	}
	if DeltaT(2300) != DeltaT(2200) {
		t.Errorf("DeltaT should clamp above last table entry")
	}
}

func TestDeltaTInterpolatesBetweenEntries(t *testing.T) {
	mid := DeltaT(2000.5)
	lo, hi := DeltaT(2000), DeltaT(2010)
	if mid < math.Min(lo, hi) || mid > math.Max(lo, hi) {
		t.Errorf("DeltaT(2000.5) = %v, not between %v and %v", mid, lo, hi)
	}
}

func TestTDBMinusTTAmplitude(t *testing.T) {
	for year := 1950.0; year <= 2100.0; year += 5 {
		jd := j2000JD + (year-2000.0)*365.25
		dt := TDBMinusTT(jd)
		if math.Abs(dt) > 0.002 {
			t.Errorf("TDB-TT at year %.0f = %v s, exceeds 2ms", year, dt)
		}
	}
}

func TestEpochRoundTripViaJulianDate(t *testing.T) {
	e := FromTDBJulianDate(2451545.5)
	if math.Abs(e.TDBJulianDate()-2451545.5) > 1e-12 {
		t.Errorf("round trip mismatch: %v", e.TDBJulianDate())
	}
}

func TestEpochOrderingAndSub(t *testing.T) {
	a := FromTDBSeconds(100)
	b := FromTDBSeconds(250)
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("ordering broken")
	}
	if got := b.Sub(a); got != 150 {
		t.Errorf("Sub: got %v, want 150", got)
	}
	if got := a.Add(150); !got.Equal(b) {
		t.Errorf("Add: got %v, want equal to b", got)
	}
}

func TestFromUTCNearJ2000(t *testing.T) {
	// J2000.0 epoch is defined as 2000-01-01 12:00 TT, which is a handful of
	// seconds before 12:00 UTC (32.184s TT-TAI plus accumulated leap seconds).
	noon := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	e := FromUTC(noon)
	if math.Abs(e.TDBSeconds()) > 120 {
		t.Errorf("FromUTC(2000-01-01T12:00:00Z) too far from J2000: %v seconds", e.TDBSeconds())
	}
}
