// Package ephemtime provides the Epoch type and UTC/TT/TDB/UT1 conversions
// used throughout the core. Time-scale arithmetic is treated as a collaborator
// separate from the core geometry packages; this package is a minimal,
// concrete implementation of it so the module is self-contained.
package ephemtime

import (
	"time"
)

// SecPerDay is the number of SI seconds in a day.
const SecPerDay = 86400.0

// j2000JD is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000JD = 2451545.0

// Epoch is an opaque scalar time, stored as TDB seconds past J2000: totally
// ordered comparison (via Before/After/Equal or direct float comparison of
// TDBSeconds()), conversion to/from ephemeris seconds, and subtraction
// yielding a duration in seconds.
type Epoch struct {
	secondsPastJ2000TDB float64
}

// FromTDBSeconds builds an Epoch directly from TDB seconds past J2000 — the
// "ephemeris seconds" scale used throughout the DAF file formats.
func FromTDBSeconds(s float64) Epoch { return Epoch{s} }

// FromTDBJulianDate builds an Epoch from a TDB Julian date.
func FromTDBJulianDate(jd float64) Epoch {
	return Epoch{(jd - j2000JD) * SecPerDay}
}

// FromUTC builds an Epoch from a civil UTC time, by way of TAI and
// Fairhead-Bretagnon TDB-TT.
func FromUTC(t time.Time) Epoch {
	jdUTC := TimeToJDUTC(t)
	jdTT := UTCToTT(jdUTC)
	ttSecPastJ2000 := (jdTT - j2000JD) * SecPerDay
	tdbMinusTT := TDBMinusTT(jdTT)
	return Epoch{ttSecPastJ2000 + tdbMinusTT}
}

// TDBSeconds returns the epoch as TDB seconds past J2000 — the scale every
// DAF segment type (2, 3, 13) evaluates against.
func (e Epoch) TDBSeconds() float64 { return e.secondsPastJ2000TDB }

// TDBJulianDate returns the epoch as a TDB Julian date.
func (e Epoch) TDBJulianDate() float64 {
	return j2000JD + e.secondsPastJ2000TDB/SecPerDay
}

// Sub returns e - other, as a duration in seconds.
func (e Epoch) Sub(other Epoch) float64 {
	return e.secondsPastJ2000TDB - other.secondsPastJ2000TDB
}

// Add returns e advanced by seconds (may be negative).
func (e Epoch) Add(seconds float64) Epoch {
	return Epoch{e.secondsPastJ2000TDB + seconds}
}

// Before reports whether e is strictly earlier than other.
func (e Epoch) Before(other Epoch) bool { return e.secondsPastJ2000TDB < other.secondsPastJ2000TDB }

// After reports whether e is strictly later than other.
func (e Epoch) After(other Epoch) bool { return e.secondsPastJ2000TDB > other.secondsPastJ2000TDB }

// Equal reports whether e and other denote the same instant.
func (e Epoch) Equal(other Epoch) bool { return e.secondsPastJ2000TDB == other.secondsPastJ2000TDB }

// CenturiesPastJ2000TDB returns Julian centuries of TDB past J2000 — the
// argument the orientation engine's quadratic pole models are evaluated in.
func (e Epoch) CenturiesPastJ2000TDB() float64 {
	const secPerCentury = SecPerDay * 36525.0
	return e.secondsPastJ2000TDB / secPerCentury
}

// TimeToJDUTC converts a civil time.Time (any location; converted to UTC) to
// a Julian date on the UTC scale.
func TimeToJDUTC(t time.Time) float64 {
	t = t.UTC()
	y, m, d := t.Date()
	// Fliegel & Van Flandern algorithm for the Julian day number at 0h.
	a := (14 - int(m)) / 12
	y2 := y + 4800 - a
	m2 := int(m) + 12*a - 3
	jdn := d + (153*m2+2)/5 + 365*y2 + y2/4 - y2/100 + y2/400 - 32045

	secOfDay := float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second()) + float64(t.Nanosecond())/1e9
	return float64(jdn) - 0.5 + secOfDay/SecPerDay
}
