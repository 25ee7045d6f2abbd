package ephemtime

import "math"

// leapSecondEntry is one row of the historical TAI-UTC leap second table,
// as published by the IERS: from jdUTC onward, TAI-UTC equals offsetSec.
type leapSecondEntry struct {
	jdUTC     float64
	offsetSec float64
}

// leapSecondTable holds the IERS leap-second introductions from 1972 (the
// start of the current leap-second era) through the most recent one, 2017.
// No leap second has been introduced since.
var leapSecondTable = buildLeapSecondTable([]struct {
	y, m, d int
	offset  float64
}{
	{1972, 1, 1, 10}, {1972, 7, 1, 11}, {1973, 1, 1, 12}, {1974, 1, 1, 13},
	{1975, 1, 1, 14}, {1976, 1, 1, 15}, {1977, 1, 1, 16}, {1978, 1, 1, 17},
	{1979, 1, 1, 18}, {1980, 1, 1, 19}, {1981, 7, 1, 20}, {1982, 7, 1, 21},
	{1983, 7, 1, 22}, {1985, 7, 1, 23}, {1988, 1, 1, 24}, {1990, 1, 1, 25},
	{1991, 1, 1, 26}, {1992, 7, 1, 27}, {1993, 7, 1, 28}, {1994, 7, 1, 29},
	{1996, 1, 1, 30}, {1997, 7, 1, 31}, {1999, 1, 1, 32}, {2006, 1, 1, 33},
	{2009, 1, 1, 34}, {2012, 7, 1, 35}, {2015, 7, 1, 36}, {2017, 1, 1, 37},
})

func buildLeapSecondTable(rows []struct {
	y, m, d int
	offset  float64
}) []leapSecondEntry {
	table := make([]leapSecondEntry, len(rows))
	for i, r := range rows {
		// Civil date at 0h UTC, via the Julian day number formula.
		a := (14 - r.m) / 12
		y2 := r.y + 4800 - a
		m2 := r.m + 12*a - 3
		jdn := r.d + (153*m2+2)/5 + 365*y2 + y2/4 - y2/100 + y2/400 - 32045
		table[i] = leapSecondEntry{jdUTC: float64(jdn) - 0.5, offsetSec: r.offset}
	}
	return table
}

// LeapSecondOffset returns TAI-UTC, in seconds, for the given UTC Julian
// date. Dates before the first table entry return the first entry's offset
// (10s); dates after the last return the last (37s, unchanged since 2017).
func LeapSecondOffset(jdUTC float64) float64 {
	if jdUTC < leapSecondTable[0].jdUTC {
		return leapSecondTable[0].offsetSec
	}
	offset := leapSecondTable[0].offsetSec
	for _, e := range leapSecondTable {
		if jdUTC < e.jdUTC {
			break
		}
		offset = e.offsetSec
	}
	return offset
}

// deltaTEntry is one row of the ΔT = TT − UT1 historical/predicted table,
// sampled at decade boundaries.
type deltaTEntry struct {
	year, seconds float64
}

// deltaTTable gives ΔT at ten-year intervals through 2100 and twenty-year
// intervals from 2100 to 2200. Values before 1972 are rough
// historical estimates; after 1972, ΔT = 32.184 + (TAI-UTC) - (UT1-UTC), and
// the table below approximates the UT1-UTC term as zero (sub-second, and
// this module's accuracy target for UT1 is seconds, not milliseconds — real
// sub-second Earth-orientation correction belongs in a dedicated IERS-bulletin
// reader the core does not need).
var deltaTTable = []deltaTEntry{
	{1800, 13.7}, {1810, 12.5}, {1820, 11.8}, {1830, 11.2}, {1840, 9.4},
	{1850, 7.8}, {1860, 7.1}, {1870, 2.1}, {1880, -4.5}, {1890, -5.9},
	{1900, -2.8}, {1910, 3.9}, {1920, 10.5}, {1930, 21.2}, {1940, 24.3},
	{1950, 29.2}, {1960, 33.2}, {1970, 40.2}, {1980, 50.5}, {1990, 57.0},
	{2000, 63.8}, {2010, 66.1}, {2020, 69.0}, {2030, 71.0}, {2040, 73.0},
	{2050, 75.0}, {2060, 77.0}, {2070, 79.0}, {2080, 81.0}, {2090, 83.0},
	{2100, 85.0}, {2120, 89.0}, {2140, 93.0}, {2160, 97.0}, {2180, 101.0},
	{2200, 105.0},
}

// DeltaT returns an estimate of ΔT = TT − UT1 in seconds for a decimal year,
// linearly interpolating the table above and clamping at its endpoints.
func DeltaT(year float64) float64 {
	n := len(deltaTTable)
	if year <= deltaTTable[0].year {
		return deltaTTable[0].seconds
	}
	if year >= deltaTTable[n-1].year {
		return deltaTTable[n-1].seconds
	}
	for i := 0; i < n-1; i++ {
		a, b := deltaTTable[i], deltaTTable[i+1]
		if year >= a.year && year <= b.year {
			frac := (year - a.year) / (b.year - a.year)
			return a.seconds + frac*(b.seconds-a.seconds)
		}
	}
	return deltaTTable[n-1].seconds
}

// UTCToTT converts a UTC Julian date to TT: TT = UTC + (TAI-UTC) + 32.184s.
func UTCToTT(jdUTC float64) float64 {
	offsetSec := LeapSecondOffset(jdUTC) + 32.184
	return jdUTC + offsetSec/SecPerDay
}

// TTToUT1 converts a TT Julian date to UT1 via the ΔT table.
func TTToUT1(jdTT float64) float64 {
	year := 2000.0 + (jdTT-j2000JD)/365.25
	dt := DeltaT(year)
	return jdTT - dt/SecPerDay
}

// TDBMinusTT returns TDB-TT in seconds for a given TT Julian date, via the
// Fairhead & Bretagnon (1990) approximation (USNO Circular 179 eq. 2.6).
func TDBMinusTT(jdTT float64) float64 {
	t := (jdTT - j2000JD) / 36525.0
	return 0.001657*math.Sin(628.3076*t+6.2401) +
		0.000022*math.Sin(575.3385*t+4.2970) +
		0.000014*math.Sin(1256.6152*t+6.1969) +
		0.000005*math.Sin(606.9777*t+4.0212) +
		0.000005*math.Sin(52.9691*t+0.4444) +
		0.000002*math.Sin(21.3299*t+5.5431) +
		0.000010*t*math.Sin(628.3076*t+4.2490)
}
