package spk

// Common NAIF body identification codes, as used in SPK segment summaries'
// target/center integer fields. Not exhaustive — callers needing an ID
// absent here can still load and query the segment directly, since
// Evaluate/Segments work on plain ints.
const (
	SSB               = 0 // Solar System Barycenter
	MercuryBarycenter = 1
	VenusBarycenter   = 2
	EarthBarycenter   = 3
	MarsBarycenter    = 4
	JupiterBarycenter = 5
	SaturnBarycenter  = 6
	UranusBarycenter  = 7
	NeptuneBarycenter = 8
	PlutoBarycenter   = 9

	Sun = 10

	Mercury = 199
	Venus   = 299
	Earth   = 399
	Moon    = 301
	Mars    = 499
)

var bodyNames = map[int]string{
	SSB:               "Solar System Barycenter",
	MercuryBarycenter: "Mercury Barycenter",
	VenusBarycenter:   "Venus Barycenter",
	EarthBarycenter:   "Earth-Moon Barycenter",
	MarsBarycenter:    "Mars Barycenter",
	JupiterBarycenter: "Jupiter Barycenter",
	SaturnBarycenter:  "Saturn Barycenter",
	UranusBarycenter:  "Uranus Barycenter",
	NeptuneBarycenter: "Neptune Barycenter",
	PlutoBarycenter:   "Pluto Barycenter",
	Sun:               "Sun",
	Mercury:           "Mercury",
	Venus:             "Venus",
	Earth:             "Earth",
	Moon:              "Moon",
	Mars:              "Mars",
}

// BodyName returns the common name for one of the NAIF IDs above, and false
// for any ID this table doesn't carry — the table is a convenience for
// human-readable output, not a substitute for querying a loaded kernel.
func BodyName(id int) (string, bool) {
	name, ok := bodyNames[id]
	return name, ok
}
