// Package constants implements a self-describing binary dataset of
// planetary orientation and body constants: a small header, two lookup tables (by NAIF ID and
// by hashed name), and a record region. The format is deliberately simple
// compared to a real SPICE text PCK — it exists so the orientation engine
// and the Almanac have somewhere to look up a body's Pole without parsing a
// binary PCK kernel for bodies that don't have one loaded.
package constants

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/starhaven/spicekit/errkit"
	"github.com/starhaven/spicekit/orientation"
)

// Magic is the fixed 5-byte identifier at the start of every dataset.
const Magic = "ANISE"

// Version is the dataset format version this package reads and writes.
var Version = [3]uint8{1, 0, 0}

// DatasetType tags what kind of records a dataset carries.
type DatasetType uint8

const (
	NotApplicable DatasetType = iota
	SpacecraftData
	PlanetaryData
	EulerParameterData
)

// PlanetaryRecord is one body's entry in a PlanetaryData dataset: its NAIF
// ID, name, and orientation Pole.
type PlanetaryRecord struct {
	ID   int32
	Name string
	Pole orientation.Pole
}

// Dataset holds decoded records in memory, indexed for both ID and
// hashed-name lookup.
type Dataset struct {
	Type    DatasetType
	records []PlanetaryRecord
	byID    map[int32]int
	byHash  map[uint64]int
}

// NewDataset builds an in-memory planetary dataset from records, indexing
// them for lookup.
func NewDataset(typ DatasetType, records []PlanetaryRecord) *Dataset {
	ds := &Dataset{
		Type:    typ,
		records: records,
		byID:    make(map[int32]int, len(records)),
		byHash:  make(map[uint64]int, len(records)),
	}
	for i, r := range records {
		ds.byID[r.ID] = i
		ds.byHash[hashName(r.Name)] = i
	}
	return ds
}

// hashName computes the FNV-1a hash of a body name, case-sensitive. FNV-1a
// (stdlib hash/fnv) is used rather than a custom hash since it is exactly
// the "hashed-name lookup" tool the standard library already ships.
func hashName(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// ByID looks up a record by NAIF ID. If the exact ID is absent, it falls
// back to the whole record for id/100 — the shared parent-body record many
// individual bodies (e.g. a planet's satellites) inherit their orientation
// model from when they lack one of their own. A narrower fallback also
// applies when the body's own record exists but its Pole carries no
// periodic-correction Terms: some groups of bodies (e.g. a planet's
// regular satellites) share a single nutation/libration term table stored
// on the parent's record while still keeping their own RA/Dec/W
// polynomial, so only Terms is borrowed from the parent in that case.
func (ds *Dataset) ByID(id int32) (PlanetaryRecord, error) {
	parent := id / 100

	idx, ok := ds.byID[id]
	if !ok {
		if pidx, ok := ds.byID[parent]; ok && parent != id {
			return ds.records[pidx], nil
		}
		return PlanetaryRecord{}, errkit.Newf(errkit.LookupMiss, "no planetary record for id %d (or parent %d)", id, parent)
	}

	rec := ds.records[idx]
	if len(rec.Pole.Terms) == 0 {
		if pidx, ok := ds.byID[parent]; ok && parent != id {
			rec.Pole.Terms = ds.records[pidx].Pole.Terms
		}
	}
	return rec, nil
}

// ByName looks up a record by exact name via the hashed-name table.
func (ds *Dataset) ByName(name string) (PlanetaryRecord, error) {
	if idx, ok := ds.byHash[hashName(name)]; ok {
		return ds.records[idx], nil
	}
	return PlanetaryRecord{}, errkit.Newf(errkit.LookupMiss, "no planetary record named %q", name)
}

// IDs returns every ID present, sorted ascending — used by Describe-style
// introspection.
func (ds *Dataset) IDs() []int32 {
	ids := make([]int32, 0, len(ds.byID))
	for id := range ds.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var hostOrder = binary.LittleEndian
