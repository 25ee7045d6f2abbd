// Package almanac implements the Almanac orchestrator: the
// single entry point that owns loaded SPK/BPC files and constants datasets,
// identifies a new byte buffer's kind, and dispatches translate/rotate
// queries to packages frame, spk, bpc, and orientation. Nothing in this
// package parses bytes itself beyond the dispatch decision — decoding is
// always delegated to the package that owns that format.
package almanac

import (
	"log"

	"github.com/starhaven/spicekit/bpc"
	"github.com/starhaven/spicekit/constants"
	"github.com/starhaven/spicekit/daf"
	"github.com/starhaven/spicekit/ephemtime"
	"github.com/starhaven/spicekit/errkit"
	"github.com/starhaven/spicekit/frame"
	"github.com/starhaven/spicekit/orientation"
	"github.com/starhaven/spicekit/spatial"
	"github.com/starhaven/spicekit/spk"
)

// Resource ceilings: fixed-size slot tables, never a dynamic
// allocation. Loading past one of these is a Capacity error, not a panic.
const (
	MaxLoadedSPKs      = 32
	MaxLoadedBPCs      = 8
	MaxSpacecraftData  = 16
	MaxPlanetaryData   = 64
)

// InertialFrame is the orientation identifier meaning "already expressed in
// the inertial (ICRF) frame; no rotation needed" — the root of every
// orientation chain, the same way body 0 (the Solar System Barycenter) is
// the root of every translation chain.
const InertialFrame = 0

// Frame names a reference frame as a (translation origin, orientation)
// pair. Orientation may equal Origin (the common case: a body's own
// orientation centered on itself), InertialFrame, or one of the
// FixedOrientation* sentinels below.
type Frame struct {
	Origin      int
	Orientation int
}

// BodyFrame returns a Frame centered on and oriented with body id — the
// frame most queries are expressed in.
func BodyFrame(id int) Frame {
	return Frame{Origin: id, Orientation: id}
}

// Fixed orientation sentinels, dispatched to orientation.FixedFrame rather
// than to a loaded PCK/BPC record. Negative so they can never collide with
// a NAIF body/frame ID.
const (
	FixedOrientationGalactic = -1
	FixedOrientationB1950    = -2
	FixedOrientationICRSBias = -3
)

// Aberration is the enumerated light-time/stellar correction tag reserved
// on TransformTo. Only AberrationNone is implemented by the core; the
// others are accepted as valid input but rejected at call time.
type Aberration int

const (
	AberrationNone Aberration = iota
	AberrationLightTime
	AberrationStellar
	AberrationBoth
)

// State is a position/velocity pair expressed in a given Frame, the value
// TransformTo operates on.
type State struct {
	Position spatial.Vector3
	Velocity spatial.Vector3
	Frame    Frame
}

// Almanac is the immutable, copy-on-write orchestrator over loaded files
// and datasets. Every With* setter returns a new
// Almanac sharing the predecessor's slices — old Almanac values remain
// valid and queryable after a new one is derived from them.
type Almanac struct {
	spks []*spk.File
	bpcs []*bpc.File

	planetary  *constants.Dataset
	spacecraft *constants.Dataset
	eulerParam *constants.Dataset

	Logger *log.Logger
}

// New returns an empty Almanac with no loaded files or datasets.
func New() *Almanac {
	return &Almanac{Logger: log.Default()}
}

// Report is Almanac.Describe's introspection result: counts of loaded data
// and remaining capacity, used by the tests.
type Report struct {
	LoadedSPKs, FreeSPKSlots int
	LoadedBPCs, FreeBPCSlots int
	PlanetaryRecords         int
	SpacecraftRecords        int
	EulerParameterRecords    int
}

// Describe summarizes what this Almanac currently holds.
func (a *Almanac) Describe() Report {
	r := Report{
		LoadedSPKs:   len(a.spks),
		FreeSPKSlots: MaxLoadedSPKs - len(a.spks),
		LoadedBPCs:   len(a.bpcs),
		FreeBPCSlots: MaxLoadedBPCs - len(a.bpcs),
	}
	if a.planetary != nil {
		r.PlanetaryRecords = len(a.planetary.IDs())
	}
	if a.spacecraft != nil {
		r.SpacecraftRecords = len(a.spacecraft.IDs())
	}
	if a.eulerParam != nil {
		r.EulerParameterRecords = len(a.eulerParam.IDs())
	}
	return r
}

func (a *Almanac) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}

// WithSPK returns a new Almanac with f added as the newest-loaded SPK file.
func (a *Almanac) WithSPK(f *spk.File) (*Almanac, error) {
	if len(a.spks) >= MaxLoadedSPKs {
		return nil, errkit.Newf(errkit.Capacity, "already at MAX_LOADED_SPKS (%d)", MaxLoadedSPKs)
	}
	next := a.clone()
	next.spks = append(append([]*spk.File{}, a.spks...), f)
	return next, nil
}

// WithBPC returns a new Almanac with f added as the newest-loaded BPC file.
func (a *Almanac) WithBPC(f *bpc.File) (*Almanac, error) {
	if len(a.bpcs) >= MaxLoadedBPCs {
		return nil, errkit.Newf(errkit.Capacity, "already at MAX_LOADED_BPCS (%d)", MaxLoadedBPCs)
	}
	next := a.clone()
	next.bpcs = append(append([]*bpc.File{}, a.bpcs...), f)
	return next, nil
}

// WithPlanetaryData returns a new Almanac with ds as its planetary
// constants table, replacing any previously loaded one.
func (a *Almanac) WithPlanetaryData(ds *constants.Dataset) (*Almanac, error) {
	if n := len(ds.IDs()); n > MaxPlanetaryData {
		return nil, errkit.Newf(errkit.Capacity, "planetary dataset has %d records, exceeds MAX_PLANETARY_DATA (%d)", n, MaxPlanetaryData)
	}
	next := a.clone()
	next.planetary = ds
	return next, nil
}

// WithSpacecraftData returns a new Almanac with ds as its spacecraft
// constants table.
func (a *Almanac) WithSpacecraftData(ds *constants.Dataset) (*Almanac, error) {
	if n := len(ds.IDs()); n > MaxSpacecraftData {
		return nil, errkit.Newf(errkit.Capacity, "spacecraft dataset has %d records, exceeds MAX_SPACECRAFT_DATA (%d)", n, MaxSpacecraftData)
	}
	next := a.clone()
	next.spacecraft = ds
	return next, nil
}

// WithEulerParameterData returns a new Almanac with ds as its Euler
// parameter dataset.
func (a *Almanac) WithEulerParameterData(ds *constants.Dataset) (*Almanac, error) {
	next := a.clone()
	next.eulerParam = ds
	return next, nil
}

func (a *Almanac) clone() *Almanac {
	return &Almanac{
		spks:       a.spks,
		bpcs:       a.bpcs,
		planetary:  a.planetary,
		spacecraft: a.spacecraft,
		eulerParam: a.eulerParam,
		Logger:     a.Logger,
	}
}

// LoadBytes identifies buf's kind and dispatches to the matching loader,
// returning a new Almanac with it added.
func (a *Almanac) LoadBytes(buf []byte) (*Almanac, error) {
	if fr, err := daf.ParseFileRecord(buf); err == nil {
		switch fr.Subtype {
		case daf.SubtypeSPK:
			a.logger().Printf("almanac: loading buffer as DAF/SPK")
			f, err := spk.Load(buf)
			if err != nil {
				return nil, errkit.Wrap(errkit.ParseError, "loading DAF/SPK payload", err)
			}
			return a.WithSPK(f)
		case daf.SubtypePCK:
			a.logger().Printf("almanac: loading buffer as DAF/PCK (BPC)")
			f, err := bpc.Load(buf)
			if err != nil {
				return nil, errkit.Wrap(errkit.ParseError, "loading DAF/PCK payload", err)
			}
			return a.WithBPC(f)
		default:
			return nil, errkit.Newf(errkit.ParseError, "DAF/%s is not yet supported", fr.Subtype)
		}
	}

	ds, err := constants.Decode(buf)
	if err != nil {
		return nil, errkit.New(errkit.ParseError, "buffer is neither a recognizable DAF file nor a constants dataset")
	}
	switch ds.Type {
	case constants.PlanetaryData:
		a.logger().Printf("almanac: loading buffer as planetary constants dataset")
		return a.WithPlanetaryData(ds)
	case constants.SpacecraftData:
		a.logger().Printf("almanac: loading buffer as spacecraft constants dataset")
		return a.WithSpacecraftData(ds)
	case constants.EulerParameterData:
		a.logger().Printf("almanac: loading buffer as Euler parameter dataset")
		return a.WithEulerParameterData(ds)
	default:
		return nil, errkit.Newf(errkit.ParseError, "unsupported constants dataset type %v", ds.Type)
	}
}

// buildGraph assembles the frame graph over every currently loaded SPK file,
// newest-added last (frame.Graph's own "newest load wins" tie-break).
// Cheap enough to build per query: queries are expected to complete at
// microsecond scale, and this is just a slice copy plus pointer assignment.
func (a *Almanac) buildGraph() *frame.Graph {
	g := frame.NewGraph()
	for _, f := range a.spks {
		g.AddFile(f)
	}
	return g
}

// TranslateFromTo returns the position (km) and velocity (km/s) of src
// relative to tgt at epoch.
func (a *Almanac) TranslateFromTo(src, tgt int, epoch ephemtime.Epoch) (spatial.Vector3, spatial.Vector3, error) {
	pos, vel, err := a.buildGraph().Translate(src, tgt, epoch.TDBSeconds())
	if err != nil {
		return spatial.Vector3{}, spatial.Vector3{}, err
	}
	return spatial.FromArray(pos), spatial.FromArray(vel), nil
}

// TranslateStateTo adds the src→tgt frame translation to a supplied state
//.
func (a *Almanac) TranslateStateTo(r, v spatial.Vector3, src, tgt int, epoch ephemtime.Epoch) (spatial.Vector3, spatial.Vector3, error) {
	dp, dv, err := a.TranslateFromTo(src, tgt, epoch)
	if err != nil {
		return spatial.Vector3{}, spatial.Vector3{}, err
	}
	return r.Add(dp), v.Add(dv), nil
}

// RotationToParent returns the DCM that rotates a vector from orientation's
// own body-fixed frame into its parent inertial frame at epoch, and that
// DCM's time derivative (zero for a time-invariant fixed frame). Resolution
// order: fixed-frame table, then the loaded planetary
// constants dataset (analytic Pole), then any covering BPC Chebyshev
// segment.
func (a *Almanac) RotationToParent(orientationID int, epoch ephemtime.Epoch) (dcm, dcmRate spatial.Matrix3, err error) {
	if orientationID == InertialFrame {
		return spatial.Identity3, spatial.Matrix3{}, nil
	}
	if orientationID < 0 {
		m, ok := orientation.FixedFrame(orientation.FixedFrameID(-orientationID - 1))
		if !ok {
			return dcm, dcmRate, errkit.Newf(errkit.LookupMiss, "no fixed orientation frame %d", orientationID)
		}
		return m, spatial.Matrix3{}, nil
	}

	if a.planetary != nil {
		if rec, lookupErr := a.planetary.ByID(int32(orientationID)); lookupErr == nil {
			T := epoch.CenturiesPastJ2000TDB()
			d := T * 36525.0
			return rec.Pole.ToInertial(T, d), rec.Pole.ToInertialRate(T, d), nil
		}
	}

	for i := len(a.bpcs) - 1; i >= 0; i-- {
		for _, seg := range a.bpcs[i].Segments {
			if seg.Body == orientationID && seg.Covers(epoch.TDBSeconds()) {
				angles, rates := seg.EulerAngles(epoch.TDBSeconds())
				dcm = orientation.ComposeRADecW(angles[0], angles[1], angles[2])
				dcmRate = orientation.ComposeRADecWRate(angles[0], angles[1], angles[2], rates[0], rates[1], rates[2])
				return dcm, dcmRate, nil
			}
		}
	}

	return dcm, dcmRate, errkit.Newf(errkit.LookupMiss, "no orientation data loaded for frame %d at this epoch", orientationID)
}

// TransformTo composes a translation (origin change) and a rotation (axis
// change) to re-express state in target, applying the requested aberration
// correction. Only AberrationNone is
// implemented; the other tag values are reserved but rejected here.
func (a *Almanac) TransformTo(state State, target Frame, ab Aberration, epoch ephemtime.Epoch) (State, error) {
	if ab != AberrationNone {
		return State{}, errkit.Newf(errkit.LookupMiss, "aberration correction %v is reserved, not implemented by the core", ab)
	}

	m0, m0dot, err := a.RotationToParent(state.Frame.Orientation, epoch)
	if err != nil {
		return State{}, err
	}
	posInertial := m0.MulVec(state.Position)
	velInertial := m0.MulVec(state.Velocity).Add(m0dot.MulVec(state.Position))

	dp, dv, err := a.TranslateFromTo(state.Frame.Origin, target.Origin, epoch)
	if err != nil {
		return State{}, err
	}
	posInertial = posInertial.Add(dp)
	velInertial = velInertial.Add(dv)

	m1, m1dot, err := a.RotationToParent(target.Orientation, epoch)
	if err != nil {
		return State{}, err
	}
	m1T := m1.Transpose()
	posTarget := m1T.MulVec(posInertial)
	velTarget := m1T.MulVec(velInertial).Sub(m1T.Mul(m1dot).MulVec(posTarget))

	return State{Position: posTarget, Velocity: velTarget, Frame: target}, nil
}
