// Package frame resolves translations between bodies/frames across one or
// more loaded SPK files, by walking each body's chain of "center" segments
// up toward a root and finding the nearest common ancestor of two such
// chains.
package frame

import (
	"github.com/starhaven/spicekit/errkit"
	"github.com/starhaven/spicekit/spk"
)

// MaxTreeDepth bounds how many hops a single chain-to-root walk may take
// before the graph is considered malformed.
const MaxTreeDepth = 8

// Graph is an ordered collection of loaded SPK files. Later-added files
// take precedence over earlier ones when more than one segment could answer
// the same (target, epoch) query — "newest load wins".
type Graph struct {
	files []*spk.File
}

// NewGraph returns an empty frame graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddFile registers f's segments with the graph. f becomes the newest file,
// taking priority over every file already added.
func (g *Graph) AddFile(f *spk.File) {
	g.files = append(g.files, f)
}

// centerOf returns the segment that describes target's position relative to
// some center body at tdbSec, preferring the newest-loaded file that has a
// covering segment and, within that file, the last covering segment.
func (g *Graph) centerOf(target int, tdbSec float64) (spk.Segment, bool) {
	for i := len(g.files) - 1; i >= 0; i-- {
		segs := g.files[i].Segments
		for j := len(segs) - 1; j >= 0; j-- {
			if seg := segs[j]; seg.Target == target && seg.Covers(tdbSec) {
				return seg, true
			}
		}
	}
	return spk.Segment{}, false
}

// chainToRoot walks target's center chain up to MaxTreeDepth hops, stopping
// when no further covering segment is found (a root) or MaxTreeDepth is
// exceeded (an error: the graph likely contains a cycle).
func (g *Graph) chainToRoot(target int, tdbSec float64) (nodes []int, segs []spk.Segment, err error) {
	nodes = []int{target}
	current := target
	for depth := 0; depth < MaxTreeDepth; depth++ {
		seg, ok := g.centerOf(current, tdbSec)
		if !ok {
			return nodes, segs, nil
		}
		nodes = append(nodes, seg.Center)
		segs = append(segs, seg)
		current = seg.Center
	}
	if _, ok := g.centerOf(current, tdbSec); !ok {
		return nodes, segs, nil
	}
	return nil, nil, errkit.Newf(errkit.MaxTreeDepth, "frame chain from body %d exceeded depth %d", target, MaxTreeDepth)
}

// Translate returns the position (km) and velocity (km/s) of body `from`
// relative to body `to` at tdbSec (TDB seconds past J2000), by locating the
// nearest common ancestor of their two chains-to-root and composing the
// segments on each side via subtraction.
func (g *Graph) Translate(from, to int, tdbSec float64) (pos, vel [3]float64, err error) {
	if from == to {
		return pos, vel, nil
	}

	fromNodes, fromSegs, err := g.chainToRoot(from, tdbSec)
	if err != nil {
		return pos, vel, err
	}
	toNodes, toSegs, err := g.chainToRoot(to, tdbSec)
	if err != nil {
		return pos, vel, err
	}

	commonFrom, commonTo := -1, -1
outer:
	for i, n := range fromNodes {
		for j, m := range toNodes {
			if n == m {
				commonFrom, commonTo = i, j
				break outer
			}
		}
	}
	if commonFrom == -1 {
		return pos, vel, errkit.Newf(errkit.DisjointRoots, "bodies %d and %d share no common ancestor in the loaded graph", from, to)
	}

	posFrom, velFrom, err := sumChain(fromSegs[:commonFrom], tdbSec)
	if err != nil {
		return pos, vel, err
	}
	posTo, velTo, err := sumChain(toSegs[:commonTo], tdbSec)
	if err != nil {
		return pos, vel, err
	}

	pos = [3]float64{posFrom[0] - posTo[0], posFrom[1] - posTo[1], posFrom[2] - posTo[2]}
	vel = [3]float64{velFrom[0] - velTo[0], velFrom[1] - velTo[1], velFrom[2] - velTo[2]}
	return pos, vel, nil
}

func sumChain(segs []spk.Segment, tdbSec float64) (pos, vel [3]float64, err error) {
	for _, seg := range segs {
		p, v, err := seg.Evaluate(tdbSec)
		if err != nil {
			return pos, vel, err
		}
		pos[0] += p[0]
		pos[1] += p[1]
		pos[2] += p[2]
		vel[0] += v[0]
		vel[1] += v[1]
		vel[2] += v[2]
	}
	return pos, vel, nil
}
