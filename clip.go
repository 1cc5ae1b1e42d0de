package planar

import (
	"fmt"
	"math"
	"sort"
)

// The clipping engine finds all crossings between the boundaries of two
// polygons with the Bentley-Ottmann engine, splices the crossing points into
// circular doubly linked vertex rings of both polygons, classifies every
// crossing as entry or exit by locating the midpoints of its incoming and
// outgoing edges against the other polygon, and reconstructs the result
// polygons by bounded traversals over the augmented rings, switching rings at
// every crossing. Holes are resolved afterwards by containment tests and by
// recursive clipping of holes that cross a shell.

type intersectionMode int

const (
	modeVirtual intersectionMode = iota // tangential, does not bound an overlap region
	modeEntry
	modeExit
)

func (m intersectionMode) String() string {
	if m == modeEntry {
		return "Entry"
	} else if m == modeExit {
		return "Exit"
	}
	return "Virtual"
}

// vertexNode is one coordinate on a circular doubly linked vertex ring.
type vertexNode struct {
	Coordinate
	prev, next *vertexNode
	ref        *intersectionRef // non-nil for crossing vertices
}

// vertexRing is the mutable circular doubly linked list of the coordinates of
// one boundary. The duplicate closing coordinate is not stored.
type vertexRing struct {
	first *vertexNode
	size  int
}

func newVertexRing(r Ring, pm *PrecisionModel) *vertexRing {
	vr := &vertexRing{}
	var last *vertexNode
	for i, c := range r {
		c = pm.Snap(c)
		if i == len(r)-1 && r.Closed() {
			break
		} else if last != nil && pm.EqCoord(last.Coordinate, c) {
			continue
		}
		n := &vertexNode{Coordinate: c}
		if last == nil {
			n.prev, n.next = n, n
			vr.first = n
		} else {
			n.prev, n.next = last, vr.first
			last.next = n
			vr.first.prev = n
		}
		last = n
		vr.size++
	}
	return vr
}

// nodes returns the current nodes in ring order.
func (vr *vertexRing) nodes() []*vertexNode {
	ns := make([]*vertexNode, 0, vr.size)
	n := vr.first
	for i := 0; i < vr.size; i++ {
		ns = append(ns, n)
		n = n.next
	}
	return ns
}

// insertAfter splices a new coordinate into the ring directly after n.
func (vr *vertexRing) insertAfter(n *vertexNode, c Coordinate) *vertexNode {
	m := &vertexNode{Coordinate: c, prev: n, next: n.next}
	n.next.prev = m
	n.next = m
	vr.size++
	return m
}

// intersectionRef is one crossing between the boundaries of polygon A and
// polygon B, linked into the vertex rings of both.
type intersectionRef struct {
	Coordinate
	nodeA, nodeB *vertexNode
	modeA, modeB intersectionMode // classification on A's ring and on B's ring

	// locations of the incoming and outgoing edge midpoints of each ring
	// relative to the other polygon; they drive the traversals
	inA, outA Location
	inB, outB Location

	nextA, prevA *intersectionRef // neighboring crossings along A's ring
	nextB, prevB *intersectionRef // neighboring crossings along B's ring
}

func (z *intersectionRef) String() string {
	return fmt.Sprintf("(%v A=%v B=%v)", z.Coordinate, z.modeA, z.modeB)
}

// Clipper computes the boolean clips of two polygons. The internal clips form
// the intersection of the polygons; the external clips of A form the part of
// A outside B and vice versa (together the symmetric difference). Results are
// computed lazily on first access and cached.
type Clipper struct {
	pm              *PrecisionModel
	a, b            *Polygon
	computeExternal bool

	prepared bool
	ringA    *vertexRing
	ringB    *vertexRing
	refs     []*intersectionRef
	hasEntry bool

	internalDone bool
	internal     []*Clip
	externalDone bool
	externalA    []*Clip
	externalB    []*Clip
}

// NewClipper returns a clipping engine for two polygons. Both polygons are
// validated eagerly: shells must be closed counter clockwise rings, holes
// closed clockwise rings, and no boundary may intersect or touch itself or
// another boundary of the same polygon. A nil model uses the default
// precision model.
func NewClipper(a, b *Polygon, computeExternal bool, pm *PrecisionModel) (*Clipper, error) {
	if pm == nil {
		pm = defaultModel
	}
	for i, p := range []*Polygon{a, b} {
		name := "first polygon"
		if i == 1 {
			name = "second polygon"
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("clip: %s: %w", name, err)
		}
		rings := append([]Ring{p.Shell}, p.Holes...)
		if NewShamosHoeyRings(rings, pm).Result() {
			return nil, fmt.Errorf("clip: %s: boundary is self-intersecting or self-touching", name)
		}
	}
	return newSubClipper(a, b, computeExternal, pm), nil
}

// NewClipperRings returns a clipping engine for two bare shells.
func NewClipperRings(shellA, shellB Ring, computeExternal bool, pm *PrecisionModel) (*Clipper, error) {
	return NewClipper(&Polygon{Shell: shellA}, &Polygon{Shell: shellB}, computeExternal, pm)
}

// newSubClipper skips validation, for recursive invocations on rings that are
// derived from already validated input.
func newSubClipper(a, b *Polygon, computeExternal bool, pm *PrecisionModel) *Clipper {
	return &Clipper{pm: pm, a: a, b: b, computeExternal: computeExternal}
}

// InternalClips returns the clips covering the intersection of both polygons.
func (c *Clipper) InternalClips() []*Clip {
	if !c.internalDone {
		c.internalDone = true
		c.computeInternal()
	}
	return c.internal
}

// ExternalClipsA returns the clips covering the part of the first polygon
// outside the second, or nil if external clips are disabled.
func (c *Clipper) ExternalClipsA() []*Clip {
	c.computeExternals()
	return c.externalA
}

// ExternalClipsB returns the clips covering the part of the second polygon
// outside the first, or nil if external clips are disabled.
func (c *Clipper) ExternalClipsB() []*Clip {
	c.computeExternals()
	return c.externalB
}

// SetComputeExternalClips enables or disables the external clips. Disabling
// discards already computed external results; re-enabling recomputes them on
// the next access.
func (c *Clipper) SetComputeExternalClips(enable bool) {
	if c.computeExternal == enable {
		return
	}
	c.computeExternal = enable
	if !enable {
		c.externalDone = false
		c.externalA, c.externalB = nil, nil
	}
}

// prepare builds the vertex rings of both shells, finds all boundary
// crossings, splices them into the rings, classifies them, and links the
// next-crossing chains. It runs once per Clipper.
func (c *Clipper) prepare() {
	if c.prepared {
		return
	}
	c.prepared = true

	c.ringA = newVertexRing(c.a.Shell, c.pm)
	c.ringB = newVertexRing(c.b.Shell, c.pm)
	if !c.a.Shell.Bounds().Touches(c.b.Shell.Bounds(), c.pm) {
		return // envelope-disjoint shells cannot cross
	}

	nodesA, nodesB := c.ringA.nodes(), c.ringB.nodes()
	ringA := make(Ring, 0, len(nodesA)+1)
	for _, n := range nodesA {
		ringA = append(ringA, n.Coordinate)
	}
	ringA = ringA.Close()
	ringB := make(Ring, 0, len(nodesB)+1)
	for _, n := range nodesB {
		ringB = append(ringB, n.Coordinate)
	}
	ringB = ringB.Close()

	bo := NewBentleyOttmannRings([]Ring{ringA, ringB}, c.pm)
	positions := bo.Intersections()
	pairs := bo.EdgeIndices()
	nA := len(nodesA)

	// collect the crossings, merging records at the same coordinate
	var insA, insB []ringInsertion
	for i, pos := range positions {
		lo, hi := pairs[i][0], pairs[i][1]
		if nA <= lo || hi < nA {
			continue // not a crossing between the two shells
		}
		ref := c.findRef(pos)
		if ref == nil {
			ref = &intersectionRef{Coordinate: pos}
			c.refs = append(c.refs, ref)
		}
		insA = append(insA, c.insertion(nodesA, lo, pos, ref))
		insB = append(insB, c.insertion(nodesB, hi-nA, pos, ref))
	}
	c.splice(c.ringA, nodesA, insA, true)
	c.splice(c.ringB, nodesB, insB, false)

	// drop refs that did not make it onto both rings
	refs := c.refs[:0]
	for _, ref := range c.refs {
		if ref.nodeA == nil || ref.nodeB == nil {
			if ref.nodeA != nil {
				ref.nodeA.ref = nil
			}
			if ref.nodeB != nil {
				ref.nodeB.ref = nil
			}
			continue
		}
		refs = append(refs, ref)
	}
	c.refs = refs

	// classify each crossing on both rings, against the full other polygon
	for _, ref := range c.refs {
		ref.inA, ref.outA, ref.modeA = c.classify(ref.nodeA, c.b)
		ref.inB, ref.outB, ref.modeB = c.classify(ref.nodeB, c.a)
	}

	// tangential crossings do not bound an overlap region
	refs = c.refs[:0]
	for _, ref := range c.refs {
		if ref.modeA == modeVirtual || ref.modeB == modeVirtual {
			ref.nodeA.ref = nil
			ref.nodeB.ref = nil
			continue
		}
		refs = append(refs, ref)
	}
	c.refs = refs

	for _, ref := range c.refs {
		if ref.modeA == modeEntry || ref.modeB == modeEntry {
			c.hasEntry = true
			break
		}
	}
	if !c.hasEntry {
		// only tangential or unpaired crossings: treat as no intersection
		for _, ref := range c.refs {
			ref.nodeA.ref = nil
			ref.nodeB.ref = nil
		}
		c.refs = nil
		return
	}

	c.link()
}

func (c *Clipper) findRef(pos Coordinate) *intersectionRef {
	for _, ref := range c.refs {
		if c.pm.EqCoord(ref.Coordinate, pos) {
			return ref
		}
	}
	return nil
}

// ringInsertion is a pending splice of a crossing into one vertex ring,
// positioned on an edge by the distance from the edge's start.
type ringInsertion struct {
	edge int
	t    float64
	ref  *intersectionRef
}

func (c *Clipper) insertion(nodes []*vertexNode, edge int, pos Coordinate, ref *intersectionRef) ringInsertion {
	start := nodes[edge].Coordinate
	end := nodes[(edge+1)%len(nodes)].Coordinate
	d := end.Sub(start)
	t := pos.Sub(start).Dot(d) / d.Dot(d)
	return ringInsertion{edge: edge, t: t, ref: ref}
}

// splice inserts the crossings into the vertex ring at their position along
// each edge; crossings at already present coordinates reuse the existing
// node.
func (c *Clipper) splice(vr *vertexRing, nodes []*vertexNode, ins []ringInsertion, onA bool) {
	sort.SliceStable(ins, func(i, j int) bool {
		if ins[i].edge != ins[j].edge {
			return ins[i].edge < ins[j].edge
		}
		return ins[i].t < ins[j].t
	})

	m := len(nodes)
	for i := 0; i < len(ins); {
		edge := ins[i].edge
		last := nodes[edge]
		end := nodes[(edge+1)%m]
		for ; i < len(ins) && ins[i].edge == edge; i++ {
			ref := ins[i].ref
			pos := ref.Coordinate
			var n *vertexNode
			if c.pm.EqCoord(pos, last.Coordinate) {
				n = last
			} else if c.pm.EqCoord(pos, end.Coordinate) {
				n = end
			} else {
				n = vr.insertAfter(last, pos)
			}
			n.ref = ref
			if onA {
				if ref.nodeA == nil {
					ref.nodeA = n
				}
			} else if ref.nodeB == nil {
				ref.nodeB = n
			}
			last = n
		}
	}
}

// classify determines whether the boundary enters or exits the other polygon
// at the crossing by locating the midpoints of the incoming and outgoing
// edges.
func (c *Clipper) classify(n *vertexNode, other *Polygon) (in, out Location, mode intersectionMode) {
	in = other.Locate(n.prev.Coordinate.Interpolate(n.Coordinate, 0.5), c.pm)
	out = other.Locate(n.Coordinate.Interpolate(n.next.Coordinate, 0.5), c.pm)
	if in == out {
		return in, out, modeVirtual // tangential: interior-interior or exterior-exterior
	} else if in != Interior && out != Exterior {
		return in, out, modeEntry
	} else if in != Exterior && out != Interior {
		return in, out, modeExit
	}
	return in, out, modeVirtual
}

// link builds per ring the circular chain of crossings in boundary order so
// that traversal does not re-scan the rings.
func (c *Clipper) link() {
	chain := func(nodes []*vertexNode, onA bool) {
		var first, last *intersectionRef
		for _, n := range nodes {
			if n.ref == nil {
				continue
			}
			ref := n.ref
			if first == nil {
				first = ref
			} else if onA {
				last.nextA, ref.prevA = ref, last
			} else {
				last.nextB, ref.prevB = ref, last
			}
			last = ref
		}
		if first != nil {
			if onA {
				last.nextA, first.prevA = first, last
			} else {
				last.nextB, first.prevB = first, last
			}
		}
	}
	chain(c.ringA.nodes(), true)
	chain(c.ringB.nodes(), false)
}

// walk emits the coordinates from the crossing to the next one along the
// given ring and direction, excluding the reached crossing's coordinate, and
// returns the reached crossing.
func (ref *intersectionRef) walk(onA, forward bool, emit func(Coordinate)) *intersectionRef {
	var n *vertexNode
	var stop *intersectionRef
	if onA {
		n = ref.nodeA
		if forward {
			stop = ref.nextA
		} else {
			stop = ref.prevA
		}
	} else {
		n = ref.nodeB
		if forward {
			stop = ref.nextB
		} else {
			stop = ref.prevB
		}
	}
	var stopNode *vertexNode
	if onA {
		stopNode = stop.nodeA
	} else {
		stopNode = stop.nodeB
	}
	for n != stopNode {
		emit(n.Coordinate)
		if forward {
			n = n.next
		} else {
			n = n.prev
		}
	}
	return stop
}

// stepRule decides along which ring and direction a traversal continues at a
// crossing. The strict rule requires the next walked edge to head into the
// traced region; the loose rule additionally accepts edges running along the
// other polygon's boundary, which happens when boundaries overlap. Seeds must
// satisfy the strict rule so that walks never start on a shared boundary run.
type stepRule func(*intersectionRef) (onA, forward, ok bool)

// internal clips follow whichever boundary heads into the other polygon
func internalStep(strict bool) stepRule {
	return func(z *intersectionRef) (bool, bool, bool) {
		if z.outB == Interior || !strict && z.outB == Boundary {
			return false, true, true
		} else if z.outA == Interior || !strict && z.outA == Boundary {
			return true, true, true
		}
		return false, false, false
	}
}

// external clips of A follow A where it leaves B, and B reversed where B runs
// through A's interior
func externalStepA(strict bool) stepRule {
	return func(z *intersectionRef) (bool, bool, bool) {
		if z.outA == Exterior || !strict && z.outA == Boundary {
			return true, true, true
		} else if z.inB == Interior || !strict && z.inB == Boundary {
			return false, false, true
		}
		return false, false, false
	}
}

func externalStepB(strict bool) stepRule {
	return func(z *intersectionRef) (bool, bool, bool) {
		if z.outB == Exterior || !strict && z.outB == Boundary {
			return false, true, true
		} else if z.inA == Interior || !strict && z.inA == Boundary {
			return true, false, true
		}
		return false, false, false
	}
}

// traceLoops reconstructs result shells: from every crossing that seeds the
// strict rule it walks along the chosen ring to the next crossing and
// repeats until the walk returns to the seed. Walks revisiting an already
// emitted coordinate are split into a closed inner loop and the remaining
// open chain; walks reaching an already consumed crossing are discarded.
func (c *Clipper) traceLoops(strict, loose stepRule) []Ring {
	var loops []Ring
	visited := map[*intersectionRef]bool{}
	for _, start := range c.refs {
		if visited[start] {
			continue
		} else if _, _, ok := strict(start); !ok {
			continue
		}

		var r Ring
		emit := func(pos Coordinate) {
			for i := range r {
				if c.pm.EqCoord(r[i], pos) {
					// self-touching walk: split off the closed inner loop
					loop := append(Ring{}, r[i:]...)
					loops = append(loops, loop.Close())
					r = append(r[:i], pos)
					return
				}
			}
			r = append(r, pos)
		}

		cur := start
		closed := false
		for guard := 4*len(c.refs) + 8; 0 < guard; guard-- {
			visited[cur] = true
			onA, forward, ok := strict(cur)
			if !ok {
				onA, forward, ok = loose(cur)
			}
			if !ok {
				break // dead end, discard the open chain
			}
			cur = cur.walk(onA, forward, emit)
			if cur == start {
				closed = true
				break
			}
			if visited[cur] {
				break // joined an already traced loop, discard
			}
		}
		if closed && 3 <= len(r) {
			loops = append(loops, r.Close())
		}
	}
	return loops
}

// finishClips turns traced loops into counter clockwise canonical clips,
// dropping degenerate loops.
func (c *Clipper) finishClips(loops []Ring) []*Clip {
	var clips []*Clip
	for _, r := range loops {
		if r.Distinct() < 3 {
			continue
		}
		if !r.IsCCW() {
			r = r.Reverse()
		}
		clips = append(clips, &Clip{Shell: canonicalRing(r, c.pm)})
	}
	return clips
}

// canonicalRing rotates a closed ring to start at its lexicographically
// smallest coordinate, for deterministic output. A nil model uses the default
// precision model.
func canonicalRing(r Ring, pm *PrecisionModel) Ring {
	if pm == nil {
		pm = defaultModel
	}
	if !r.Closed() {
		return r
	}
	n := len(r) - 1
	min := 0
	for i := 1; i < n; i++ {
		if r[i].lexLess(r[min], pm) {
			min = i
		}
	}
	q := make(Ring, 0, n+1)
	for i := 0; i < n; i++ {
		q = append(q, r[(min+i)%n])
	}
	return q.Close()
}

func (c *Clipper) computeInternal() {
	c.prepare()
	if !c.hasEntry {
		c.internal = c.containmentInternal()
	} else {
		c.internal = c.finishClips(c.traceLoops(internalStep(true), internalStep(false)))
	}
	c.internal = c.subtractHoles(c.internal, c.a.Holes)
	c.internal = c.subtractHoles(c.internal, c.b.Holes)
}

func (c *Clipper) computeExternals() {
	if !c.computeExternal || c.externalDone {
		return
	}
	c.externalDone = true
	c.prepare()

	if !c.hasEntry {
		c.externalA, c.externalB = c.containmentExternal()
	} else {
		c.externalA = c.finishClips(c.traceLoops(externalStepA(true), externalStepA(false)))
		c.externalB = c.finishClips(c.traceLoops(externalStepB(true), externalStepB(false)))
	}

	// a polygon's own holes are cut out of its external clips; the other
	// polygon's holes free up area that is promoted to new external regions
	c.externalA = c.subtractHoles(c.externalA, c.a.Holes)
	for _, hole := range c.b.Holes {
		c.externalA = append(c.externalA, c.promote(hole, c.a)...)
	}
	c.externalB = c.subtractHoles(c.externalB, c.b.Holes)
	for _, hole := range c.a.Holes {
		c.externalB = append(c.externalB, c.promote(hole, c.b)...)
	}
}

// containedIn returns true if no coordinate of the ring lies in the exterior
// of the other ring.
func (c *Clipper) containedIn(r, other Ring) bool {
	for _, pos := range r {
		if other.Locate(pos, c.pm) == Exterior {
			return false
		}
	}
	return true
}

// containmentInternal handles the no-crossing configurations: nested, equal,
// or disjoint shells.
func (c *Clipper) containmentInternal() []*Clip {
	aInB := c.containedIn(c.a.Shell, c.b.Shell)
	bInA := c.containedIn(c.b.Shell, c.a.Shell)
	if aInB {
		// covers A inside B and A equal to B
		return []*Clip{{Shell: canonicalRing(c.a.Shell, c.pm)}}
	} else if bInA {
		return []*Clip{{Shell: canonicalRing(c.b.Shell, c.pm)}}
	}
	return nil // disjoint
}

func (c *Clipper) containmentExternal() ([]*Clip, []*Clip) {
	aInB := c.containedIn(c.a.Shell, c.b.Shell)
	bInA := c.containedIn(c.b.Shell, c.a.Shell)
	if aInB && bInA {
		return nil, nil // equal
	} else if aInB {
		// B keeps its area outside A: B with A as a hole
		return nil, []*Clip{{
			Shell: canonicalRing(c.b.Shell, c.pm),
			Holes: []Ring{canonicalRing(c.a.Shell.Reverse(), c.pm)},
		}}
	} else if bInA {
		return []*Clip{{
			Shell: canonicalRing(c.a.Shell, c.pm),
			Holes: []Ring{canonicalRing(c.b.Shell.Reverse(), c.pm)},
		}}, nil
	}
	return []*Clip{{Shell: canonicalRing(c.a.Shell, c.pm)}},
		[]*Clip{{Shell: canonicalRing(c.b.Shell, c.pm)}}
}

// subtractHoles removes the hole regions from the clips: the part of each
// hole inside a clip shell becomes a hole of that clip, merged with existing
// overlapping holes, and clips swallowed whole by a hole are dropped. Pockets
// enclosed between two merged holes lie in neither hole and stay filled; they
// are emitted as separate clips.
func (c *Clipper) subtractHoles(clips []*Clip, holes []Ring) []*Clip {
	var out []*Clip
	for _, clip := range clips {
		kept := true
		var pockets []Ring
		for _, hole := range holes {
			shell := hole.Reverse() // to counter clockwise
			if !shell.Bounds().Touches(clip.Shell.Bounds(), c.pm) {
				continue
			}
			var pieces []Ring
			if NewBentleyOttmannRings([]Ring{shell, clip.Shell}, c.pm).CrossesRings() {
				sub := newSubClipper(&Polygon{Shell: shell}, &Polygon{Shell: clip.Shell}, false, c.pm)
				for _, piece := range sub.InternalClips() {
					pieces = append(pieces, piece.Shell)
				}
			} else if c.containedIn(shell, clip.Shell) {
				pieces = []Ring{canonicalRing(shell, c.pm)}
			} else if c.containedIn(clip.Shell, shell) {
				kept = false // the clip lies entirely inside the hole
				break
			}
			for _, piece := range pieces {
				var ps []Ring
				clip.Holes, ps = c.addHole(clip.Holes, piece)
				pockets = append(pockets, ps...)
			}
		}
		if kept {
			out = append(out, clip)
			for _, pocket := range pockets {
				out = append(out, &Clip{Shell: pocket})
			}
		}
	}
	return out
}

// addHole merges a counter clockwise hole region into the hole set, unioning
// it with the existing holes it overlaps so that no area is subtracted twice.
// It returns the updated hole set and the pockets enclosed by the unions.
func (c *Clipper) addHole(holes []Ring, shell Ring) ([]Ring, []Ring) {
	for _, hole := range holes {
		if c.containedIn(shell, hole) {
			return holes, nil // already subtracted
		}
	}

	merged := shell
	var pockets []Ring
	for i := 0; i < len(holes); i++ {
		e := holes[i].Reverse()
		if !e.Bounds().Touches(merged.Bounds(), c.pm) {
			continue
		}
		if NewBentleyOttmannRings([]Ring{merged, e}, c.pm).CrossesRings() {
			if union, ps, ok := c.unionShells(merged, e); ok {
				merged = union
				pockets = append(pockets, ps...)
				holes = append(holes[:i], holes[i+1:]...)
				i = -1 // the union may now overlap holes already passed
			}
		} else if c.containedIn(e, merged) {
			holes = append(holes[:i], holes[i+1:]...)
			i--
		}
	}
	return append(holes, canonicalRing(merged.Reverse(), c.pm)), pockets
}

// unionShells returns the outer boundary of the union of two counter
// clockwise shells with overlapping interiors, plus the boundaries of the
// pockets enclosed between them. Shells that only touch along their
// boundaries report false and stay separate.
func (c *Clipper) unionShells(u, v Ring) (Ring, []Ring, bool) {
	sub := newSubClipper(&Polygon{Shell: u}, &Polygon{Shell: v}, false, c.pm)
	sub.prepare()
	loops := sub.traceLoops(unionStep(true), unionStep(false))

	outer := -1
	outerArea := 0.0
	for i, r := range loops {
		if a := math.Abs(r.Area()); outerArea < a {
			outer, outerArea = i, a
		}
	}
	if outer < 0 {
		// no traceable crossings: nested shells or disjoint interiors
		if c.containedIn(u, v) {
			return v, nil, true
		} else if c.containedIn(v, u) {
			return u, nil, true
		}
		return nil, nil, false
	}

	var pockets []Ring
	for i, r := range loops {
		if i == outer || r.Distinct() < 3 {
			continue
		}
		if !r.IsCCW() {
			r = r.Reverse()
		}
		pockets = append(pockets, canonicalRing(r, c.pm))
	}

	r := loops[outer]
	if !r.IsCCW() {
		r = r.Reverse()
	}
	return canonicalRing(r, c.pm), pockets, true
}

// the union boundary follows whichever shell runs outside the other
func unionStep(strict bool) stepRule {
	return func(z *intersectionRef) (bool, bool, bool) {
		if z.outA == Exterior || !strict && z.outA == Boundary {
			return true, true, true
		} else if z.outB == Exterior || !strict && z.outB == Boundary {
			return false, true, true
		}
		return false, false, false
	}
}

// promote returns the parts of the other polygon's hole that lie inside the
// base polygon; they are free of the other polygon and become external clips
// of the base.
func (c *Clipper) promote(hole Ring, base *Polygon) []*Clip {
	shell := hole.Reverse()
	if !shell.Bounds().Touches(base.Shell.Bounds(), c.pm) {
		return nil
	}
	sub := newSubClipper(&Polygon{Shell: shell}, base, false, c.pm)
	return sub.InternalClips()
}
