package planar

// ShamosHoey answers whether any two edges of the input rings or polylines
// intersect. It runs the same sweep as BentleyOttmann but, since no crossing
// events are ever scheduled, the event queue is presorted once and never
// grows, and the sweep exits at the first confirmed intersection between
// non-adjacent edges.
type ShamosHoey struct {
	pm    *PrecisionModel
	rings []Ring

	computed bool
	result   bool
}

// NewShamosHoey returns an engine over the edges of a single ring or
// polyline. A nil model uses the default precision model.
func NewShamosHoey(ring Ring, pm *PrecisionModel) *ShamosHoey {
	return NewShamosHoeyRings([]Ring{ring}, pm)
}

// NewShamosHoeyRings returns an engine over the edges of multiple rings or
// polylines; nil entries are treated as absent.
func NewShamosHoeyRings(rings []Ring, pm *PrecisionModel) *ShamosHoey {
	if pm == nil {
		pm = defaultModel
	}
	return &ShamosHoey{pm: pm, rings: rings}
}

// Result returns true if at least one intersection exists. It is computed on
// first access and cached.
func (sh *ShamosHoey) Result() bool {
	if !sh.computed {
		sh.computed = true
		sh.result = sh.compute()
	}
	return sh.result
}

func (sh *ShamosHoey) compute() bool {
	events, ranges := buildSweepEvents(sh.rings, sh.pm)
	queue := newPresortedEventQueue(events, sh.pm)
	status := newSweepStatus(sh.pm, ranges)
	for e := queue.Pop(); e != nil; e = queue.Pop() {
		if e.typ == leftEndpoint {
			seg := status.Add(e)
			if below := seg.Below(); below != nil && sh.intersects(status, below, seg) {
				return true
			}
			if above := seg.Above(); above != nil && sh.intersects(status, seg, above) {
				return true
			}
		} else {
			seg := status.Search(e)
			if seg == nil {
				continue
			}
			below, above := seg.Below(), seg.Above()
			status.Remove(seg)
			if below != nil && above != nil && sh.intersects(status, below, above) {
				return true
			}
		}
	}
	return false
}

func (sh *ShamosHoey) intersects(status *sweepStatus, lower, upper *sweepSegment) bool {
	zs := intersectSegments(nil, lower.left, lower.right, upper.left, upper.right, sh.pm)
	if status.IsAdjacent(lower.edge, upper.edge) {
		// consecutive edges share a declared endpoint; only a collinear
		// overlap of nonzero length counts as an intersection
		return len(zs) == 2 && zs[0].overlap
	}
	return 0 < len(zs)
}
