package planar

// BentleyOttmann enumerates all pairwise intersections among the edges of one
// or more rings or polylines by sweeping a vertical line left to right over
// the endpoint and crossing events, testing only segments that become
// neighbors on the sweep line. Complexity is O((n+k) log n) for n segments
// and k crossings.
//
// Results are computed lazily on first access and cached. Intersections at
// declared shared endpoints of consecutive edges are not reported; collinear
// overlapping edges report both overlap boundary points.
type BentleyOttmann struct {
	pm    *PrecisionModel
	rings []Ring

	computed      bool
	intersections []Coordinate
	edges         [][2]int
	ranges        []edgeRange
	processed     int // crossing events processed, for diagnostics
}

// NewBentleyOttmann returns an engine over the edges of a single ring or
// polyline. A nil model uses the default precision model.
func NewBentleyOttmann(ring Ring, pm *PrecisionModel) *BentleyOttmann {
	return NewBentleyOttmannRings([]Ring{ring}, pm)
}

// NewBentleyOttmannRings returns an engine over the edges of multiple rings
// or polylines; nil entries are treated as absent.
func NewBentleyOttmannRings(rings []Ring, pm *PrecisionModel) *BentleyOttmann {
	if pm == nil {
		pm = defaultModel
	}
	return &BentleyOttmann{pm: pm, rings: rings}
}

// Intersections returns all intersection coordinates in sweep order, aligned
// by position with EdgeIndices.
func (bo *BentleyOttmann) Intersections() []Coordinate {
	bo.compute()
	return bo.intersections
}

// EdgeIndices returns for each intersection the pair of source edge indices
// that produced it, in canonical (min,max) order.
func (bo *BentleyOttmann) EdgeIndices() [][2]int {
	bo.compute()
	return bo.edges
}

func (bo *BentleyOttmann) compute() {
	if bo.computed {
		return
	}
	bo.computed = true

	events, ranges := buildSweepEvents(bo.rings, bo.pm)
	bo.ranges = ranges
	queue := newEventQueue(bo.pm)
	queue.events = events
	queue.Init()

	status := newSweepStatus(bo.pm, ranges)
	for 0 < queue.Len() {
		e := queue.Pop()
		switch e.typ {
		case leftEndpoint:
			seg := status.Add(e)
			if below := seg.Below(); below != nil {
				bo.checkNeighbors(queue, status, below, seg, e)
			}
			if above := seg.Above(); above != nil {
				bo.checkNeighbors(queue, status, seg, above, e)
			}
		case rightEndpoint:
			seg := status.Search(e)
			if seg == nil {
				continue
			}
			below, above := seg.Below(), seg.Above()
			status.Remove(seg)
			if below != nil && above != nil {
				bo.checkNeighbors(queue, status, below, above, e)
			}
		case crossing:
			bo.processed++
			bo.record(e)
			if e.tangent || e.closing {
				continue // touch or end of a collinear overlap, order is unchanged
			}
			lo, hi := e.below, e.above
			if lo.node == nil || hi.node == nil {
				continue // a segment ended at the crossing
			}
			if hi.Below() == lo {
				status.SwapNeighbors(lo, hi)
				if below := hi.Below(); below != nil {
					bo.checkNeighbors(queue, status, below, hi, e)
				}
				if above := lo.Above(); above != nil {
					bo.checkNeighbors(queue, status, lo, above, e)
				}
			}
			// otherwise the pair already moved past each other through
			// rescheduled crossings and was re-tested there
		}
	}
}

// checkNeighbors tests two segments that became neighbors on the sweep line
// and schedules crossing events for any intersection not yet handled.
// Consecutive edges of the same ring share a declared endpoint and are
// skipped.
func (bo *BentleyOttmann) checkNeighbors(queue *eventQueue, status *sweepStatus, lower, upper *sweepSegment, cur *sweepEvent) {
	if status.IsAdjacent(lower.edge, upper.edge) {
		return
	}
	if queue.Contains(lower, upper) {
		return
	}

	zs := intersectSegments(nil, lower.left, lower.right, upper.left, upper.right, bo.pm)
	if len(zs) == 0 {
		queue.scheduled[pairKey(lower, upper)] = true // remember the miss
		return
	}

	if len(zs) == 2 && zs[0].overlap {
		// collinear overlap: schedule its opening and closing boundary points
		queue.Push(&sweepEvent{Coordinate: zs[0].Coordinate, typ: crossing, below: lower, above: upper, tangent: true})
		queue.Push(&sweepEvent{Coordinate: zs[1].Coordinate, typ: crossing, below: lower, above: upper, tangent: true, closing: true})
		return
	}

	z := zs[0]
	ev := &sweepEvent{Coordinate: z.Coordinate, typ: crossing, below: lower, above: upper, tangent: z.tangent}
	if ev.less(cur, bo.pm) {
		return // already swept past this position
	}
	queue.Push(ev)
}

// CrossesRings returns true if any intersection joins edges from two
// different input rings.
func (bo *BentleyOttmann) CrossesRings() bool {
	bo.compute()
	for _, pair := range bo.edges {
		if bo.ringOf(pair[0]) != bo.ringOf(pair[1]) {
			return true
		}
	}
	return false
}

func (bo *BentleyOttmann) ringOf(edge int) int {
	for i, r := range bo.ranges {
		if r.first <= edge && edge <= r.last {
			return i
		}
	}
	return -1
}

func (bo *BentleyOttmann) record(e *sweepEvent) {
	i, j := e.below.edge, e.above.edge
	if j < i {
		i, j = j, i
	}
	bo.intersections = append(bo.intersections, e.Coordinate)
	bo.edges = append(bo.edges, [2]int{i, j})
}
