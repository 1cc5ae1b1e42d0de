package planar

import (
	"fmt"
	"sort"
	"sync"
)

type sweepEventType int

const (
	// right-endpoints are processed before left-endpoints at the same
	// position so that segments ending in a point are removed before new
	// segments starting there are inserted; crossings come last so both
	// segments are live when their order is swapped
	rightEndpoint sweepEventType = iota
	leftEndpoint
	crossing
)

func (t sweepEventType) String() string {
	if t == rightEndpoint {
		return "Right"
	} else if t == leftEndpoint {
		return "Left"
	}
	return "Intersection"
}

// sweepEvent is a position at which the set of segments crossing the sweep
// line changes (segment endpoints) or at which a crossing between two
// neighboring segments was discovered.
type sweepEvent struct {
	Coordinate
	typ sweepEventType

	seg *sweepSegment // endpoint events

	below, above *sweepSegment // crossing events, in pre-crossing order
	tangent      bool          // segments touch without crossing, order is unchanged
	closing      bool          // crossing finalizes a collinear overlap
}

// less orders events by sweep position: x ascending, y as tiebreak, and a
// stable type rank for coincident events.
func (e *sweepEvent) less(o *sweepEvent, pm *PrecisionModel) bool {
	if !pm.Eq(e.X, o.X) {
		return e.X < o.X
	} else if !pm.Eq(e.Y, o.Y) {
		return e.Y < o.Y
	}
	return e.typ < o.typ
}

func (e *sweepEvent) String() string {
	if e.typ == crossing {
		return fmt.Sprintf("%v(%v×%v at %v)", e.typ, e.below, e.above, e.Coordinate)
	}
	return fmt.Sprintf("%v(%v at %v)", e.typ, e.seg, e.Coordinate)
}

// sweepSegment is one edge of an input ring while it crosses the sweep line.
type sweepSegment struct {
	left, right Coordinate // left is the lexicographically smaller endpoint
	edge        int        // edge index, unique across all input rings
	vertical    bool

	node *statusNode // non-nil while live in the status structure
}

func newSweepSegment(start, end Coordinate, edge int, pm *PrecisionModel) *sweepSegment {
	s := &sweepSegment{left: start, right: end, edge: edge}
	if end.lexLess(start, pm) {
		s.left, s.right = end, start
	}
	s.vertical = pm.Eq(s.left.X, s.right.X)
	return s
}

// yAt returns the segment's y-position at sweep position x.
func (s *sweepSegment) yAt(x float64) float64 {
	if s.vertical {
		return s.left.Y
	}
	t := (x - s.left.X) / (s.right.X - s.left.X)
	return s.left.Interpolate(s.right, t).Y
}

// Above returns the segment directly above this one in the status structure,
// valid only while the segment is live.
func (s *sweepSegment) Above() *sweepSegment {
	if s.node == nil {
		return nil
	}
	if n := s.node.Next(); n != nil {
		return n.seg
	}
	return nil
}

// Below returns the segment directly below this one in the status structure,
// valid only while the segment is live.
func (s *sweepSegment) Below() *sweepSegment {
	if s.node == nil {
		return nil
	}
	if n := s.node.Prev(); n != nil {
		return n.seg
	}
	return nil
}

func (s *sweepSegment) String() string {
	return fmt.Sprintf("%d(%v−%v)", s.edge, s.left, s.right)
}

// eventQueue is a heap priority queue of sweep events with duplicate
// detection for crossing events per segment pair.
type eventQueue struct {
	pm        *PrecisionModel
	events    []*sweepEvent
	scheduled map[[2]int]bool // edge pairs with a scheduled crossing
}

func newEventQueue(pm *PrecisionModel) *eventQueue {
	return &eventQueue{pm: pm, scheduled: map[[2]int]bool{}}
}

func pairKey(a, b *sweepSegment) [2]int {
	if b.edge < a.edge {
		return [2]int{b.edge, a.edge}
	}
	return [2]int{a.edge, b.edge}
}

// Contains returns true if a crossing event for the segment pair was already
// scheduled.
func (q *eventQueue) Contains(a, b *sweepSegment) bool {
	return q.scheduled[pairKey(a, b)]
}

func (q *eventQueue) Len() int {
	return len(q.events)
}

func (q *eventQueue) Push(e *sweepEvent) {
	if e.typ == crossing {
		q.scheduled[pairKey(e.below, e.above)] = true
	}
	q.events = append(q.events, e)
	q.up(len(q.events) - 1)
}

// Pop removes and returns the next event in sweep order.
func (q *eventQueue) Pop() *sweepEvent {
	n := len(q.events) - 1
	q.swap(0, n)
	q.down(0, n)

	e := q.events[n]
	q.events = q.events[:n]
	return e
}

// Init establishes the heap invariant over events pushed out of order.
func (q *eventQueue) Init() {
	n := len(q.events)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *eventQueue) swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// from container/heap
func (q *eventQueue) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.events[j].less(q.events[i], q.pm) {
			break
		}
		q.swap(i, j)
		j = i
	}
}

func (q *eventQueue) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.events[j2].less(q.events[j1], q.pm) {
			j = j2 // right child
		}
		if !q.events[j].less(q.events[i], q.pm) {
			break
		}
		q.swap(i, j)
		i = j
	}
}

// presortedEventQueue is a non-growing event queue sorted once up front, used
// by the Shamos–Hoey engine which never discovers new events.
type presortedEventQueue struct {
	events []*sweepEvent
	next   int
}

func newPresortedEventQueue(events []*sweepEvent, pm *PrecisionModel) *presortedEventQueue {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].less(events[j], pm)
	})
	return &presortedEventQueue{events: events}
}

// Pop returns the next event in sweep order, or nil when drained.
func (q *presortedEventQueue) Pop() *sweepEvent {
	if len(q.events) <= q.next {
		return nil
	}
	e := q.events[q.next]
	q.next++
	return e
}

// edgeRange is the contiguous range of edge indices of one input ring.
type edgeRange struct {
	first, last int
	closed      bool
}

// buildSweepEvents creates segments and endpoint events for the edges of the
// given rings. Nil rings are treated as absent. Zero-length edges yield no
// segment. It returns the events and the edge index range per ring.
func buildSweepEvents(rings []Ring, pm *PrecisionModel) ([]*sweepEvent, []edgeRange) {
	var events []*sweepEvent
	var ranges []edgeRange
	edge := 0
	for _, r := range rings {
		if r == nil || len(r) < 2 {
			continue
		}
		first := edge
		for i := 1; i < len(r); i++ {
			start, end := pm.Snap(r[i-1]), pm.Snap(r[i])
			if pm.EqCoord(start, end) {
				continue
			}
			seg := newSweepSegment(start, end, edge, pm)
			edge++
			events = append(events,
				&sweepEvent{Coordinate: seg.left, typ: leftEndpoint, seg: seg},
				&sweepEvent{Coordinate: seg.right, typ: rightEndpoint, seg: seg})
		}
		if first < edge {
			ranges = append(ranges, edgeRange{first, edge - 1, r.Closed()})
		}
	}
	return events, ranges
}

type statusNode struct {
	parent, left, right *statusNode
	height              int

	seg *sweepSegment
}

func (n *statusNode) Prev() *statusNode {
	// go left
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right // find the right-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.left == n {
		n = n.parent // find first parent for which we're right
	}
	return n.parent // can be nil
}

func (n *statusNode) Next() *statusNode {
	// go right
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left // find the left-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent // find first parent for which we're left
	}
	return n.parent // can be nil
}

func (n *statusNode) balance() int {
	r := 0
	if n.left != nil {
		r -= n.left.height
	}
	if n.right != nil {
		r += n.right.height
	}
	return r
}

func (n *statusNode) updateHeight() {
	n.height = 0
	if n.left != nil {
		n.height = n.left.height
	}
	if n.right != nil && n.height < n.right.height {
		n.height = n.right.height
	}
	n.height++
}

func (n *statusNode) swapChild(a, b *statusNode) {
	if n.right == a {
		n.right = b
	} else {
		n.left = b
	}
	if b != nil {
		b.parent = n
	}
}

func (a *statusNode) rotateLeft() *statusNode {
	b := a.right
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.right = b.left; a.right != nil {
		a.right.parent = a
	}
	b.left = a
	return b
}

func (a *statusNode) rotateRight() *statusNode {
	b := a.left
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.left = b.right; a.left != nil {
		a.left.parent = a
	}
	b.right = a
	return b
}

// sweepStatus is the ordered sequence of segments currently crossing the
// sweep line, ordered by their y-position at the current sweep x. It is an
// AVL tree with neighbor queries via in-order traversal.
type sweepStatus struct {
	pm    *PrecisionModel
	root  *statusNode
	pool  *sync.Pool
	rings []edgeRange
}

func newSweepStatus(pm *PrecisionModel, rings []edgeRange) *sweepStatus {
	return &sweepStatus{
		pm:    pm,
		pool:  &sync.Pool{New: func() any { return &statusNode{} }},
		rings: rings,
	}
}

// IsAdjacent returns true if edges i and j are consecutive in the same source
// ring, i.e. they share a declared endpoint.
func (s *sweepStatus) IsAdjacent(i, j int) bool {
	if i == j {
		return true
	}
	for _, r := range s.rings {
		if r.first <= i && i <= r.last {
			if j < r.first || r.last < j {
				return false
			}
			if i-j == 1 || j-i == 1 {
				return true
			}
			return r.closed && (i == r.first && j == r.last || j == r.first && i == r.last)
		}
	}
	return false
}

// compareOverlaps orders collinear overlapping segments by edge index so the
// status structure keeps a total order.
func compareOverlaps(a, b *sweepSegment) int {
	if a.edge < b.edge {
		return -1
	}
	return 1
}

// compareTangents orders segments a and b that coincide at a's left endpoint
// by their slope, evaluated just before the earlier of their right endpoints.
func (s *sweepStatus) compareTangents(a, b *sweepSegment) int {
	if a.vertical {
		if b.vertical {
			return compareOverlaps(a, b)
		}
		return 1 // vertical segments sort above at their lower endpoint
	} else if b.vertical {
		return -1
	}

	if a.right.X < b.right.X {
		by := b.yAt(a.right.X)
		if s.pm.Eq(a.right.Y, by) {
			return compareOverlaps(a, b)
		} else if a.right.Y < by {
			return -1
		}
		return 1
	}
	ay := a.yAt(b.right.X)
	if s.pm.Eq(ay, b.right.Y) {
		return compareOverlaps(a, b)
	} else if ay < b.right.Y {
		return -1
	}
	return 1
}

// compareAt orders a against b at a's left endpoint, with b's left endpoint
// at or before a's.
func (s *sweepStatus) compareAt(a, b *sweepSegment) int {
	by := b.yAt(a.left.X)
	if s.pm.Eq(a.left.Y, by) {
		return s.compareTangents(a, b)
	} else if a.left.Y < by {
		return -1
	}
	return 1
}

// compare orders segment a, inserted at the current sweep position (its left
// endpoint), against live segment b.
func (s *sweepStatus) compare(a, b *sweepSegment) int {
	if s.pm.Eq(a.left.X, b.left.X) {
		if s.pm.Eq(a.left.Y, b.left.Y) {
			return s.compareTangents(a, b)
		} else if a.left.Y < b.left.Y {
			return -1
		}
		return 1
	} else if a.left.X < b.left.X {
		return -s.compareAt(b, a)
	}
	return s.compareAt(a, b)
}

func (s *sweepStatus) newNode(seg *sweepSegment) *statusNode {
	n := s.pool.Get().(*statusNode)
	n.parent = nil
	n.left = nil
	n.right = nil
	n.height = 1
	n.seg = seg
	n.seg.node = n
	return n
}

func (s *sweepStatus) returnNode(n *statusNode) {
	n.seg.node = nil
	n.seg = nil // help the GC
	s.pool.Put(n)
}

func (s *sweepStatus) find(seg *sweepSegment) (*statusNode, int) {
	n := s.root
	for n != nil {
		cmp := s.compare(seg, n.seg)
		if cmp < 0 {
			if n.left == nil {
				return n, -1
			}
			n = n.left
		} else if 0 < cmp {
			if n.right == nil {
				return n, 1
			}
			n = n.right
		} else {
			break
		}
	}
	return n, 0
}

func (s *sweepStatus) rebalance(n *statusNode) {
	for {
		oheight := n.height
		if balance := n.balance(); balance == 2 {
			// excessively right-heavy, rotate to the left
			if n.right != nil && n.right.balance() < 0 {
				n.right = n.right.rotateRight()
				n.right.right.updateHeight()
			}
			n = n.rotateLeft()
			n.left.updateHeight()
		} else if balance == -2 {
			// excessively left-heavy, rotate to the right
			if n.left != nil && n.left.balance() > 0 {
				n.left = n.left.rotateLeft()
				n.left.left.updateHeight()
			}
			n = n.rotateRight()
			n.right.updateHeight()
		} else if balance < -2 || 2 < balance {
			panic("tree too far out of shape")
		}

		n.updateHeight()
		if n.parent == nil {
			s.root = n
			return
		}
		if oheight == n.height {
			return
		}
		n = n.parent
	}
}

// Add inserts the segment of the left-endpoint event into the status
// structure and returns it; its Above and Below neighbors are available
// immediately after.
func (s *sweepStatus) Add(e *sweepEvent) *sweepSegment {
	seg := e.seg
	if s.root == nil {
		s.root = s.newNode(seg)
		return seg
	}

	n, cmp := s.find(seg)
	if cmp == 0 {
		// total order makes this unreachable for distinct segments
		return n.seg
	}

	var rebalance bool
	if cmp < 0 {
		n.left = s.newNode(seg)
		n.left.parent = n
		rebalance = n.right == nil
		n = n.left
	} else {
		n.right = s.newNode(seg)
		n.right.parent = n
		rebalance = n.left == nil
		n = n.right
	}
	if rebalance {
		n.height++
		if n.parent != nil {
			s.rebalance(n.parent)
		}
	}
	return seg
}

// Search returns the live segment belonging to the endpoint event, or nil if
// the segment is not in the status structure.
func (s *sweepStatus) Search(e *sweepEvent) *sweepSegment {
	if e.seg != nil && e.seg.node != nil {
		return e.seg
	}
	return nil
}

// Remove takes the segment out of the status structure.
func (s *sweepStatus) Remove(seg *sweepSegment) {
	n := seg.node
	if n == nil {
		return
	}
	var o *statusNode
	for {
		if n.height == 1 {
			o = n.parent
			if o != nil {
				o.swapChild(n, nil)
				s.rebalance(o)
			} else {
				s.root = nil
			}
			s.returnNode(n)
			return
		} else if n.right != nil {
			o = n.right
			for o.left != nil {
				o = o.left
			}
		} else {
			o = n.left
			for o.right != nil {
				o = o.right
			}
		}
		n.seg, o.seg = o.seg, n.seg
		n.seg.node, o.seg.node = n, o
		n = o
	}
}

// SwapNeighbors exchanges the positions of two adjacent segments, used when
// the sweep line passes their crossing.
func (s *sweepStatus) SwapNeighbors(a, b *sweepSegment) {
	na, nb := a.node, b.node
	na.seg, nb.seg = nb.seg, na.seg
	a.node, b.node = nb, na
}
