package planar

import (
	"fmt"
	"math"
)

// Location is the position of a coordinate relative to a ring or polygon.
type Location int

const (
	Exterior Location = iota
	Boundary
	Interior
)

func (l Location) String() string {
	if l == Interior {
		return "Interior"
	} else if l == Boundary {
		return "Boundary"
	}
	return "Exterior"
}

// Ring is an ordered list of coordinates describing one boundary, either a
// polyline or, when the last coordinate equals the first, a closed ring.
type Ring []Coordinate

// RingFromPoints builds a ring from (x,y) pairs.
func RingFromPoints(xy ...float64) Ring {
	if len(xy)%2 != 0 {
		panic("odd number of ring ordinates")
	}
	r := make(Ring, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		r = append(r, Coord(xy[i], xy[i+1]))
	}
	return r
}

// Closed returns true if the last coordinate coincides with the first.
func (r Ring) Closed() bool {
	return 1 < len(r) && r[0].Equals(r[len(r)-1])
}

// Close appends the first coordinate if the ring is not yet closed.
func (r Ring) Close() Ring {
	if 0 < len(r) && !r.Closed() {
		return append(r, r[0])
	}
	return r
}

// Distinct returns the number of distinct coordinates.
func (r Ring) Distinct() int {
	n := 0
	for i, c := range r {
		unique := true
		for j := 0; j < i; j++ {
			if c.Equals(r[j]) {
				unique = false
				break
			}
		}
		if unique {
			n++
		}
	}
	return n
}

// Reverse returns the ring in reverse coordinate order.
func (r Ring) Reverse() Ring {
	q := make(Ring, len(r))
	for i, c := range r {
		q[len(r)-1-i] = c
	}
	return q
}

// Bounds returns the bounding rectangle of the ring.
func (r Ring) Bounds() Rect {
	if len(r) == 0 {
		return Rect{}
	}
	rect := Rect{r[0].X, r[0].Y, r[0].X, r[0].Y}
	for _, c := range r[1:] {
		rect = rect.Expand(c)
	}
	return rect
}

// Area returns the signed area of the ring, positive for counter clockwise
// orientation.
func (r Ring) Area() float64 {
	n := len(r)
	if r.Closed() {
		n--
	}
	a := 0.0
	for i := 0; i < n; i++ {
		a += r[i].PerpDot(r[(i+1)%n])
	}
	return a / 2.0
}

// IsCCW returns true if the ring is wound counter clockwise.
func (r Ring) IsCCW() bool {
	return 0.0 < r.Area()
}

// FillCount returns the number of times the ring encloses the coordinate.
// Counter clockwise enclosures are counted positively and clockwise
// enclosures negatively.
func (r Ring) FillCount(c Coordinate) int {
	count := 0
	prev := r[0]
	for _, cur := range r[1:] {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (c.Y < cur.Y) != (c.Y < prev.Y) &&
			c.X < (prev.X-cur.X)*(c.Y-cur.Y)/(prev.Y-cur.Y)+cur.X {
			if prev.Y < cur.Y {
				count++
			} else {
				count--
			}
		}
		prev = cur
	}
	return count
}

// Locate returns whether the coordinate is in the interior, on the boundary,
// or in the exterior of the closed ring. A nil model uses the default
// precision model.
func (r Ring) Locate(c Coordinate, pm *PrecisionModel) Location {
	if pm == nil {
		pm = defaultModel
	}
	for i := 1; i < len(r); i++ {
		if distanceToSegment(c, r[i-1], r[i]) <= pm.Tolerance(c, r[i-1], r[i]) {
			return Boundary
		}
	}
	if r.FillCount(c) != 0 {
		return Interior
	}
	return Exterior
}

// InteriorPoint returns a coordinate strictly inside the closed ring.
func (r Ring) InteriorPoint(pm *PrecisionModel) Coordinate {
	n := len(r)
	if r.Closed() {
		n--
	}
	if n < 3 {
		return InvalidCoordinate
	}

	// the centroid works for all convex and most concave rings
	c := Coordinate{}
	for i := 0; i < n; i++ {
		c = c.Add(r[i])
	}
	c = c.Mul(1.0 / float64(n))
	if r.Locate(c, pm) == Interior {
		return c
	}

	// fall back to diagonal midpoints
	for d := 2; d < n; d++ {
		for i := 0; i < n; i++ {
			mid := r[i].Interpolate(r[(i+d)%n], 0.5)
			if r.Locate(mid, pm) == Interior {
				return mid
			}
		}
	}
	return InvalidCoordinate
}

// IsSimple returns true if the closed ring does not intersect or touch
// itself, ie. only consecutive edges share a coordinate.
func (r Ring) IsSimple(pm *PrecisionModel) bool {
	return !NewShamosHoey(r, pm).Result()
}

// Polygon is a shell wound counter clockwise with zero or more holes wound
// clockwise. Shell and holes are closed rings.
type Polygon struct {
	Shell Ring
	Holes []Ring
}

// NewPolygon returns a polygon from a shell and optional holes.
func NewPolygon(shell Ring, holes ...Ring) *Polygon {
	return &Polygon{Shell: shell, Holes: holes}
}

// Validate checks the ring contract: a non-nil closed shell with at least
// three distinct coordinates wound counter clockwise, and closed clockwise
// holes. It returns the first violation found.
func (p *Polygon) Validate() error {
	if p == nil || p.Shell == nil {
		return fmt.Errorf("polygon: missing shell")
	}
	if err := validateRing(p.Shell, "shell"); err != nil {
		return err
	}
	if !p.Shell.IsCCW() {
		return fmt.Errorf("polygon: shell must be wound counter clockwise")
	}
	for i, hole := range p.Holes {
		if err := validateRing(hole, fmt.Sprintf("hole %d", i)); err != nil {
			return err
		}
		if hole.IsCCW() {
			return fmt.Errorf("polygon: hole %d must be wound clockwise", i)
		}
	}
	return nil
}

func validateRing(r Ring, name string) error {
	if r == nil {
		return fmt.Errorf("polygon: missing %s", name)
	} else if !r.Closed() {
		return fmt.Errorf("polygon: %s must be closed", name)
	} else if r.Distinct() < 3 {
		return fmt.Errorf("polygon: %s must have at least 3 distinct coordinates", name)
	}
	return nil
}

// Locate returns the location of the coordinate relative to the polygon:
// Interior when inside the shell and outside all holes, Boundary when on the
// shell or a hole boundary.
func (p *Polygon) Locate(c Coordinate, pm *PrecisionModel) Location {
	loc := p.Shell.Locate(c, pm)
	if loc != Interior {
		return loc
	}
	for _, hole := range p.Holes {
		switch hole.Locate(c, pm) {
		case Boundary:
			return Boundary
		case Interior:
			return Exterior
		}
	}
	return Interior
}

// Area returns the area of the polygon, the shell area minus the hole areas.
func (p *Polygon) Area() float64 {
	a := math.Abs(p.Shell.Area())
	for _, hole := range p.Holes {
		a -= math.Abs(hole.Area())
	}
	return a
}

func (p *Polygon) String() string {
	return fmt.Sprintf("{shell=%v holes=%v}", p.Shell, p.Holes)
}

// Clip is one output polygon of the clipping engine: a closed counter
// clockwise shell with zero or more closed clockwise holes.
type Clip struct {
	Shell Ring
	Holes []Ring
}

// Area returns the area of the clip, the shell area minus the hole areas.
func (c *Clip) Area() float64 {
	a := math.Abs(c.Shell.Area())
	for _, hole := range c.Holes {
		a -= math.Abs(hole.Area())
	}
	return a
}

// Polygon converts the clip to a polygon.
func (c *Clip) Polygon() *Polygon {
	return &Polygon{Shell: c.Shell, Holes: c.Holes}
}

func (c *Clip) String() string {
	return fmt.Sprintf("{shell=%v holes=%v}", c.Shell, c.Holes)
}
