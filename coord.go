package planar

import (
	"fmt"
	"math"
)

// Coordinate is a position in 2D space with an optional elevation. The sweep
// and clipping algorithms operate on X and Y; Z is carried along unchanged. An
// undefined coordinate has NaN components, see IsValid.
type Coordinate struct {
	X, Y, Z float64
}

// Coord returns the planar coordinate (x,y).
func Coord(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// InvalidCoordinate is the undefined coordinate sentinel.
var InvalidCoordinate = Coordinate{math.NaN(), math.NaN(), math.NaN()}

// IsValid returns true if the planar components are defined.
func (c Coordinate) IsValid() bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y)
}

// Equals returns true if P and Q are planar-equal with tolerance Epsilon.
func (c Coordinate) Equals(o Coordinate) bool {
	return defaultModel.EqCoord(c, o)
}

// Add adds Q to P.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Sub subtracts Q from P.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

// Mul multiplies the components by f.
func (c Coordinate) Mul(f float64) Coordinate {
	return Coordinate{f * c.X, f * c.Y, f * c.Z}
}

// Dot returns the planar dot product between OP and OQ.
func (c Coordinate) Dot(o Coordinate) float64 {
	return c.X*o.X + c.Y*o.Y
}

// PerpDot returns the planar perp dot product between OP and OQ, ie. zero if
// aligned and |OP|*|OQ| if perpendicular.
func (c Coordinate) PerpDot(o Coordinate) float64 {
	return c.X*o.Y - c.Y*o.X
}

// Length returns the planar length of OP.
func (c Coordinate) Length() float64 {
	return math.Hypot(c.X, c.Y)
}

// Distance returns the planar distance between P and Q.
func (c Coordinate) Distance(o Coordinate) float64 {
	return math.Hypot(o.X-c.X, o.Y-c.Y)
}

// Interpolate returns a coordinate on PQ that is linearly interpolated by t,
// ie. t=0 returns P and t=1 returns Q.
func (c Coordinate) Interpolate(o Coordinate, t float64) Coordinate {
	return Coordinate{
		(1.0-t)*c.X + t*o.X,
		(1.0-t)*c.Y + t*o.Y,
		(1.0-t)*c.Z + t*o.Z,
	}
}

// Angle returns the angle between the x-axis and OP.
func (c Coordinate) Angle() float64 {
	return math.Atan2(c.Y, c.X)
}

// lexLess orders coordinates by x ascending with y as tiebreak, the order in
// which a left-to-right sweep encounters them.
func (c Coordinate) lexLess(o Coordinate, pm *PrecisionModel) bool {
	if !pm.Eq(c.X, o.X) {
		return c.X < o.X
	}
	return !pm.Eq(c.Y, o.Y) && c.Y < o.Y
}

func (c Coordinate) String() string {
	if c.Z != 0.0 {
		return fmt.Sprintf("[%g; %g; %g]", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("[%g; %g]", c.X, c.Y)
}

// Orientation is the order of three planar coordinates.
type Orientation int

const (
	Collinear Orientation = iota
	CounterClockwise
	Clockwise
)

func (o Orientation) String() string {
	if o == CounterClockwise {
		return "CounterClockwise"
	} else if o == Clockwise {
		return "Clockwise"
	}
	return "Collinear"
}

// Orient returns the orientation of the coordinate triplet (a,b,c). A nil
// model uses the default precision model.
func Orient(a, b, c Coordinate, pm *PrecisionModel) Orientation {
	if pm == nil {
		pm = defaultModel
	}
	cross := b.Sub(a).PerpDot(c.Sub(a))
	if math.Abs(cross) <= pm.Tolerance(a, b, c) {
		return Collinear
	} else if 0.0 < cross {
		return CounterClockwise
	}
	return Clockwise
}

// distanceToSegment returns the planar distance from c to segment ab.
func distanceToSegment(c, a, b Coordinate) float64 {
	d := b.Sub(a)
	if d.X == 0.0 && d.Y == 0.0 {
		return c.Distance(a)
	}
	t := c.Sub(a).Dot(d) / d.Dot(d)
	if t < 0.0 {
		return c.Distance(a)
	} else if 1.0 < t {
		return c.Distance(b)
	}
	return c.Distance(a.Interpolate(b, t))
}

// Rect is an axis-aligned rectangle spanned by (X0,Y0) and (X1,Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Expand grows the rectangle to contain c.
func (r Rect) Expand(c Coordinate) Rect {
	r.X0 = math.Min(r.X0, c.X)
	r.Y0 = math.Min(r.Y0, c.Y)
	r.X1 = math.Max(r.X1, c.X)
	r.Y1 = math.Max(r.Y1, c.Y)
	return r
}

// Touches returns true if R and Q touch or overlap within the model's
// tolerance. A nil model uses the default precision model.
func (r Rect) Touches(q Rect, pm *PrecisionModel) bool {
	if pm == nil {
		pm = defaultModel
	}
	tol := pm.Tolerance(Coord(r.X0, r.Y0), Coord(r.X1, r.Y1), Coord(q.X0, q.Y0), Coord(q.X1, q.Y1))
	return q.X0 <= r.X1+tol && r.X0-tol <= q.X1 &&
		q.Y0 <= r.Y1+tol && r.Y0-tol <= q.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X0, r.Y0, r.X1, r.Y1)
}
