package planar

import (
	"fmt"
	"math"
)

// segmentIntersection is an intersection between two line segments A and B
// with its position along each segment in [0,1]. A collinear overlap between
// two segments yields its two boundary points, both marked overlap.
type segmentIntersection struct {
	Coordinate
	ta, tb  float64
	tangent bool // segments touch at a segment endpoint instead of crossing
	overlap bool // boundary point of a collinear overlap
}

func (z segmentIntersection) String() string {
	extra := ""
	if z.overlap {
		extra = " Overlap"
	} else if z.tangent {
		extra = " Tangent"
	}
	return fmt.Sprintf("({%g,%g} t={%g,%g}%v)", z.X, z.Y, z.ta, z.tb, extra)
}

func clampUnit(t float64) float64 {
	return math.Max(0.0, math.Min(1.0, t))
}

// intersectSegments appends the intersections between segments a0-a1 and
// b0-b1 to zs. Zero-length segments yield no intersections. Collinear
// overlapping segments yield the two overlap boundary points.
func intersectSegments(zs []segmentIntersection, a0, a1, b0, b1 Coordinate, pm *PrecisionModel) []segmentIntersection {
	if pm == nil {
		pm = defaultModel
	}
	if pm.EqCoord(a0, a1) || pm.EqCoord(b0, b1) {
		return zs // zero-length segment
	}

	da := a1.Sub(a0)
	db := b1.Sub(b0)
	tol := pm.Tolerance(a0, a1, b0, b1)
	div := da.PerpDot(db)
	if math.Abs(div) <= tol*(da.Length()+db.Length()) {
		// parallel
		if math.Abs(da.PerpDot(b0.Sub(a0)))/da.Length() <= tol {
			// aligned, parametrize along A
			f := 1.0 / da.Dot(da)
			c := b0.Sub(a0).Dot(da) * f
			d := b1.Sub(a0).Dot(da) * f
			lo, hi := math.Min(c, d), math.Max(c, d)
			lo, hi = math.Max(0.0, lo), math.Min(1.0, hi)

			ptol := tol / da.Length() // tolerance in A's parameter
			if hi < lo-ptol {
				return zs // disjoint
			} else if hi-lo <= ptol {
				// touch at a single point
				t := clampUnit((lo + hi) / 2.0)
				zs = append(zs, segmentIntersection{
					Coordinate: a0.Interpolate(a1, t),
					ta:         t,
					tb:         clampUnit((t - c) / (d - c)),
					tangent:    true,
				})
				return zs
			}
			// overlap, emit both boundary points
			for _, t := range []float64{lo, hi} {
				zs = append(zs, segmentIntersection{
					Coordinate: a0.Interpolate(a1, t),
					ta:         t,
					tb:         clampUnit((t - c) / (d - c)),
					tangent:    true,
					overlap:    true,
				})
			}
		}
		return zs
	}

	// handle common endpoint cases explicitly to avoid numerical issues
	if pm.EqCoord(a1, b0) {
		return append(zs, segmentIntersection{Coordinate: a1, ta: 1.0, tb: 0.0, tangent: true})
	} else if pm.EqCoord(a0, b1) {
		return append(zs, segmentIntersection{Coordinate: a0, ta: 0.0, tb: 1.0, tangent: true})
	} else if pm.EqCoord(a0, b0) {
		return append(zs, segmentIntersection{Coordinate: a0, ta: 0.0, tb: 0.0, tangent: true})
	} else if pm.EqCoord(a1, b1) {
		return append(zs, segmentIntersection{Coordinate: a1, ta: 1.0, tb: 1.0, tangent: true})
	}

	ta := db.PerpDot(a0.Sub(b0)) / div
	tb := da.PerpDot(a0.Sub(b0)) / div
	ptolA := tol / da.Length()
	ptolB := tol / db.Length()
	if -ptolA <= ta && ta <= 1.0+ptolA && -ptolB <= tb && tb <= 1.0+ptolB {
		tangent := ta <= ptolA || 1.0-ptolA <= ta || tb <= ptolB || 1.0-ptolB <= tb
		ta, tb = clampUnit(ta), clampUnit(tb)
		zs = append(zs, segmentIntersection{
			Coordinate: a0.Interpolate(a1, ta),
			ta:         ta,
			tb:         tb,
			tangent:    tangent,
		})
	}
	return zs
}
