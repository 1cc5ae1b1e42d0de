package planar

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the default absolute tolerance below which two coordinate values
// are considered equal.
const Epsilon = 1e-10

// PrecisionModel determines the tolerance used for geometric comparisons and
// can snap coordinates to a canonical precise value. All comparisons in the
// sweep-line and clipping engines route through a model instead of using a
// fixed epsilon, so that callers can trade accuracy for robustness.
//
// A model is read-only after construction and may be shared between engines.
type PrecisionModel struct {
	abs   float64 // absolute tolerance
	rel   float64 // relative tolerance, scales with coordinate magnitude
	scale float64 // rounding grid for Snap, zero disables snapping
}

var defaultModel = &PrecisionModel{abs: Epsilon, rel: Epsilon}

// DefaultPrecisionModel returns the process-wide default model with absolute
// and relative tolerance Epsilon and no snapping.
func DefaultPrecisionModel() *PrecisionModel {
	return defaultModel
}

// NewPrecisionModel returns a model with the given absolute and relative
// tolerances and no snapping.
func NewPrecisionModel(abs, rel float64) *PrecisionModel {
	return &PrecisionModel{abs: abs, rel: rel}
}

// NewFixedPrecisionModel returns a model that snaps coordinates to a grid of
// 1/scale, e.g. scale=1000 snaps to three decimals. Tolerances are half a grid
// cell so that values snapping to the same cell compare equal.
func NewFixedPrecisionModel(scale float64) *PrecisionModel {
	if scale <= 0.0 {
		panic("precision scale must be positive")
	}
	return &PrecisionModel{abs: 0.5 / scale, scale: scale}
}

// Tolerance returns the comparison tolerance for the given coordinates. It
// grows with the magnitude of the coordinate values so that large geometries
// remain comparable.
func (pm *PrecisionModel) Tolerance(coords ...Coordinate) float64 {
	mag := 0.0
	for _, c := range coords {
		if !c.IsValid() {
			continue
		}
		mag = math.Max(mag, math.Max(math.Abs(c.X), math.Abs(c.Y)))
	}
	return pm.abs + pm.rel*mag
}

// Snap rounds the coordinate to the model's precision grid. Models without a
// grid return the coordinate unchanged.
func (pm *PrecisionModel) Snap(c Coordinate) Coordinate {
	if pm.scale == 0.0 || !c.IsValid() {
		return c
	}
	return Coordinate{
		X: math.Round(c.X*pm.scale) / pm.scale,
		Y: math.Round(c.Y*pm.scale) / pm.scale,
		Z: c.Z,
	}
}

// Eq returns true if a and b are equal within the model's tolerance.
func (pm *PrecisionModel) Eq(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, pm.abs, pm.rel)
}

// EqCoord returns true if the planar parts of a and b are equal within the
// model's tolerance.
func (pm *PrecisionModel) EqCoord(a, b Coordinate) bool {
	return pm.Eq(a.X, b.X) && pm.Eq(a.Y, b.Y)
}

// in returns true if t is in the closed interval [lo,hi] within tolerance.
func (pm *PrecisionModel) in(t, lo, hi float64) bool {
	return lo <= t+pm.abs && t-pm.abs <= hi
}
