package planar

import (
	"fmt"
	"sort"
	"testing"

	"github.com/tdewolff/test"
)

func clipArea(clips []*Clip) float64 {
	a := 0.0
	for _, c := range clips {
		a += c.Area()
	}
	return a
}

func sortClips(clips []*Clip) []*Clip {
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].Shell[0].lexLess(clips[j].Shell[0], defaultModel)
	})
	return clips
}

func TestClipperOverlappingSquares(t *testing.T) {
	a := NewPolygon(RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 1.0, 0.0, 1.0).Close())
	b := NewPolygon(RingFromPoints(0.5, 0.5, 1.5, 0.5, 1.5, 1.5, 0.5, 1.5).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.T(t, internal[0].Shell, RingFromPoints(0.5, 0.5, 1.0, 0.5, 1.0, 1.0, 0.5, 1.0).Close())
	test.T(t, len(internal[0].Holes), 0)

	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	test.T(t, externalA[0].Shell, RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 0.5, 0.5, 0.5, 0.5, 1.0, 0.0, 1.0).Close())

	externalB := c.ExternalClipsB()
	test.T(t, len(externalB), 1)
	test.T(t, externalB[0].Shell, RingFromPoints(0.5, 1.0, 1.0, 1.0, 1.0, 0.5, 1.5, 0.5, 1.5, 1.5, 0.5, 1.5).Close())

	test.Float(t, clipArea(internal), 0.25)
	test.Float(t, clipArea(internal)+clipArea(externalA), a.Area())
	test.Float(t, clipArea(internal)+clipArea(externalB), b.Area())
}

func TestClipperCollinearBoundary(t *testing.T) {
	// the squares share boundary runs along their tops and bottoms
	a := NewPolygon(RingFromPoints(0.0, 0.0, 2.0, 0.0, 2.0, 2.0, 0.0, 2.0).Close())
	b := NewPolygon(RingFromPoints(1.0, 0.0, 3.0, 0.0, 3.0, 2.0, 1.0, 2.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.T(t, internal[0].Shell, RingFromPoints(1.0, 0.0, 2.0, 0.0, 2.0, 2.0, 1.0, 2.0).Close())

	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	test.T(t, externalA[0].Shell, RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 2.0, 0.0, 2.0).Close())

	externalB := c.ExternalClipsB()
	test.T(t, len(externalB), 1)
	test.T(t, externalB[0].Shell, RingFromPoints(2.0, 0.0, 3.0, 0.0, 3.0, 2.0, 2.0, 2.0).Close())
}

func TestClipperDisjoint(t *testing.T) {
	a := NewPolygon(RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 1.0, 0.0, 1.0).Close())
	b := NewPolygon(RingFromPoints(2.0, 0.0, 3.0, 0.0, 3.0, 1.0, 2.0, 1.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	test.T(t, len(c.InternalClips()), 0)
	externalA, externalB := c.ExternalClipsA(), c.ExternalClipsB()
	test.T(t, len(externalA), 1)
	test.T(t, externalA[0].Shell, a.Shell)
	test.T(t, len(externalB), 1)
	test.T(t, externalB[0].Shell, b.Shell)
}

func TestClipperContained(t *testing.T) {
	a := NewPolygon(RingFromPoints(0.0, 0.0, 4.0, 0.0, 4.0, 4.0, 0.0, 4.0).Close())
	b := NewPolygon(RingFromPoints(1.0, 1.0, 3.0, 1.0, 3.0, 3.0, 1.0, 3.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.T(t, internal[0].Shell, b.Shell)

	// A keeps its area around B: A with B as a hole
	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	test.T(t, externalA[0].Shell, a.Shell)
	test.T(t, len(externalA[0].Holes), 1)
	test.T(t, externalA[0].Holes[0], RingFromPoints(1.0, 1.0, 1.0, 3.0, 3.0, 3.0, 3.0, 1.0).Close())
	test.Float(t, externalA[0].Area(), 12.0)

	test.T(t, len(c.ExternalClipsB()), 0)
}

func TestClipperEqual(t *testing.T) {
	shell := RingFromPoints(0.0, 0.0, 2.0, 0.0, 2.0, 2.0, 0.0, 2.0).Close()
	c, err := NewClipperRings(shell, shell, true, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.Float(t, clipArea(internal), 4.0)
	test.T(t, len(c.ExternalClipsA()), 0)
	test.T(t, len(c.ExternalClipsB()), 0)
}

func TestClipperMultipleClips(t *testing.T) {
	// a comb-shaped polygon intersected by a rectangle over the notch yields
	// two separate internal clips
	a := NewPolygon(RingFromPoints(0.0, 0.0, 5.0, 0.0, 5.0, 2.0, 3.0, 2.0, 3.0, 1.0, 2.0, 1.0, 2.0, 2.0, 0.0, 2.0).Close())
	b := NewPolygon(RingFromPoints(1.0, 1.5, 4.0, 1.5, 4.0, 3.0, 1.0, 3.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := sortClips(c.InternalClips())
	test.T(t, len(internal), 2)
	test.T(t, internal[0].Shell, RingFromPoints(1.0, 1.5, 2.0, 1.5, 2.0, 2.0, 1.0, 2.0).Close())
	test.T(t, internal[1].Shell, RingFromPoints(3.0, 1.5, 4.0, 1.5, 4.0, 2.0, 3.0, 2.0).Close())

	test.Float(t, clipArea(internal), 1.0)
	test.Float(t, clipArea(internal)+clipArea(c.ExternalClipsA()), a.Area())
	test.Float(t, clipArea(internal)+clipArea(c.ExternalClipsB()), b.Area())
}

func TestClipperHoleContained(t *testing.T) {
	// B sits inside A's shell and contains A's hole
	a := NewPolygon(
		RingFromPoints(0.0, 0.0, 6.0, 0.0, 6.0, 6.0, 0.0, 6.0).Close(),
		RingFromPoints(2.0, 2.0, 2.0, 4.0, 4.0, 4.0, 4.0, 2.0).Close(),
	)
	b := NewPolygon(RingFromPoints(1.0, 1.0, 5.0, 1.0, 5.0, 5.0, 1.0, 5.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.T(t, internal[0].Shell, b.Shell)
	test.T(t, len(internal[0].Holes), 1)
	test.Float(t, clipArea(internal), 12.0)

	// A's hole lies inside the B hole of the external clip and must not be
	// subtracted twice
	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	test.T(t, len(externalA[0].Holes), 1)
	test.Float(t, clipArea(externalA), 20.0)

	// the part of B under A's hole is not covered by A and survives in B
	externalB := c.ExternalClipsB()
	test.T(t, len(externalB), 1)
	test.T(t, externalB[0].Shell, RingFromPoints(2.0, 2.0, 4.0, 2.0, 4.0, 4.0, 2.0, 4.0).Close())
	test.Float(t, clipArea(internal)+clipArea(externalA), a.Area())
	test.Float(t, clipArea(internal)+clipArea(externalB), b.Area())
}

func TestClipperHoleCrossed(t *testing.T) {
	// B reaches into A's hole: the overlap with the hole is cut out of the
	// internal clip
	a := NewPolygon(
		RingFromPoints(0.0, 0.0, 6.0, 0.0, 6.0, 6.0, 0.0, 6.0).Close(),
		RingFromPoints(2.0, 2.0, 2.0, 4.0, 4.0, 4.0, 4.0, 2.0).Close(),
	)
	b := NewPolygon(RingFromPoints(3.0, 1.0, 5.0, 1.0, 5.0, 5.0, 3.0, 5.0).Close())
	c, err := NewClipper(a, b, false, nil)
	test.Error(t, err)

	internal := c.InternalClips()
	test.T(t, len(internal), 1)
	test.T(t, internal[0].Shell, b.Shell)
	test.T(t, len(internal[0].Holes), 1)
	test.T(t, internal[0].Holes[0], RingFromPoints(3.0, 2.0, 3.0, 4.0, 4.0, 4.0, 4.0, 2.0).Close())
	test.Float(t, clipArea(internal), 6.0)
}

func TestClipperHolePromoted(t *testing.T) {
	// A fills B's hole: that area is external to B, covered by A
	a := NewPolygon(RingFromPoints(2.0, 2.0, 4.0, 2.0, 4.0, 4.0, 2.0, 4.0).Close())
	b := NewPolygon(
		RingFromPoints(0.0, 0.0, 6.0, 0.0, 6.0, 6.0, 0.0, 6.0).Close(),
		RingFromPoints(1.0, 1.0, 1.0, 5.0, 5.0, 5.0, 5.0, 1.0).Close(),
	)
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	// A lies entirely inside B's hole
	test.T(t, len(c.InternalClips()), 0)

	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	test.T(t, externalA[0].Shell, a.Shell)

	// B keeps its ring shape, and A's footprint is no part of it
	externalB := c.ExternalClipsB()
	test.Float(t, clipArea(externalB), b.Area())
	test.Float(t, clipArea(c.InternalClips())+clipArea(externalA), a.Area())
}

func TestClipperHolePocket(t *testing.T) {
	// two U-shaped holes cross and enclose a filled pocket between their
	// boundaries, which must survive as a clip of its own
	a := NewPolygon(
		RingFromPoints(0.0, 0.0, 10.0, 0.0, 10.0, 10.0, 0.0, 10.0).Close(),
		RingFromPoints(2.0, 2.0, 2.0, 8.0, 4.0, 8.0, 4.0, 4.0, 6.0, 4.0, 6.0, 8.0, 8.0, 8.0, 8.0, 2.0).Close(),
	)
	b := NewPolygon(
		RingFromPoints(0.0, 0.0, 10.0, 0.0, 10.0, 10.0, 0.0, 10.0).Close(),
		RingFromPoints(1.0, 1.0, 1.0, 9.0, 9.0, 9.0, 9.0, 1.0, 7.0, 1.0, 7.0, 6.0, 3.0, 6.0, 3.0, 1.0).Close(),
	)
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	internal := sortClips(c.InternalClips())
	test.T(t, len(internal), 2)
	test.T(t, internal[0].Shell, a.Shell)
	test.T(t, len(internal[0].Holes), 1)
	test.Float(t, internal[0].Area(), 40.0)
	test.T(t, internal[1].Shell, RingFromPoints(4.0, 4.0, 6.0, 4.0, 6.0, 6.0, 4.0, 6.0).Close())
	test.T(t, internal[1].Polygon().Locate(Coord(5.0, 5.0), nil), Interior)
	test.Float(t, clipArea(internal), 44.0)

	test.Float(t, clipArea(internal)+clipArea(c.ExternalClipsA()), a.Area())
	test.Float(t, clipArea(internal)+clipArea(c.ExternalClipsB()), b.Area())
}

func TestClipperTouching(t *testing.T) {
	// squares sharing a corner do not overlap
	a := NewPolygon(RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 1.0, 0.0, 1.0).Close())
	b := NewPolygon(RingFromPoints(1.0, 1.0, 2.0, 1.0, 2.0, 2.0, 1.0, 2.0).Close())
	c, err := NewClipper(a, b, true, nil)
	test.Error(t, err)

	test.T(t, len(c.InternalClips()), 0)
	test.Float(t, clipArea(c.ExternalClipsA()), a.Area())
	test.Float(t, clipArea(c.ExternalClipsB()), b.Area())
}

func TestClipperAreaConservation(t *testing.T) {
	var tts = []struct {
		a, b *Polygon
	}{
		{
			NewPolygon(RingFromPoints(0.0, 0.0, 4.0, 0.0, 0.0, 4.0).Close()),
			NewPolygon(RingFromPoints(1.0, 1.0, 5.0, 1.0, 5.0, 5.0, 1.0, 5.0).Close()),
		},
		{
			NewPolygon(RingFromPoints(0.0, 0.0, 2.0, 0.0, 2.0, 2.0, 0.0, 2.0).Close()),
			NewPolygon(RingFromPoints(1.0, 0.0, 3.0, 0.0, 3.0, 2.0, 1.0, 2.0).Close()),
		},
		{
			NewPolygon(RingFromPoints(0.0, 0.0, 5.0, 0.0, 5.0, 2.0, 3.0, 2.0, 3.0, 1.0, 2.0, 1.0, 2.0, 2.0, 0.0, 2.0).Close()),
			NewPolygon(RingFromPoints(1.0, 1.5, 4.0, 1.5, 4.0, 3.0, 1.0, 3.0).Close()),
		},
		{
			NewPolygon(
				RingFromPoints(0.0, 0.0, 6.0, 0.0, 6.0, 6.0, 0.0, 6.0).Close(),
				RingFromPoints(2.0, 2.0, 2.0, 4.0, 4.0, 4.0, 4.0, 2.0).Close(),
			),
			NewPolygon(RingFromPoints(3.0, 1.0, 5.0, 1.0, 5.0, 5.0, 3.0, 5.0).Close()),
		},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			c, err := NewClipper(tt.a, tt.b, true, nil)
			test.Error(t, err)
			internal := clipArea(c.InternalClips())
			test.Float(t, internal+clipArea(c.ExternalClipsA()), tt.a.Area())
			test.Float(t, internal+clipArea(c.ExternalClipsB()), tt.b.Area())
		})
	}
}

func TestClipperValidation(t *testing.T) {
	square := NewPolygon(RingFromPoints(0.0, 0.0, 4.0, 0.0, 4.0, 4.0, 0.0, 4.0).Close())

	var tts = []struct {
		a, b *Polygon
		err  string
	}{
		{square, square, ""},
		{
			NewPolygon(RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 1.0)), square,
			"clip: first polygon: polygon: shell must be closed",
		},
		{
			NewPolygon(RingFromPoints(0.0, 0.0, 0.0, 4.0, 4.0, 4.0, 4.0, 0.0).Close()), square,
			"clip: first polygon: polygon: shell must be wound counter clockwise",
		},
		{
			square, NewPolygon(RingFromPoints(0.0, 2.0, 3.0, 0.0, 3.0, 3.0, 0.0, 0.0).Close()),
			"clip: second polygon: boundary is self-intersecting or self-touching",
		},
		{
			NewPolygon(square.Shell, RingFromPoints(1.0, 1.0, 1.0, 4.0, 3.0, 1.0).Close()), square,
			"clip: first polygon: boundary is self-intersecting or self-touching",
		},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := NewClipper(tt.a, tt.b, false, nil)
			if tt.err == "" {
				test.Error(t, err)
			} else {
				test.That(t, err != nil)
				test.T(t, err.Error(), tt.err)
			}
		})
	}
}

func TestClipperExternalCaching(t *testing.T) {
	a := NewPolygon(RingFromPoints(0.0, 0.0, 1.0, 0.0, 1.0, 1.0, 0.0, 1.0).Close())
	b := NewPolygon(RingFromPoints(0.5, 0.5, 1.5, 0.5, 1.5, 1.5, 0.5, 1.5).Close())
	c, err := NewClipper(a, b, false, nil)
	test.Error(t, err)

	// external clips are disabled
	test.T(t, len(c.ExternalClipsA()), 0)
	test.T(t, len(c.ExternalClipsB()), 0)
	test.T(t, len(c.InternalClips()), 1)

	c.SetComputeExternalClips(true)
	externalA := c.ExternalClipsA()
	test.T(t, len(externalA), 1)
	area := clipArea(externalA)

	// disabling discards the cached externals, re-enabling recomputes them
	c.SetComputeExternalClips(false)
	test.T(t, len(c.ExternalClipsA()), 0)
	c.SetComputeExternalClips(true)
	test.T(t, len(c.ExternalClipsA()), 1)
	test.Float(t, clipArea(c.ExternalClipsA()), area)

	// repeated access returns the cached result
	internal := c.InternalClips()
	test.T(t, len(c.InternalClips()), len(internal))
	test.Float(t, clipArea(c.InternalClips()), 0.25)
}

func TestCanonicalRing(t *testing.T) {
	// a coarse precision model ties nearly equal x and falls back to y
	r := RingFromPoints(3.0, 0.0, 0.0006, 5.0, 0.0, 6.0).Close()
	test.T(t, canonicalRing(r, nil)[0], Coord(0.0, 6.0))
	test.T(t, canonicalRing(r, NewPrecisionModel(0.001, 0.0))[0], Coord(0.0006, 5.0))
}
