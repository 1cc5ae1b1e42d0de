package planar

import (
	"fmt"

	"github.com/paulmach/orb"
)

// PolygonFromOrb converts an orb polygon. Rings are closed if necessary and
// rewound to the shell counter clockwise, holes clockwise convention. The
// elevation of all coordinates is zero.
func PolygonFromOrb(g orb.Polygon) (*Polygon, error) {
	if len(g) == 0 {
		return nil, fmt.Errorf("polygon: missing shell")
	}
	p := &Polygon{}
	for i, ring := range g {
		r := make(Ring, 0, len(ring)+1)
		for _, point := range ring {
			r = append(r, Coord(point[0], point[1]))
		}
		r = r.Close()
		if i == 0 {
			if !r.IsCCW() {
				r = r.Reverse()
			}
			p.Shell = r
		} else {
			if r.IsCCW() {
				r = r.Reverse()
			}
			p.Holes = append(p.Holes, r)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Orb converts the polygon to an orb polygon, dropping elevations.
func (p *Polygon) Orb() orb.Polygon {
	g := make(orb.Polygon, 0, 1+len(p.Holes))
	g = append(g, ringToOrb(p.Shell))
	for _, hole := range p.Holes {
		g = append(g, ringToOrb(hole))
	}
	return g
}

// Orb converts the clip to an orb polygon, dropping elevations.
func (c *Clip) Orb() orb.Polygon {
	return c.Polygon().Orb()
}

// ClipsToOrb converts a clipping result to orb polygons.
func ClipsToOrb(clips []*Clip) []orb.Polygon {
	gs := make([]orb.Polygon, 0, len(clips))
	for _, c := range clips {
		gs = append(gs, c.Orb())
	}
	return gs
}

func ringToOrb(r Ring) orb.Ring {
	ring := make(orb.Ring, 0, len(r))
	for _, c := range r {
		ring = append(ring, orb.Point{c.X, c.Y})
	}
	return ring
}
