package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"github.com/kaushika05/globlekay/country"
)

// Distance returns the proximity between two countries in kilometres:
// 0 when the shapes are the same country or overlap, otherwise the minimum
// haversine distance between their boundary vertices.
func Distance(a, b country.Country) float64 {
	if a.Code == b.Code {
		return 0
	}
	if overlaps(a.Geometry, b.Geometry) || overlaps(b.Geometry, a.Geometry) {
		return 0
	}

	av := vertices(a.Geometry)
	bv := vertices(b.Geometry)
	min := math.Inf(1)
	for _, p := range av {
		for _, q := range bv {
			if d := orbgeo.DistanceHaversine(p, q); d < min {
				min = d
			}
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min / 1000
}

// overlaps reports whether any vertex of g sits inside h. Boundary-touching
// neighbours count as distance zero, same as overlapping ones, so a vertex
// test is enough here.
func overlaps(g, h orb.Geometry) bool {
	for _, p := range vertices(g) {
		if contains(h, p) {
			return true
		}
	}
	return false
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch s := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(s, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(s, p)
	}
	return false
}

func vertices(g orb.Geometry) []orb.Point {
	var pts []orb.Point
	switch s := g.(type) {
	case orb.Polygon:
		for _, ring := range s {
			pts = append(pts, ring...)
		}
	case orb.MultiPolygon:
		for _, poly := range s {
			for _, ring := range poly {
				pts = append(pts, ring...)
			}
		}
	case orb.Point:
		pts = append(pts, s)
	}
	return pts
}
