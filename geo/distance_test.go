package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/kaushika05/globlekay/country"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y},
		{x + size, y},
		{x + size, y + size},
		{x, y + size},
		{x, y},
	}}
}

func TestDistance_SameCountryIsZero(t *testing.T) {
	a := country.Country{Code: "FRA", Geometry: square(0, 0, 1)}
	assert.Zero(t, Distance(a, a))
}

func TestDistance_OverlappingShapesAreZero(t *testing.T) {
	a := country.Country{Code: "AAA", Geometry: square(0, 0, 2)}
	b := country.Country{Code: "BBB", Geometry: square(1, 1, 2)}
	assert.Zero(t, Distance(a, b))
	assert.Zero(t, Distance(b, a))
}

func TestDistance_SeparatedShapes(t *testing.T) {
	a := country.Country{Code: "AAA", Geometry: square(0, 0, 1)}
	b := country.Country{Code: "BBB", Geometry: square(10, 0, 1)}

	d := Distance(a, b)
	assert.Greater(t, d, 0.0)
	// 9 degrees of longitude at the equator is roughly 1000 km.
	assert.InDelta(t, 1000, d, 15)
	assert.Equal(t, d, Distance(b, a), "distance is symmetric")
}

func TestDistance_CloserMeansSmaller(t *testing.T) {
	answer := country.Country{Code: "ANS", Geometry: square(0, 0, 1)}
	near := country.Country{Code: "NEA", Geometry: square(3, 0, 1)}
	far := country.Country{Code: "FAR", Geometry: square(30, 0, 1)}

	assert.Less(t, Distance(near, answer), Distance(far, answer))
}

func TestDistance_MultiPolygon(t *testing.T) {
	mainland := square(0, 0, 1)
	island := square(5, 0, 1)
	a := country.Country{Code: "AAA", Geometry: orb.MultiPolygon{mainland, island}}
	b := country.Country{Code: "BBB", Geometry: square(7, 0, 1)}

	// The island is the nearest part, so the distance is measured from it.
	d := Distance(a, b)
	onlyMainland := country.Country{Code: "AAA", Geometry: mainland}
	assert.Less(t, d, Distance(onlyMainland, b))
}
