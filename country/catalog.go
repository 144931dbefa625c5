package country

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Country is one record of the reference data set. Instances are immutable
// and shared by reference across every room for the lifetime of the process.
type Country struct {
	Code     string
	Name     string
	Geometry orb.Geometry
}

// Catalog is the read-only country reference set, loaded once at startup.
type Catalog struct {
	countries []Country
	byCode    map[string]int
}

var ErrEmptyCatalog = errors.New("country catalog is empty")

// Load parses a GeoJSON FeatureCollection file into a Catalog. The stable
// code for each feature is its WB_A3 property, falling back to the feature
// id; features without a usable code are skipped.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read countries file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse countries geojson: %w", err)
	}
	return FromFeatures(fc.Features)
}

// FromFeatures builds a Catalog from already-parsed GeoJSON features.
func FromFeatures(features []*geojson.Feature) (*Catalog, error) {
	c := &Catalog{byCode: make(map[string]int, len(features))}

	for _, f := range features {
		code := stringProp(f, "WB_A3")
		if code == "" {
			if id, ok := f.ID.(string); ok {
				code = id
			}
		}
		if code == "" || f.Geometry == nil {
			continue
		}
		if _, dup := c.byCode[code]; dup {
			continue
		}
		name := stringProp(f, "NAME")
		if name == "" {
			name = code
		}
		c.byCode[code] = len(c.countries)
		c.countries = append(c.countries, Country{
			Code:     code,
			Name:     name,
			Geometry: f.Geometry,
		})
	}

	if len(c.countries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// ByCode looks up a country by its stable code.
func (c *Catalog) ByCode(code string) (Country, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Country{}, false
	}
	return c.countries[i], true
}

// Random returns a uniformly random country.
func (c *Catalog) Random() Country {
	return c.countries[rand.IntN(len(c.countries))]
}

func (c *Catalog) Len() int {
	return len(c.countries)
}

// All returns the catalog contents in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) All() []Country {
	return c.countries
}

func stringProp(f *geojson.Feature, key string) string {
	v, ok := f.Properties[key].(string)
	if !ok {
		return ""
	}
	return v
}
