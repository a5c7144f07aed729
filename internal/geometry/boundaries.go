package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
)

// excludedStateFIPS lists territory FIPS prefixes dropped from the national
// map, matching the published dashboard (Virgin Islands et al. skew the
// projection and have no presidential results).
var excludedStateFIPS = map[string]bool{
	"60": true, // AS
	"66": true, // GU
	"69": true, // MP
	"78": true, // VI
}

// CountyShape is one county boundary keyed by its five-digit FIPS code.
type CountyShape struct {
	FIPS    string
	Name    string
	Feature *geojson.Feature
}

// Boundaries indexes county boundary features by FIPS for the join-to-map
// step. Counties in the tabular data with no shape here are omitted from the
// map, never from tabular output.
type Boundaries struct {
	byFIPS map[string]CountyShape
	order  []string
}

// ParseCounties decodes a county GeoJSON FeatureCollection. The FIPS key is
// read from a GEOID property, or assembled from STATEFP+COUNTYFP when GEOID
// is absent. Territory features are dropped at load.
func ParseCounties(data []byte) (*Boundaries, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse county geojson: %w", err)
	}

	b := &Boundaries{byFIPS: make(map[string]CountyShape, len(fc.Features))}
	for _, f := range fc.Features {
		fips := stringProp(f, "GEOID")
		if fips == "" {
			fips = stringProp(f, "STATEFP") + stringProp(f, "COUNTYFP")
		}
		if len(fips) != 5 || excludedStateFIPS[fips[:2]] {
			continue
		}
		if _, dup := b.byFIPS[fips]; dup {
			continue
		}
		b.byFIPS[fips] = CountyShape{
			FIPS:    fips,
			Name:    stringProp(f, "NAME"),
			Feature: f,
		}
		b.order = append(b.order, fips)
	}
	return b, nil
}

// Lookup returns the shape for a FIPS code.
func (b *Boundaries) Lookup(fips string) (CountyShape, bool) {
	s, ok := b.byFIPS[fips]
	return s, ok
}

// Len reports how many county shapes were loaded.
func (b *Boundaries) Len() int { return len(b.byFIPS) }

// Collection rebuilds a FeatureCollection restricted to the given FIPS keys,
// with each feature's id set to the FIPS so the frontend can join colors to
// shapes. Keys without a shape are skipped. Order follows keys.
func (b *Boundaries) Collection(keys []string) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, k := range keys {
		s, ok := b.byFIPS[k]
		if !ok {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         s.FIPS,
			Geometry:   s.Feature.Geometry,
			Properties: map[string]interface{}{"NAME": s.Name},
		})
	}
	return fc
}

// StateLabel is a state postal abbreviation anchored at the state's centroid,
// used as a text overlay on the national map.
type StateLabel struct {
	Code string
	Lon  float64
	Lat  float64
}

// excludedStateCodes drops territories from the label overlay.
var excludedStateCodes = map[string]bool{"AS": true, "GU": true, "MP": true, "VI": true}

// ParseStateLabels decodes a state FeatureCollection and computes one
// centroid label per state. A state whose centroid cannot be computed is
// skipped; the map renders fine without its label.
func ParseStateLabels(data []byte) ([]StateLabel, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse state geojson: %w", err)
	}

	var labels []StateLabel
	for _, f := range fc.Features {
		code := stringProp(f, "STUSPS")
		if code == "" || excludedStateCodes[code] {
			continue
		}
		c, err := centroid(f.Geometry)
		if err != nil {
			continue
		}
		labels = append(labels, StateLabel{Code: code, Lon: c.X(), Lat: c.Y()})
	}
	return labels, nil
}

func centroid(g geom.T) (geom.Coord, error) {
	return xy.Centroid(g)
}

func stringProp(f *geojson.Feature, key string) string {
	if f.Properties == nil {
		return ""
	}
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}
