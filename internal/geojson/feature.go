// Package geojson assembles and writes GeoJSON FeatureCollections of tract
// risk scores.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

// TractFIPSKey is the property the canonical tract identifier is written
// under in every output feature.
const TractFIPSKey = "TRACTFIPS"

// geoidAliases are the property names checked, in order, for a tract
// identifier on an incoming geometry feature. Census TIGER exports and
// third-party conversions disagree on the field name.
var geoidAliases = []string{"GEOID", "GEOID20", "TRACTCE", "geoid", "tract_fips"}

// Feature is a single GeoJSON feature. Geometry is carried opaquely; this
// tool never inspects or repairs it.
type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// ReadFeatureCollection decodes a FeatureCollection document.
func ReadFeatureCollection(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "geojson: decode feature collection")
	}
	if fc.Type != "FeatureCollection" {
		return nil, eris.Errorf("geojson: expected FeatureCollection, got %q", fc.Type)
	}
	return &fc, nil
}

// GeoID returns the first non-empty tract identifier found under the known
// property aliases, or "" when none is present.
func (f Feature) GeoID() string {
	for _, alias := range geoidAliases {
		v, ok := f.Properties[alias]
		if !ok {
			continue
		}
		if s := stringValue(v); s != "" {
			return s
		}
	}
	return ""
}

// stringValue renders a property value as a string. Shapefile-derived GEOID
// fields sometimes arrive as numbers.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
