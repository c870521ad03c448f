// Package tract reads Census TIGER/Line tract boundary shapefiles as
// GeoJSON features.
package tract

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/riskindex-cli/internal/geojson"
)

// ReadShapefile reads a TIGER/Line tract shapefile and returns its records
// as GeoJSON features. Every DBF attribute is carried as a feature property,
// so the GEOID column is available for joining. Records with a missing or
// unsupported shape are skipped; the count is returned alongside.
func ReadShapefile(path string) ([]geojson.Feature, int, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "tract: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// DBF field names are fixed-width and NUL-padded.
	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var features []geojson.Feature
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		g := shapeGeometry(shape)
		if g == nil {
			skipped++
			continue
		}
		raw, encErr := geomjson.Marshal(g)
		if encErr != nil {
			skipped++
			continue
		}

		props := make(map[string]any, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val != "" {
				props[name] = val
			}
		}

		features = append(features, geojson.Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   raw,
		})
	}

	return features, skipped, nil
}

// shapeGeometry converts a shapefile shape to a go-geom geometry. Tract
// boundary files carry polygons only; anything else is unsupported.
func shapeGeometry(shape shp.Shape) geom.T {
	p, ok := shape.(*shp.Polygon)
	if !ok || p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			continue
		}
		if err := mp.Push(poly); err != nil {
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
