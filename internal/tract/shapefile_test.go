package tract

import (
	"encoding/json"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
)

func squarePolygon() *shp.Polygon {
	return &shp.Polygon{
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
		},
	}
}

func TestShapeGeometryPolygon(t *testing.T) {
	g := shapeGeometry(squarePolygon())
	require.NotNil(t, g)

	data, err := geomjson.Marshal(g)
	require.NoError(t, err)

	var decoded struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "MultiPolygon", decoded.Type)
	assert.NotEmpty(t, decoded.Coordinates)
}

func TestShapeGeometryMultiPart(t *testing.T) {
	p := squarePolygon()
	p.NumParts = 2
	p.Parts = []int32{0, 5}
	p.Points = append(p.Points,
		shp.Point{X: 2, Y: 2}, shp.Point{X: 2, Y: 3}, shp.Point{X: 3, Y: 3},
		shp.Point{X: 3, Y: 2}, shp.Point{X: 2, Y: 2},
	)
	p.NumPoints = 10

	g := shapeGeometry(p)
	require.NotNil(t, g)
}

func TestShapeGeometryUnsupported(t *testing.T) {
	assert.Nil(t, shapeGeometry(nil))
	assert.Nil(t, shapeGeometry(&shp.PolyLine{}))
	assert.Nil(t, shapeGeometry(&shp.Polygon{}))
}

func TestReadShapefileMissing(t *testing.T) {
	_, _, err := ReadShapefile("does-not-exist.shp")
	assert.Error(t, err)
}
