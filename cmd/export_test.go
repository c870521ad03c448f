package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTractsGeoJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracts.geojson")
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"GEOID":"06037101110"},"geometry":null}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	features, err := readTracts(path)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "06037101110", features[0].GeoID())
}

func TestReadTractsMissingFile(t *testing.T) {
	_, err := readTracts(filepath.Join(t.TempDir(), "nope.geojson"))
	assert.Error(t, err)
}

func TestReadTractsNotACollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracts.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Feature"}`), 0644))

	_, err := readTracts(path)
	assert.Error(t, err)
}

func TestReadTractsShapefileMissing(t *testing.T) {
	_, err := readTracts(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestPrintSampleBounds(t *testing.T) {
	// Must not panic when fewer features exist than the sample size.
	printSample(nil, 2)
}
