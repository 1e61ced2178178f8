package services

import (
	"encoding/json"
	"testing"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-compare/models"
)

func TestGeoJSONCenter(t *testing.T) {
	fc := &models.FeatureCollection{Features: []models.Feature{
		{Geometry: json.RawMessage(`{"type":"Polygon","coordinates":[[[13.0,52.0],[14.0,52.0],[14.0,53.0],[13.0,52.0]]]}`)},
		{Geometry: json.RawMessage(`{"type":"MultiPolygon","coordinates":[[[[12.0,52.5],[13.0,52.5],[13.0,52.8],[12.0,52.5]]]]}`)},
		{Geometry: json.RawMessage(`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[15.0,51.0]}]}`)},
		{Geometry: json.RawMessage(`null`)},
		{},
	}}

	center, ok := GeoJSONCenter(fc)
	require.True(t, ok)
	assert.InDelta(t, 52.0, center[0], 1e-9)
	assert.InDelta(t, 13.5, center[1], 1e-9)
}

func TestGeoJSONCenterWithoutPositions(t *testing.T) {
	_, ok := GeoJSONCenter(nil)
	assert.False(t, ok)

	_, ok = GeoJSONCenter(&models.FeatureCollection{Features: []models.Feature{{Geometry: json.RawMessage(`null`)}}})
	assert.False(t, ok)
}

func TestBuildHeatmapPerListing(t *testing.T) {
	listings := []models.Listing{
		{Latitude: 52.52, Longitude: 13.40, Price: 100},
		{Price: 50},
		{Latitude: 52.50, Longitude: 13.30, Price: 80},
	}

	points := BuildHeatmap(listings, 0)
	require.Len(t, points, 2)
	assert.Equal(t, models.HeatPoint{Latitude: 52.52, Longitude: 13.40, Weight: 100, Count: 1}, points[0])
	assert.Equal(t, 80.0, points[1].Weight)
}

func TestBuildHeatmapGeohashCells(t *testing.T) {
	listings := []models.Listing{
		{Latitude: 52.52001, Longitude: 13.40001, Price: 100},
		{Latitude: 52.52002, Longitude: 13.40002, Price: 200},
		{Latitude: 48.85, Longitude: 2.35, Price: 90},
	}

	points := BuildHeatmap(listings, 5)
	require.Len(t, points, 2)

	berlin := points[0]
	assert.Equal(t, geohash.EncodeWithPrecision(52.52001, 13.40001, 5), berlin.Geohash)
	assert.Equal(t, 2, berlin.Count)
	assert.Equal(t, 150.0, berlin.Weight)
	assert.InDelta(t, 52.52, berlin.Latitude, 0.05)
	assert.InDelta(t, 13.40, berlin.Longitude, 0.05)

	assert.Equal(t, 1, points[1].Count)
}

func TestBuildHeatmapEmpty(t *testing.T) {
	assert.Empty(t, BuildHeatmap(nil, 0))
	assert.Empty(t, BuildHeatmap(nil, 6))
}
