package services

import (
	"encoding/json"
	"math"

	"github.com/mmcloughlin/geohash"

	"airbnb-compare/models"
)

// GeoJSONCenter returns the [lat, lon] centre of the bounding box of every
// position in the collection. ok is false when no position was found.
func GeoJSONCenter(fc *models.FeatureCollection) (center [2]float64, ok bool) {
	if fc == nil {
		return center, false
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)

	visit := func(lon, lat float64) {
		ok = true
		minLat, maxLat = math.Min(minLat, lat), math.Max(maxLat, lat)
		minLon, maxLon = math.Min(minLon, lon), math.Max(maxLon, lon)
	}
	for _, f := range fc.Features {
		if len(f.Geometry) == 0 {
			continue
		}
		var g any
		if err := json.Unmarshal(f.Geometry, &g); err != nil {
			continue
		}
		walkPositions(g, visit)
	}

	if !ok {
		return center, false
	}
	return [2]float64{(minLat + maxLat) / 2, (minLon + maxLon) / 2}, true
}

// walkPositions calls visit for every [lon, lat, ...] array below v,
// whatever the geometry type.
func walkPositions(v any, visit func(lon, lat float64)) {
	switch t := v.(type) {
	case map[string]any:
		walkPositions(t["coordinates"], visit)
		walkPositions(t["geometries"], visit)
	case []any:
		if len(t) >= 2 {
			lon, lok := t[0].(float64)
			lat, aok := t[1].(float64)
			if lok && aok {
				visit(lon, lat)
				return
			}
		}
		for _, e := range t {
			walkPositions(e, visit)
		}
	}
}

// BuildHeatmap returns heatmap samples weighted by price. With precision 0
// every listing is one point; otherwise listings are merged per geohash cell
// of that precision, placed at the cell centre with the mean price as weight.
// Listings without coordinates are skipped.
func BuildHeatmap(listings []models.Listing, precision uint) []models.HeatPoint {
	points := make([]models.HeatPoint, 0, len(listings))
	if precision == 0 {
		for _, l := range listings {
			if !hasCoordinates(l) {
				continue
			}
			points = append(points, models.HeatPoint{Latitude: l.Latitude, Longitude: l.Longitude, Weight: l.Price, Count: 1})
		}
		return points
	}

	pos := make(map[string]int)
	totals := make([]float64, 0)
	for _, l := range listings {
		if !hasCoordinates(l) {
			continue
		}
		hash := geohash.EncodeWithPrecision(l.Latitude, l.Longitude, precision)
		i, ok := pos[hash]
		if !ok {
			i = len(points)
			pos[hash] = i
			lat, lon := geohash.DecodeCenter(hash)
			points = append(points, models.HeatPoint{Latitude: lat, Longitude: lon, Geohash: hash})
			totals = append(totals, 0)
		}
		points[i].Count++
		totals[i] += l.Price
	}
	for i := range points {
		points[i].Weight = totals[i] / float64(points[i].Count)
	}
	return points
}

func hasCoordinates(l models.Listing) bool {
	return l.Latitude != 0 || l.Longitude != 0
}
