package models

import "encoding/json"

// FeatureCollection is the neighbourhoods.geojson document. Geometries stay
// raw so that the core never depends on a particular geometry encoding.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one region of a FeatureCollection.
type Feature struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Boundary is a feature flattened into a table row. Properties holds the
// dotted keys ("properties.neighbourhood", "properties.meta.area", "type", ...).
type Boundary struct {
	NeighbourhoodGroup string
	Neighbourhood      string
	Properties         map[string]any
	Geometry           json.RawMessage
}

// HeatPoint is one heatmap sample. For per-listing points Count is 1 and
// Geohash is empty.
type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    float64 `json:"weight"`
	Geohash   string  `json:"geohash,omitempty"`
	Count     int     `json:"count"`
}
