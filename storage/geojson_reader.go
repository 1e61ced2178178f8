package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"airbnb-compare/models"
	"airbnb-compare/utils"
)

// Flattened property keys of the two grouping fields.
const (
	PropGroup = "properties.neighbourhood_group"
	PropName  = "properties.neighbourhood"
)

// BoundaryReader loads neighbourhood boundary documents.
type BoundaryReader struct {
	fileName string
	logger   *utils.Logger
}

// NewBoundaryReader creates a BoundaryReader looking for fileName inside each
// city directory.
func NewBoundaryReader(fileName string, logger *utils.Logger) *BoundaryReader {
	return &BoundaryReader{fileName: fileName, logger: logger}
}

// Read parses the boundary file of cityDir. A missing file is not an error:
// it returns nil rows and a nil collection.
func (r *BoundaryReader) Read(cityDir string) ([]models.Boundary, *models.FeatureCollection, error) {
	path := filepath.Join(cityDir, r.fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("[loader] No geo data at %s", path)
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("geojson: read %q: %w", path, err)
	}

	var fc models.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, nil, fmt.Errorf("geojson: %q: %w: %v", path, ErrMalformedData, err)
	}

	rows := make([]models.Boundary, 0, len(fc.Features))
	for _, f := range fc.Features {
		props := FlattenFeature(f)
		rows = append(rows, models.Boundary{
			NeighbourhoodGroup: stringProp(props[PropGroup]),
			Neighbourhood:      stringProp(props[PropName]),
			Properties:         props,
			Geometry:           f.Geometry,
		})
	}
	r.logger.Debug("[loader] Read %d features from %s", len(rows), path)
	return rows, &fc, nil
}

// FlattenFeature turns a feature into one flat row: top-level scalars keep
// their name, properties become "properties.<key>" and nested objects are
// joined with dots. The geometry is left out.
func FlattenFeature(f models.Feature) map[string]any {
	out := make(map[string]any, len(f.Properties)+2)
	if f.Type != "" {
		out["type"] = f.Type
	}
	if f.ID != nil {
		out["id"] = f.ID
	}
	flatten("properties", f.Properties, out)
	return out
}

func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := prefix + "." + k
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

func stringProp(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
