package storage

import (
	"errors"
	"fmt"
	"os"
	"sort"
)

// ListCities returns the sorted names of the city directories below dataDir.
// A missing data directory yields an empty list.
func ListCities(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list cities in %q: %w", dataDir, err)
	}

	var cities []string
	for _, e := range entries {
		if e.IsDir() {
			cities = append(cities, e.Name())
		}
	}
	sort.Strings(cities)
	return cities, nil
}
