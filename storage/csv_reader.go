package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"airbnb-compare/models"
	"airbnb-compare/utils"
)

// requiredColumns must be present in every listings file; all aggregates
// depend on them.
var requiredColumns = []string{"price", "room_type"}

// ListingReader parses listings.csv files into raw rows.
type ListingReader struct {
	logger *utils.Logger
}

// NewListingReader creates a ListingReader with the given logger.
func NewListingReader(logger *utils.Logger) *ListingReader {
	return &ListingReader{logger: logger}
}

// Read loads the file at path. It returns an error wrapping ErrMissingFile
// when the file does not exist and ErrMalformedData when a required column is
// absent. Columns outside models.ListingColumns are ignored.
func (r *ListingReader) Read(path string) ([]models.RawListing, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("csv: %q: %w", path, ErrMissingFile)
		}
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := r.parse(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %q: %w", path, err)
	}
	r.logger.Debug("[loader] Read %d rows from %s", len(rows), path)
	return rows, nil
}

func (r *ListingReader) parse(in io.Reader) ([]models.RawListing, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", ErrMalformedData)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := columnIndex(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q: %w", col, ErrMalformedData)
		}
	}

	var rows []models.RawListing
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w: %v", line, ErrMalformedData, err)
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		rows = append(rows, models.RawListing{
			NeighbourhoodGroup: get("neighbourhood_group"),
			Neighbourhood:      get("neighbourhood"),
			Latitude:           r.parseFloat(get("latitude"), line),
			Longitude:          r.parseFloat(get("longitude"), line),
			RoomType:           get("room_type"),
			Price:              parsePrice(get("price")),
			MinimumNights:      r.parseInt(get("minimum_nights"), line),
		})
	}
	return rows, nil
}

// columnIndex maps the allowed column names to their position in the header.
func columnIndex(header []string) map[string]int {
	allowed := make(map[string]struct{}, len(models.ListingColumns))
	for _, c := range models.ListingColumns {
		allowed[c] = struct{}{}
	}

	idx := make(map[string]int, len(models.ListingColumns))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := allowed[h]; !ok {
			continue
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// parsePrice accepts plain numbers as well as "$1,234.00". Empty or
// unparsable cells yield nil.
func parsePrice(raw string) *float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (r *ListingReader) parseFloat(raw string, line int) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.logger.Debug("[loader] Line %d: unparsable number %q", line, raw)
		return 0
	}
	return v
}

func (r *ListingReader) parseInt(raw string, line int) int {
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// Integer columns with gaps are often exported as floats ("3.0").
	return int(r.parseFloat(raw, line))
}
