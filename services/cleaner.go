package services

import (
	"maps"

	"airbnb-compare/models"
	"airbnb-compare/storage"
	"airbnb-compare/utils"
)

// Cleaner transforms raw rows into clean, validated records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanListings drops rows without a price and backfills missing
// neighbourhood groups. Source order is kept; the result is a new slice.
func (c *Cleaner) CleanListings(raw []models.RawListing) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for _, r := range raw {
		if r.Price == nil {
			continue
		}
		result = append(result, models.Listing{
			NeighbourhoodGroup: BackfillGroup(r.NeighbourhoodGroup, r.Neighbourhood),
			Neighbourhood:      r.Neighbourhood,
			Latitude:           r.Latitude,
			Longitude:          r.Longitude,
			RoomType:           r.RoomType,
			Price:              *r.Price,
			MinimumNights:      r.MinimumNights,
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d without price)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// CleanBoundaries drops regions that have neither a group nor a name and
// backfills missing groups. The flattened property columns are updated too;
// input maps are not modified.
func (c *Cleaner) CleanBoundaries(rows []models.Boundary) []models.Boundary {
	result := make([]models.Boundary, 0, len(rows))

	for _, b := range rows {
		if b.NeighbourhoodGroup == "" && b.Neighbourhood == "" {
			continue
		}
		b.NeighbourhoodGroup = BackfillGroup(b.NeighbourhoodGroup, b.Neighbourhood)

		props := maps.Clone(b.Properties)
		if props == nil {
			props = make(map[string]any, 2)
		}
		props[storage.PropGroup] = b.NeighbourhoodGroup
		b.Properties = props

		result = append(result, b)
	}

	if dropped := len(rows) - len(result); dropped > 0 {
		c.logger.Warn("[cleaner] Dropped %d boundaries without group and name", dropped)
	}
	return result
}

// BackfillGroup returns group, or name when group is missing.
func BackfillGroup(group, name string) string {
	if group == "" {
		return name
	}
	return group
}

// BackfillListings applies BackfillGroup to every listing of a copy of ls.
func BackfillListings(ls []models.Listing) []models.Listing {
	out := make([]models.Listing, len(ls))
	for i, l := range ls {
		l.NeighbourhoodGroup = BackfillGroup(l.NeighbourhoodGroup, l.Neighbourhood)
		out[i] = l
	}
	return out
}
