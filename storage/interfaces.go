package storage

import "airbnb-compare/models"

// ListingSource loads the raw rows of one listings file.
type ListingSource interface {
	Read(path string) ([]models.RawListing, error)
}

// BoundarySource loads the neighbourhood boundaries of one city directory.
// A nil collection with a nil error means the city has no geo data.
type BoundarySource interface {
	Read(cityDir string) ([]models.Boundary, *models.FeatureCollection, error)
}

// ReportSink persists the statistics of a compute pass.
type ReportSink interface {
	Write(path string, views []models.CityView) error
}
