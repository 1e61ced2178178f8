package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"airbnb-compare/models"
	"airbnb-compare/storage"
	"airbnb-compare/utils"
)

// DashboardOptions configures a Dashboard.
type DashboardOptions struct {
	DataDir           string
	ListingsFile      string
	OutlierMultiplier float64
	HeatmapPrecision  uint
	RoomOrder         []string
}

// Dashboard recomputes every view of the selected cities from the files on
// disk. It holds no state between calls apart from the rate cache inside its
// converter.
type Dashboard struct {
	opts       DashboardOptions
	listings   storage.ListingSource
	boundaries storage.BoundarySource
	cleaner    *Cleaner
	converter  *CurrencyConverter
	logger     *utils.Logger
}

// NewDashboard wires the loaders, cleaner and converter together. converter
// may be nil when price conversion is never requested.
func NewDashboard(opts DashboardOptions, listings storage.ListingSource, boundaries storage.BoundarySource,
	converter *CurrencyConverter, logger *utils.Logger) *Dashboard {
	if opts.RoomOrder == nil {
		opts.RoomOrder = models.DefaultRoomOrder
	}
	return &Dashboard{
		opts:       opts,
		listings:   listings,
		boundaries: boundaries,
		cleaner:    NewCleaner(logger),
		converter:  converter,
		logger:     logger,
	}
}

// Cities lists the selectable cities.
func (d *Dashboard) Cities() ([]string, error) {
	return storage.ListCities(d.opts.DataDir)
}

// Compute builds one view per selected city. Placeholder and duplicate
// selections are skipped. Views are always returned; schema and conversion
// failures are additionally reported through the joined error.
func (d *Dashboard) Compute(ctx context.Context, sel models.Selection) ([]models.CityView, error) {
	seen := make(map[string]struct{}, len(sel.Cities))
	var views []models.CityView
	var errs []error

	for _, city := range sel.Cities {
		if city == "" || city == models.Placeholder {
			continue
		}
		if _, dup := seen[city]; dup {
			continue
		}
		seen[city] = struct{}{}

		view, err := d.ComputeCity(ctx, city, sel)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", city, err))
		}
		views = append(views, view)
	}
	return views, errors.Join(errs...)
}

// ComputeCity runs the full load, clean, convert and aggregate pass for one city.
func (d *Dashboard) ComputeCity(ctx context.Context, city string, sel models.Selection) (models.CityView, error) {
	view := models.CityView{City: city, Currency: "USD"}
	cityDir := filepath.Join(d.opts.DataDir, city)
	var errs []error

	fail := func(err error) {
		errs = append(errs, err)
		view.Errors = append(view.Errors, err.Error())
	}

	raw, err := d.listings.Read(filepath.Join(cityDir, d.opts.ListingsFile))
	switch {
	case errors.Is(err, storage.ErrMissingFile):
		d.logger.Warn("[dashboard] %s: listings file not found", city)
		view.Warnings = append(view.Warnings, fmt.Sprintf("No listings file found for %s.", city))
	case err != nil:
		fail(err)
	default:
		d.fillListings(ctx, &view, raw, sel, fail)
	}

	rows, fc, err := d.boundaries.Read(cityDir)
	switch {
	case err != nil:
		fail(err)
	case fc == nil:
		view.Warnings = append(view.Warnings, fmt.Sprintf("No geo data available for %s.", city))
	default:
		d.fillGeo(&view, rows, fc, sel)
	}

	return view, errors.Join(errs...)
}

func (d *Dashboard) fillListings(ctx context.Context, view *models.CityView, raw []models.RawListing,
	sel models.Selection, fail func(error)) {
	listings := d.cleaner.CleanListings(raw)
	view.HasListings = true

	if sel.UseEuro {
		if converted, err := d.convert(ctx, listings); err != nil {
			fail(err)
		} else {
			listings = converted
			view.Currency = "EUR"
		}
	}

	if len(listings) == 0 {
		view.Warnings = append(view.Warnings, fmt.Sprintf("No price data available for %s.", view.City))
	}

	view.Listings = listings
	view.Overview = ComputeOverview(listings)
	view.RoomStats = OrderRoomTypes(ComputeRoomTypeStats(listings), d.opts.RoomOrder)
	view.Describe = DescribeByRoomType(listings, d.opts.RoomOrder)
	view.Chart = FilterOutliers(listings, d.opts.OutlierMultiplier)
	view.MostExpensive = MostExpensive(listings)
	view.AvgMinimumNights = AverageMinimumNights(listings)

	if n := len(view.Chart.Excluded); n > 0 {
		d.logger.Info("[dashboard] %s: %d listings above %.2f hidden from charts", view.City, n, view.Chart.UpperLimit)
	}
}

func (d *Dashboard) convert(ctx context.Context, listings []models.Listing) ([]models.Listing, error) {
	if d.converter == nil {
		return nil, fmt.Errorf("currency: no converter configured: %w", ErrRateUnavailable)
	}
	return d.converter.Convert(ctx, listings, PriceField)
}

func (d *Dashboard) fillGeo(view *models.CityView, rows []models.Boundary, fc *models.FeatureCollection, sel models.Selection) {
	view.HasGeo = true
	view.GeoJSON = fc
	view.Boundaries = d.cleaner.CleanBoundaries(rows)
	if center, ok := GeoJSONCenter(fc); ok {
		view.Center = center
	}
	if !view.HasListings {
		return
	}
	view.Neighbourhoods = SummariseNeighbourhoods(view.Listings)
	if sel.ShowHeatmap {
		view.Heatmap = BuildHeatmap(view.Listings, d.opts.HeatmapPrecision)
	}
}
