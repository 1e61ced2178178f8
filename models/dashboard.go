package models

// Placeholder is the "nothing selected" entry of a city picker.
const Placeholder = "Bitte wählen …"

// Selection is the interactive session state passed into a compute pass.
type Selection struct {
	Cities      []string
	UseEuro     bool
	ShowHeatmap bool
}

// Currency returns the ISO code prices are shown in.
func (s Selection) Currency() string {
	if s.UseEuro {
		return "EUR"
	}
	return "USD"
}

// CityView is everything the presentation needs for one city.
type CityView struct {
	City     string
	Currency string

	HasListings bool
	Listings    []Listing
	Overview    OverviewStats
	RoomStats   []RoomTypeStats
	Describe    []PriceDescription
	Chart       OutlierResult

	MostExpensive    *Listing
	AvgMinimumNights float64

	HasGeo         bool
	Boundaries     []Boundary
	GeoJSON        *FeatureCollection
	Center         [2]float64
	Neighbourhoods []NeighbourhoodSummary
	Heatmap        []HeatPoint

	Warnings []string
	Errors   []string
}
