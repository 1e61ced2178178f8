package models

// OverviewStats holds nightly price statistics over a listing set.
// All fields are NaN for an empty set.
type OverviewStats struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	AvgPrice float64 `json:"avg_price"`
}

// RoomTypeStats holds price statistics for one room type.
type RoomTypeStats struct {
	RoomType string  `json:"room_type"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	AvgPrice float64 `json:"avg_price"`
	Count    int     `json:"count"`
}

// PriceDescription is the descriptive statistics row shown per room type.
type PriceDescription struct {
	RoomType string
	Count    int
	Mean     float64
	Std      float64
	Min      float64
	Q25      float64
	Median   float64
	Q75      float64
	Max      float64
}

// NeighbourhoodSummary feeds the map tooltip of one neighbourhood.
type NeighbourhoodSummary struct {
	Neighbourhood    string
	AvgPrice         float64
	AvgMinimumNights float64
	MaxPrice         float64
	Count            int
}

// OutlierResult is the display copy produced by the IQR filter.
type OutlierResult struct {
	Kept       []Listing
	Excluded   []Listing
	Q1         float64
	Q3         float64
	IQR        float64
	UpperLimit float64
}
