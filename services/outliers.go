package services

import (
	"math"
	"sort"

	"airbnb-compare/models"
)

// DefaultOutlierMultiplier only trims the extreme tail of the price distribution.
const DefaultOutlierMultiplier = 40

// FilterOutliers keeps listings with price <= Q3 + multiplier*IQR. It works
// on a copy for charting and never touches the input. An empty input gives
// empty results and NaN bounds.
func FilterOutliers(listings []models.Listing, multiplier float64) models.OutlierResult {
	res := models.OutlierResult{
		Kept:     make([]models.Listing, 0, len(listings)),
		Excluded: []models.Listing{},
	}
	if len(listings) == 0 {
		nan := math.NaN()
		res.Q1, res.Q3, res.IQR, res.UpperLimit = nan, nan, nan, nan
		return res
	}

	prices := make([]float64, len(listings))
	for i, l := range listings {
		prices[i] = l.Price
	}
	sort.Float64s(prices)

	res.Q1 = quantile(prices, 0.25)
	res.Q3 = quantile(prices, 0.75)
	res.IQR = res.Q3 - res.Q1
	res.UpperLimit = res.Q3 + multiplier*res.IQR

	for _, l := range listings {
		if l.Price <= res.UpperLimit {
			res.Kept = append(res.Kept, l)
		} else {
			res.Excluded = append(res.Excluded, l)
		}
	}
	return res
}
