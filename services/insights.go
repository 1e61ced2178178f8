package services

import (
	"math"
	"sort"

	"airbnb-compare/models"
)

// ComputeOverview returns min, max and mean price. An empty set yields NaN
// for every field.
func ComputeOverview(listings []models.Listing) models.OverviewStats {
	if len(listings) == 0 {
		nan := math.NaN()
		return models.OverviewStats{MinPrice: nan, MaxPrice: nan, AvgPrice: nan}
	}

	stats := models.OverviewStats{MinPrice: listings[0].Price, MaxPrice: listings[0].Price}
	var total float64
	for _, l := range listings {
		total += l.Price
		stats.MinPrice = math.Min(stats.MinPrice, l.Price)
		stats.MaxPrice = math.Max(stats.MaxPrice, l.Price)
	}
	stats.AvgPrice = total / float64(len(listings))
	return stats
}

// ComputeRoomTypeStats groups listings by room type in order of first
// occurrence. An empty set yields an empty, non-nil slice.
func ComputeRoomTypeStats(listings []models.Listing) []models.RoomTypeStats {
	stats := make([]models.RoomTypeStats, 0, 4)
	totals := make([]float64, 0, 4)
	pos := make(map[string]int)

	for _, l := range listings {
		i, ok := pos[l.RoomType]
		if !ok {
			i = len(stats)
			pos[l.RoomType] = i
			stats = append(stats, models.RoomTypeStats{RoomType: l.RoomType, MinPrice: l.Price, MaxPrice: l.Price})
			totals = append(totals, 0)
		}
		s := &stats[i]
		s.Count++
		totals[i] += l.Price
		s.MinPrice = math.Min(s.MinPrice, l.Price)
		s.MaxPrice = math.Max(s.MaxPrice, l.Price)
	}

	for i := range stats {
		stats[i].AvgPrice = totals[i] / float64(stats[i].Count)
	}
	return stats
}

// OrderRoomTypes sorts stats by order; room types not listed keep their
// relative position after the known ones.
func OrderRoomTypes(stats []models.RoomTypeStats, order []string) []models.RoomTypeStats {
	return orderByRoomType(stats, func(s models.RoomTypeStats) string { return s.RoomType }, order)
}

func orderByRoomType[T any](items []T, key func(T) string, order []string) []T {
	rank := make(map[string]int, len(order))
	for i, rt := range order {
		rank[rt] = i
	}
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[key(out[i])]
		rj, jok := rank[key(out[j])]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

// DescribeByRoomType returns count, mean, sample std, min, quartiles and max
// of price per room type, in the order given.
func DescribeByRoomType(listings []models.Listing, order []string) []models.PriceDescription {
	groups := make(map[string][]float64)
	var seen []string
	for _, l := range listings {
		if _, ok := groups[l.RoomType]; !ok {
			seen = append(seen, l.RoomType)
		}
		groups[l.RoomType] = append(groups[l.RoomType], l.Price)
	}

	out := make([]models.PriceDescription, 0, len(seen))
	for _, rt := range seen {
		prices := groups[rt]
		sort.Float64s(prices)
		mean := meanOf(prices)
		out = append(out, models.PriceDescription{
			RoomType: rt,
			Count:    len(prices),
			Mean:     mean,
			Std:      sampleStd(prices, mean),
			Min:      prices[0],
			Q25:      quantile(prices, 0.25),
			Median:   quantile(prices, 0.5),
			Q75:      quantile(prices, 0.75),
			Max:      prices[len(prices)-1],
		})
	}
	return orderByRoomType(out, func(d models.PriceDescription) string { return d.RoomType }, order)
}

// SummariseNeighbourhoods aggregates price and minimum nights per
// neighbourhood, sorted by name. Listings without a neighbourhood are skipped.
func SummariseNeighbourhoods(listings []models.Listing) []models.NeighbourhoodSummary {
	type acc struct {
		price, nights, max float64
		n                  int
	}
	groups := make(map[string]*acc)
	for _, l := range listings {
		if l.Neighbourhood == "" {
			continue
		}
		a, ok := groups[l.Neighbourhood]
		if !ok {
			a = &acc{max: l.Price}
			groups[l.Neighbourhood] = a
		}
		a.n++
		a.price += l.Price
		a.nights += float64(l.MinimumNights)
		a.max = math.Max(a.max, l.Price)
	}

	out := make([]models.NeighbourhoodSummary, 0, len(groups))
	for name, a := range groups {
		out = append(out, models.NeighbourhoodSummary{
			Neighbourhood:    name,
			AvgPrice:         a.price / float64(a.n),
			AvgMinimumNights: a.nights / float64(a.n),
			MaxPrice:         a.max,
			Count:            a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Neighbourhood < out[j].Neighbourhood })
	return out
}

// MostExpensive returns the first listing with the highest price, or nil.
func MostExpensive(listings []models.Listing) *models.Listing {
	if len(listings) == 0 {
		return nil
	}
	best := 0
	for i, l := range listings {
		if l.Price > listings[best].Price {
			best = i
		}
	}
	top := listings[best]
	return &top
}

// AverageMinimumNights is NaN for an empty set.
func AverageMinimumNights(listings []models.Listing) float64 {
	if len(listings) == 0 {
		return math.NaN()
	}
	var total float64
	for _, l := range listings {
		total += float64(l.MinimumNights)
	}
	return total / float64(len(listings))
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

// sampleStd uses n-1 in the denominator; fewer than two values give NaN.
func sampleStd(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// quantile linearly interpolates between the closest ranks of sorted.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
