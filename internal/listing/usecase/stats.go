package usecase

import (
	"math"
	"sort"

	"github.com/ymoumine/RentalAI/internal/listing/domain"
)

// ComputeStats counts every listing and averages the positive rents.
// Listings without a usable rent still count toward Count.
func ComputeStats(listings []domain.Listing) domain.Stats {
	prices := make([]float64, 0, len(listings))
	for _, l := range listings {
		if price, ok := usablePrice(l); ok {
			prices = append(prices, price)
		}
	}

	stats := domain.Stats{Count: len(listings)}
	if len(prices) == 0 {
		return stats
	}

	// Running mean; a plain sum overflows to +Inf for very large rents.
	var mean float64
	for i, p := range prices {
		mean += (p - mean) / float64(i+1)
	}
	stats.Mean = roundHalfUp(mean)

	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		lo, hi := prices[mid-1], prices[mid]
		stats.Median = roundHalfUp(lo + (hi-lo)/2)
	} else {
		stats.Median = roundHalfUp(prices[mid])
	}
	return stats
}

func usablePrice(l domain.Listing) (float64, bool) {
	rent := l.LeaseRentUnformattedValue
	if !rent.Valid || rent.Value <= 0 || math.IsInf(rent.Value, 0) || math.IsNaN(rent.Value) {
		return 0, false
	}
	return rent.Value, true
}

// roundHalfUp rounds to the nearest int, saturating at the int range.
func roundHalfUp(f float64) int {
	r := math.Floor(f + 0.5)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
