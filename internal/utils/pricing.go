package utils

import "math"

// Per-passenger price estimation: a base fare plus a per-kilometer rate that
// drops on longer trips, rounded to the whole currency unit.
const (
	BaseFare = 2.5

	shortTripRate  = 0.125 // up to 100 km
	mediumTripRate = 0.10  // 100-300 km
	longTripRate   = 0.075 // beyond 300 km

	shortTripLimitKm  = 100
	mediumTripLimitKm = 300
)

// EstimatePrice converts a road distance into a whole-unit price quote. A
// non-positive distance means the routing lookup failed upstream; no estimate
// is produced for it, never a zero price.
func EstimatePrice(distanceKm int) (int, bool) {
	if distanceKm <= 0 {
		return 0, false
	}

	var rate float64
	switch {
	case distanceKm <= shortTripLimitKm:
		rate = shortTripRate
	case distanceKm <= mediumTripLimitKm:
		rate = mediumTripRate
	default:
		rate = longTripRate
	}

	total := BaseFare + float64(distanceKm)*rate
	return int(math.Round(total)), true
}
