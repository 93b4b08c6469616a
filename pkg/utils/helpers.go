package utils

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius
const EarthRadiusKm = 6371

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
