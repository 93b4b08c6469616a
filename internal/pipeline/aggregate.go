package pipeline

import (
	"math"

	"github.com/odmap/backend/internal/domain"
)

// Centroid returns the arithmetic mean of latitude and longitude.
// An empty set yields NaN for both.
func Centroid(points []domain.ProjectedPoint) domain.Centroid {
	if len(points) == 0 {
		return domain.Centroid{Lat: math.NaN(), Lon: math.NaN()}
	}

	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}

	n := float64(len(points))
	return domain.Centroid{Lat: lat / n, Lon: lon / n}
}

// MinuteHistogram counts points per minute within [hour, hour+1)
func MinuteHistogram(points []domain.ProjectedPoint, hour int) domain.Histogram {
	var h domain.Histogram
	for _, p := range points {
		if !inHourWindow(p, hour) {
			continue
		}
		h[p.Time.Minute()]++
	}
	return h
}
