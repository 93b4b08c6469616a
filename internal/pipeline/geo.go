package pipeline

import (
	"sort"

	"github.com/golang/geo/s2"
	"github.com/uber/h3-go/v3"

	"github.com/odmap/backend/internal/domain"
	"github.com/odmap/backend/pkg/utils"
)

// DefaultHexResolution is the H3 resolution used when none (0) is configured.
// Resolution 9 cells have ~174 m edges, close to the 100 m layer radius.
const DefaultHexResolution = 9

// HexBins aggregates points into H3 cells, largest counts first
func HexBins(points []domain.ProjectedPoint, res int) []domain.HexBin {
	if res <= 0 || res > 15 {
		res = DefaultHexResolution
	}

	counts := make(map[h3.H3Index]int)
	for _, p := range points {
		cell := h3.FromGeo(h3.GeoCoord{Latitude: p.Lat, Longitude: p.Lon}, res)
		counts[cell]++
	}

	bins := make([]domain.HexBin, 0, len(counts))
	for cell, n := range counts {
		c := h3.ToGeo(cell)
		bins = append(bins, domain.HexBin{
			Cell:  h3.ToString(cell),
			Lat:   c.Latitude,
			Lon:   c.Longitude,
			Count: n,
		})
	}

	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Cell < bins[j].Cell
	})
	return bins
}

// BoundsOf returns the rectangle enclosing all points, or nil for an empty set
func BoundsOf(points []domain.ProjectedPoint) *domain.Bounds {
	if len(points) == 0 {
		return nil
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Lon))
	}

	lo, hi := rect.Lo(), rect.Hi()
	b := &domain.Bounds{
		MinLat: lo.Lat.Degrees(),
		MinLon: lo.Lng.Degrees(),
		MaxLat: hi.Lat.Degrees(),
		MaxLon: hi.Lng.Degrees(),
	}
	b.SpanKm = utils.RoundTo(lo.Distance(hi).Radians()*utils.EarthRadiusKm, 3)
	return b
}
