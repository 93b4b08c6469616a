// Package pipeline turns the trip records of one day into chart-ready data:
// mode projection, hour filter, centroid, per-minute histogram and hexagon bins.
// Every function is pure; callers own fetching and caching.
package pipeline

import (
	"fmt"

	"github.com/odmap/backend/internal/domain"
)

type endpoint func(r domain.TripRecord) (lat, lon domain.NullFloat, ts domain.NullString)

func originOf(r domain.TripRecord) (domain.NullFloat, domain.NullFloat, domain.NullString) {
	return r.OriginLat, r.OriginLon, r.OriginTime
}

func destinationOf(r domain.TripRecord) (domain.NullFloat, domain.NullFloat, domain.NullString) {
	return r.DestLat, r.DestLon, r.DestTime
}

// Project maps records onto points for the given mode. Records missing any of
// lat, lon or time for an end are dropped for that end only. In
// Origin-Destination mode origins come first, followed by destinations.
func Project(records []domain.TripRecord, mode domain.Mode) ([]domain.ProjectedPoint, error) {
	switch mode {
	case domain.ModeOrigin:
		return projectEnd(records, originOf, nil)
	case domain.ModeDestination:
		return projectEnd(records, destinationOf, nil)
	case domain.ModeOriginDestination:
		out, err := projectEnd(records, originOf, make([]domain.ProjectedPoint, 0, 2*len(records)))
		if err != nil {
			return nil, err
		}
		return projectEnd(records, destinationOf, out)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
}

func projectEnd(records []domain.TripRecord, end endpoint, out []domain.ProjectedPoint) ([]domain.ProjectedPoint, error) {
	if out == nil {
		out = make([]domain.ProjectedPoint, 0, len(records))
	}
	for i, r := range records {
		lat, lon, ts := end(r)
		if !lat.Valid || !lon.Valid || !ts.Valid {
			continue
		}
		t, err := domain.ParseTimestamp(ts.Value)
		if err != nil {
			return nil, fmt.Errorf("pipeline: record %d: %w", i, err)
		}
		out = append(out, domain.ProjectedPoint{Lat: lat.Value, Lon: lon.Value, Time: t})
	}
	return out, nil
}
