package postgres

import (
	"context"

	"github.com/odmap/backend/internal/domain"
)

// MockRepository implements domain.RecordSource for testing/demo mode.
// Day 1 holds three sample trips around Bangkok; other days are empty.
type MockRepository struct {
	days map[int][]domain.TripRecord
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		days: map[int][]domain.TripRecord{
			1: {
				{
					OriginLat: domain.Float(13.0), OriginLon: domain.Float(100.0), OriginTime: domain.String("2019-01-01 05:10:00"),
					DestLat: domain.Float(13.1), DestLon: domain.Float(100.1), DestTime: domain.String("2019-01-01 05:40:00"),
				},
				{
					DestLat: domain.Float(13.2), DestLon: domain.Float(100.2), DestTime: domain.String("2019-01-01 05:20:00"),
				},
				{
					OriginLat: domain.Float(13.3), OriginLon: domain.Float(100.3), OriginTime: domain.String("2019-01-01 06:00:00"),
					DestLat: domain.Float(13.4), DestLon: domain.Float(100.4), DestTime: domain.String("2019-01-01 06:05:00"),
				},
			},
		},
	}
}

// NewMockRepositoryWith serves the given records per day
func NewMockRepositoryWith(days map[int][]domain.TripRecord) *MockRepository {
	return &MockRepository{days: days}
}

// Fetch returns the fixture records of a day
func (r *MockRepository) Fetch(ctx context.Context, day int) ([]domain.TripRecord, error) {
	if _, err := domain.LookupDay(day); err != nil {
		return nil, err
	}
	return r.days[day], nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
