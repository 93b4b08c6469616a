package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidDay   = errors.New("day must be between 1 and 5")
	ErrInvalidHour  = errors.New("hour must be between 0 and 23")
	ErrInvalidMode  = errors.New("mode must be one of Origin, Destination, Origin-Destination")
	ErrBadTimestamp = errors.New("unparseable timestamp")
)

// RecordSource defines where trip records for a day come from.
// Implementations are the remote CSV files, PostgreSQL and an in-memory mock.
type RecordSource interface {
	// Fetch returns every trip record of the given day, in file order
	Fetch(ctx context.Context, day int) ([]TripRecord, error)
}
