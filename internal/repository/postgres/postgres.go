package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odmap/backend/internal/domain"
)

// TripRepository implements domain.RecordSource over a trip_records table
// loaded with the same columns as the day files.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new PostgreSQL record source
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// Fetch retrieves every trip of a day in load order
func (r *TripRepository) Fetch(ctx context.Context, day int) ([]domain.TripRecord, error) {
	if _, err := domain.LookupDay(day); err != nil {
		return nil, err
	}

	query := `
		SELECT latstartl, lonstartl, timestart::text,
			   latstop, lonstop, timestop::text
		FROM trip_records
		WHERE day = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trip records: %w", err)
	}
	defer rows.Close()

	var results []domain.TripRecord
	for rows.Next() {
		var (
			oLat, oLon, dLat, dLon *float64
			oTime, dTime           *string
		)
		if err := rows.Scan(&oLat, &oLon, &oTime, &dLat, &dLon, &dTime); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan trip row: %w", err)
		}
		results = append(results, domain.TripRecord{
			OriginLat:  nullFloat(oLat),
			OriginLon:  nullFloat(oLon),
			OriginTime: nullString(oTime),
			DestLat:    nullFloat(dLat),
			DestLon:    nullFloat(dLon),
			DestTime:   nullString(dTime),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read trip rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *TripRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func nullFloat(v *float64) domain.NullFloat {
	if v == nil {
		return domain.NullFloat{}
	}
	// NaN stored as a double is still missing data
	if math.IsNaN(*v) {
		return domain.NullFloat{}
	}
	return domain.Float(*v)
}

func nullString(v *string) domain.NullString {
	if v == nil {
		return domain.NullString{}
	}
	var s domain.NullString
	_ = s.UnmarshalText([]byte(*v))
	return s
}
