package service

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odmap/backend/internal/config"
	"github.com/odmap/backend/internal/repository/postgres"
)

// NewSource builds the configured record source wrapped in the day cache.
// The returned func releases any connection pool.
func NewSource(ctx context.Context, cfg *config.Config) (*CachedSource, func()) {
	var next RecordSource
	closeFn := func() {}

	switch cfg.Source {
	case config.SourcePostgres:
		pool, err := connectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			log.Println("Running with mock data only")
			next = postgres.NewMockRepository()
			break
		}
		log.Println("Connected to PostgreSQL")
		next = postgres.NewTripRepository(pool)
		closeFn = pool.Close
	case config.SourceMock:
		next = postgres.NewMockRepository()
	default:
		if cfg.Source != config.SourceHTTP {
			log.Printf("Warning: unknown SOURCE %q, using %s", cfg.Source, config.SourceHTTP)
		}
		next = NewHTTPSource(cfg.DataBaseURL, cfg.FetchTimeout)
	}

	return NewCachedSource(next, cfg.CacheSize), closeFn
}

func connectPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
