package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/odmap/backend/internal/domain"
	"github.com/odmap/backend/internal/pipeline"
)

// RenderService runs the pipeline for one interaction at a time
type RenderService struct {
	source RecordSource
	hexRes int
}

// NewRenderService creates a new render service
func NewRenderService(source RecordSource, hexRes int) *RenderService {
	return &RenderService{
		source: source,
		hexRes: hexRes,
	}
}

// Render validates the query, loads the day and computes every chart dataset
func (s *RenderService) Render(ctx context.Context, q domain.Query) (domain.RenderOutput, error) {
	if err := q.Validate(); err != nil {
		return domain.RenderOutput{}, err
	}
	if q.HexResolution == 0 {
		q.HexResolution = s.hexRes
	}

	start := time.Now()
	records, err := s.source.Fetch(ctx, q.Day)
	if err != nil {
		return domain.RenderOutput{}, &SourceError{Day: q.Day, Err: err}
	}

	out, err := pipeline.Render(records, q)
	if err != nil {
		return domain.RenderOutput{}, err
	}

	log.Printf("render: day=%d hour=%d mode=%s rows=%d (%v)", q.Day, q.Hour, q.Mode, out.Count, time.Since(start))
	return out, nil
}

// Histogram returns only the per-minute series of an interaction
func (s *RenderService) Histogram(ctx context.Context, q domain.Query) (domain.Histogram, error) {
	q.ShowRaw = false
	out, err := s.Render(ctx, q)
	if err != nil {
		return domain.Histogram{}, err
	}
	return out.Histogram, nil
}

// Days lists the selectable days
func (s *RenderService) Days() []domain.Day {
	return domain.Days
}

// SourceError marks a failure to load a day's records
type SourceError struct {
	Day int
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load day %d: %v", e.Day, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
