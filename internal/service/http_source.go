package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/odmap/backend/internal/domain"
)

// DefaultDataBaseURL hosts the five sample day files
const DefaultDataBaseURL = "https://raw.githubusercontent.com/Maplub/odsample/master"

// HTTPSource fetches day files over HTTP
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a source reading <baseURL>/<day file>
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultDataBaseURL
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the file location for a day
func (s *HTTPSource) URL(day int) (string, error) {
	d, err := domain.LookupDay(day)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + d.File, nil
}

// Fetch downloads and decodes the file of the given day
func (s *HTTPSource) Fetch(ctx context.Context, day int) ([]domain.TripRecord, error) {
	url, err := s.URL(day)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: %s returned status %d", url, resp.StatusCode)
	}

	records, err := DecodeTrips(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: failed to parse %s: %w", url, err)
	}

	return records, nil
}

// Health checks that the day 1 file is reachable
func (s *HTTPSource) Health(ctx context.Context) error {
	url, _ := s.URL(1)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("source: failed to create health request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("source: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source: health check returned status %d", resp.StatusCode)
	}

	return nil
}
