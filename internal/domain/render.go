package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Mode selects which end of each trip is projected onto the map
type Mode string

const (
	ModeOrigin            Mode = "Origin"
	ModeDestination       Mode = "Destination"
	ModeOriginDestination Mode = "Origin-Destination"
)

// Modes lists the selectable modes in display order
var Modes = []Mode{ModeOrigin, ModeDestination, ModeOriginDestination}

// ParseMode accepts a mode name regardless of case; "od" is short for Origin-Destination
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "origin":
		return ModeOrigin, nil
	case "destination":
		return ModeDestination, nil
	case "origin-destination", "od":
		return ModeOriginDestination, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Valid reports whether m is one of the canonical modes
func (m Mode) Valid() bool {
	for _, v := range Modes {
		if m == v {
			return true
		}
	}
	return false
}

// ProjectedPoint is a single map point after mode projection
type ProjectedPoint struct {
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Time time.Time `json:"time"`
}

// Centroid is the mean position of a point set. Both coordinates are NaN
// for an empty set and are encoded as JSON null.
type Centroid struct {
	Lat float64
	Lon float64
}

// Empty reports whether the centroid came from an empty point set
func (c Centroid) Empty() bool {
	return math.IsNaN(c.Lat) || math.IsNaN(c.Lon)
}

func (c Centroid) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}{finite(c.Lat), finite(c.Lon)})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MinutesPerHour is the number of histogram buckets
const MinutesPerHour = 60

// Histogram holds event counts per minute of the selected hour
type Histogram [MinutesPerHour]int

// Total returns the sum of all buckets
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// MinuteCount is one (minute, count) pair of the chart series
type MinuteCount struct {
	Minute int `json:"minute"`
	Count  int `json:"count"`
}

// Series returns the histogram as an x=minute, y=count series
func (h Histogram) Series() []MinuteCount {
	out := make([]MinuteCount, MinutesPerHour)
	for m, c := range h {
		out[m] = MinuteCount{Minute: m, Count: c}
	}
	return out
}

// Bounds is the lat/lon rectangle enclosing a point set
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
	SpanKm float64 `json:"span_km"`
}

// Hexagon layer defaults for the density map
const (
	DefaultMapStyle       = "mapbox://styles/mapbox/streets-v11"
	DefaultZoom           = 11
	DefaultPitch          = 50
	DefaultHexRadius      = 100
	DefaultElevationScale = 4
	DefaultElevationMax   = 1000
)

// MapView carries the initial view state and layer parameters for a Deck.gl HexagonLayer
type MapView struct {
	Style          string   `json:"map_style"`
	Center         Centroid `json:"center"`
	Zoom           float64  `json:"zoom"`
	Pitch          float64  `json:"pitch"`
	Radius         float64  `json:"radius"`
	ElevationScale float64  `json:"elevation_scale"`
	ElevationRange [2]int   `json:"elevation_range"`
	Extruded       bool     `json:"extruded"`
	Pickable       bool     `json:"pickable"`
	Bounds         *Bounds  `json:"bounds,omitempty"`
}

// NewMapView returns the fixed hexagon layer setup centred on c
func NewMapView(c Centroid) MapView {
	return MapView{
		Style:          DefaultMapStyle,
		Center:         c,
		Zoom:           DefaultZoom,
		Pitch:          DefaultPitch,
		Radius:         DefaultHexRadius,
		ElevationScale: DefaultElevationScale,
		ElevationRange: [2]int{0, DefaultElevationMax},
		Extruded:       true,
		Pickable:       true,
	}
}

// HexBin is one H3 cell of the density map
type HexBin struct {
	Cell  string  `json:"cell"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"`
}

// Query is one user interaction: the day, hour and mode selection
type Query struct {
	Day           int  `json:"day"`
	Hour          int  `json:"hour"`
	Mode          Mode `json:"mode"`
	ShowRaw       bool `json:"show_raw"`
	HexResolution int  `json:"-"`
}

// Validate checks day, hour and mode
func (q Query) Validate() error {
	if _, err := LookupDay(q.Day); err != nil {
		return err
	}
	if err := ValidateHour(q.Hour); err != nil {
		return err
	}
	if !q.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, q.Mode)
	}
	return nil
}

// Window formats the selected hour as "H:00 to H:59"
func (q Query) Window() string {
	return fmt.Sprintf("%d:00 to %d:59", q.Hour, q.Hour%24)
}

// RenderOutput is everything the front end needs to draw one interaction
type RenderOutput struct {
	Day       int              `json:"day"`
	DateLabel string           `json:"date_label"`
	Hour      int              `json:"hour"`
	Mode      Mode             `json:"mode"`
	Window    string           `json:"window"`
	Count     int              `json:"count"`
	Centroid  Centroid         `json:"centroid"`
	View      MapView          `json:"view"`
	Histogram Histogram        `json:"histogram"`
	HexBins   []HexBin         `json:"hex_bins"`
	Points    []ProjectedPoint `json:"points,omitempty"`
	Summary   string           `json:"summary"`
}
