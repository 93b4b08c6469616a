package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TripRecord is one row of a day file: the origin and destination of a trip
type TripRecord struct {
	OriginLat  NullFloat  `csv:"latstartl" json:"latstartl"`
	OriginLon  NullFloat  `csv:"lonstartl" json:"lonstartl"`
	OriginTime NullString `csv:"timestart" json:"timestart"`
	DestLat    NullFloat  `csv:"latstop" json:"latstop"`
	DestLon    NullFloat  `csv:"lonstop" json:"lonstop"`
	DestTime   NullString `csv:"timestop" json:"timestop"`
}

// TripColumns lists the header columns a day file must carry
var TripColumns = []string{"latstartl", "lonstartl", "timestart", "latstop", "lonstop", "timestop"}

// nullMarkers are the cell values treated as missing data
var nullMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"nat":  true,
}

func isNullCell(s string) bool {
	return nullMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// NullFloat is a coordinate cell that may be missing
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *NullFloat) UnmarshalText(b []byte) error {
	s := string(b)
	if isNullCell(s) {
		*f = NullFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("domain: invalid coordinate %q: %w", s, err)
	}
	*f = NullFloat{Value: v, Valid: true}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (f NullFloat) MarshalText() ([]byte, error) {
	if !f.Valid {
		return []byte{}, nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// NullString is a timestamp cell kept unparsed until a projection needs it
type NullString struct {
	Value string
	Valid bool
}

// String returns a valid NullString
func String(s string) NullString {
	return NullString{Value: s, Valid: true}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *NullString) UnmarshalText(b []byte) error {
	v := string(b)
	if isNullCell(v) {
		*s = NullString{}
		return nil
	}
	*s = NullString{Value: strings.TrimSpace(v), Valid: true}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (s NullString) MarshalText() ([]byte, error) {
	return []byte(s.Value), nil
}

// timestampLayouts are tried in order by ParseTimestamp
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
}

// ParseTimestamp parses a trip timestamp. Wall-clock hour and minute are kept
// as written; zoned layouts keep their own offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}
