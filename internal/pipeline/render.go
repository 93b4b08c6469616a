package pipeline

import (
	"fmt"

	"github.com/odmap/backend/internal/domain"
)

// Render runs one interaction over the records of the selected day:
// project by mode, keep the selected hour, then aggregate.
func Render(records []domain.TripRecord, q domain.Query) (domain.RenderOutput, error) {
	if err := q.Validate(); err != nil {
		return domain.RenderOutput{}, err
	}
	day, _ := domain.LookupDay(q.Day)

	projected, err := Project(records, q.Mode)
	if err != nil {
		return domain.RenderOutput{}, err
	}
	filtered := FilterHour(projected, q.Hour)

	centroid := Centroid(filtered)
	view := domain.NewMapView(centroid)
	view.Bounds = BoundsOf(filtered)

	out := domain.RenderOutput{
		Day:       q.Day,
		DateLabel: day.Label,
		Hour:      q.Hour,
		Mode:      q.Mode,
		Window:    q.Window(),
		Count:     len(filtered),
		Centroid:  centroid,
		View:      view,
		Histogram: MinuteHistogram(filtered, q.Hour),
		HexBins:   HexBins(filtered, q.HexResolution),
		Summary:   fmt.Sprintf("Total Data: %d rows", len(filtered)),
	}
	if q.ShowRaw {
		out.Points = filtered
	}
	return out, nil
}
