package pipeline

import "github.com/odmap/backend/internal/domain"

// FilterHour keeps the points whose timestamp falls in the given hour of day
func FilterHour(points []domain.ProjectedPoint, hour int) []domain.ProjectedPoint {
	out := make([]domain.ProjectedPoint, 0, len(points))
	for _, p := range points {
		if p.Time.Hour() == hour {
			out = append(out, p)
		}
	}
	return out
}

// inHourWindow is the half-open range check the histogram applies on top of FilterHour.
// For integer hours it agrees with Time.Hour() == hour.
func inHourWindow(p domain.ProjectedPoint, hour int) bool {
	h := p.Time.Hour()
	return h >= hour && h < hour+1
}
