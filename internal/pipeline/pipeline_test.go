package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odmap/backend/internal/domain"
)

func trip(oLat, oLon float64, oTime string, dLat, dLon float64, dTime string) domain.TripRecord {
	return domain.TripRecord{
		OriginLat:  domain.Float(oLat),
		OriginLon:  domain.Float(oLon),
		OriginTime: domain.String(oTime),
		DestLat:    domain.Float(dLat),
		DestLon:    domain.Float(dLon),
		DestTime:   domain.String(dTime),
	}
}

// scenarioRecords is the three-trip example: R2 has no origin, R3 is outside hour 5
func scenarioRecords() []domain.TripRecord {
	r2 := trip(0, 0, "", 13.2, 100.2, "2019-01-01T05:20:00")
	r2.OriginLat = domain.NullFloat{}
	r2.OriginLon = domain.NullFloat{}
	r2.OriginTime = domain.NullString{}

	return []domain.TripRecord{
		trip(13.0, 100.0, "2019-01-01T05:10:00", 13.1, 100.1, "2019-01-01T05:40:00"),
		r2,
		trip(13.3, 100.3, "2019-01-01T06:00:00", 13.4, 100.4, "2019-01-01T06:05:00"),
	}
}

func at(h, m int) time.Time {
	return time.Date(2019, 1, 1, h, m, 0, 0, time.UTC)
}

func TestProjectOrigin(t *testing.T) {
	points, err := Project(scenarioRecords(), domain.ModeOrigin)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, domain.ProjectedPoint{Lat: 13.0, Lon: 100.0, Time: at(5, 10)}, points[0])
	assert.Equal(t, domain.ProjectedPoint{Lat: 13.3, Lon: 100.3, Time: at(6, 0)}, points[1])
}

func TestProjectDestination(t *testing.T) {
	points, err := Project(scenarioRecords(), domain.ModeDestination)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 13.1, points[0].Lat)
	assert.Equal(t, 13.2, points[1].Lat)
	assert.Equal(t, 13.4, points[2].Lat)
}

func TestProjectOriginDestinationConcatenates(t *testing.T) {
	records := scenarioRecords()

	origins, err := Project(records, domain.ModeOrigin)
	require.NoError(t, err)
	dests, err := Project(records, domain.ModeDestination)
	require.NoError(t, err)
	both, err := Project(records, domain.ModeOriginDestination)
	require.NoError(t, err)

	require.Len(t, both, len(origins)+len(dests))
	assert.Equal(t, origins, both[:len(origins)])
	assert.Equal(t, dests, both[len(origins):])
}

func TestProjectDropsEachEndIndependently(t *testing.T) {
	noDest := trip(13.0, 100.0, "2019-01-01 08:00:00", 0, 0, "2019-01-01 08:30:00")
	noDest.DestLon = domain.NullFloat{}

	noOriginTime := trip(13.5, 100.5, "", 13.6, 100.6, "2019-01-01 09:15:00")
	noOriginTime.OriginTime = domain.NullString{}

	points, err := Project([]domain.TripRecord{noDest, noOriginTime}, domain.ModeOriginDestination)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 13.0, points[0].Lat)
	assert.Equal(t, 13.6, points[1].Lat)
	for _, p := range points {
		assert.False(t, math.IsNaN(p.Lat))
		assert.False(t, math.IsNaN(p.Lon))
		assert.False(t, p.Time.IsZero())
	}
}

func TestProjectBadTimestamp(t *testing.T) {
	records := []domain.TripRecord{
		trip(13.0, 100.0, "2019-01-01 05:10:00", 13.1, 100.1, "yesterday-ish"),
	}

	// The destination column is not read in Origin mode
	_, err := Project(records, domain.ModeOrigin)
	require.NoError(t, err)

	_, err = Project(records, domain.ModeDestination)
	assert.ErrorIs(t, err, domain.ErrBadTimestamp)

	_, err = Project(records, domain.ModeOriginDestination)
	assert.ErrorIs(t, err, domain.ErrBadTimestamp)
}

func TestProjectUnknownMode(t *testing.T) {
	_, err := Project(scenarioRecords(), domain.Mode("Pickup"))
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestFilterHour(t *testing.T) {
	points := []domain.ProjectedPoint{
		{Lat: 1, Time: at(5, 59)},
		{Lat: 2, Time: at(6, 0)},
		{Lat: 3, Time: at(4, 59)},
		{Lat: 4, Time: at(5, 0)},
	}

	filtered := FilterHour(points, 5)
	require.Len(t, filtered, 2)
	assert.Equal(t, 1.0, filtered[0].Lat)
	assert.Equal(t, 4.0, filtered[1].Lat)

	// Idempotent
	assert.Equal(t, filtered, FilterHour(filtered, 5))

	assert.Empty(t, FilterHour(points, 23))
}

func TestHourWindowAgreesWithHourEquality(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for h := 0; h < 24; h++ {
			p := domain.ProjectedPoint{Time: at(h, 30)}
			assert.Equal(t, p.Time.Hour() == hour, inHourWindow(p, hour), "hour=%d h=%d", hour, h)
		}
	}
}

func TestCentroid(t *testing.T) {
	empty := Centroid(nil)
	assert.True(t, math.IsNaN(empty.Lat))
	assert.True(t, math.IsNaN(empty.Lon))
	assert.True(t, empty.Empty())

	single := Centroid([]domain.ProjectedPoint{{Lat: 10, Lon: 20}})
	assert.Equal(t, domain.Centroid{Lat: 10, Lon: 20}, single)

	pair := Centroid([]domain.ProjectedPoint{{Lat: 10, Lon: 20}, {Lat: 12, Lon: 30}})
	assert.InDelta(t, 11.0, pair.Lat, 1e-12)
	assert.InDelta(t, 25.0, pair.Lon, 1e-12)
}

func TestMinuteHistogram(t *testing.T) {
	points := []domain.ProjectedPoint{
		{Time: at(5, 0)},
		{Time: at(5, 0)},
		{Time: at(5, 59)},
		{Time: at(6, 30)},
	}

	hist := MinuteHistogram(points, 5)
	assert.Len(t, hist, 60)
	assert.Equal(t, 2, hist[0])
	assert.Equal(t, 1, hist[59])
	assert.Equal(t, 0, hist[30])
	assert.Equal(t, len(FilterHour(points, 5)), hist.Total())

	assert.Equal(t, 0, MinuteHistogram(nil, 5).Total())
}

func TestHexBins(t *testing.T) {
	points := []domain.ProjectedPoint{
		{Lat: 13.7563, Lon: 100.5018},
		{Lat: 13.7563, Lon: 100.5018},
		{Lat: 13.7563, Lon: 100.5018},
		{Lat: 14.3532, Lon: 100.5689},
	}

	bins := HexBins(points, DefaultHexResolution)
	require.Len(t, bins, 2)
	assert.Equal(t, 3, bins[0].Count)
	assert.Equal(t, 1, bins[1].Count)
	assert.InDelta(t, 13.7563, bins[0].Lat, 0.01)
	assert.InDelta(t, 100.5018, bins[0].Lon, 0.01)
	assert.NotEmpty(t, bins[0].Cell)

	total := 0
	for _, b := range HexBins(points, 0) {
		total += b.Count
	}
	assert.Equal(t, len(points), total)

	assert.Empty(t, HexBins(nil, DefaultHexResolution))
}

func TestBoundsOf(t *testing.T) {
	assert.Nil(t, BoundsOf(nil))

	b := BoundsOf([]domain.ProjectedPoint{
		{Lat: 13.0, Lon: 100.4},
		{Lat: 13.4, Lon: 100.0},
		{Lat: 13.2, Lon: 100.2},
	})
	require.NotNil(t, b)
	assert.InDelta(t, 13.0, b.MinLat, 1e-9)
	assert.InDelta(t, 13.4, b.MaxLat, 1e-9)
	assert.InDelta(t, 100.0, b.MinLon, 1e-9)
	assert.InDelta(t, 100.4, b.MaxLon, 1e-9)
	assert.Greater(t, b.SpanKm, 60.0)
	assert.Less(t, b.SpanKm, 70.0)
}

func TestRenderScenario(t *testing.T) {
	out, err := Render(scenarioRecords(), domain.Query{
		Day:     1,
		Hour:    5,
		Mode:    domain.ModeOriginDestination,
		ShowRaw: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "1 January 2019", out.DateLabel)
	assert.Equal(t, "5:00 to 5:59", out.Window)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "Total Data: 3 rows", out.Summary)

	require.Len(t, out.Points, 3)
	assert.Equal(t, domain.ProjectedPoint{Lat: 13.0, Lon: 100.0, Time: at(5, 10)}, out.Points[0])
	assert.Equal(t, domain.ProjectedPoint{Lat: 13.1, Lon: 100.1, Time: at(5, 40)}, out.Points[1])
	assert.Equal(t, domain.ProjectedPoint{Lat: 13.2, Lon: 100.2, Time: at(5, 20)}, out.Points[2])

	assert.InDelta(t, 13.1, out.Centroid.Lat, 1e-9)
	assert.InDelta(t, 100.1, out.Centroid.Lon, 1e-9)
	assert.Equal(t, out.Centroid, out.View.Center)
	assert.Equal(t, float64(domain.DefaultZoom), out.View.Zoom)
	assert.Equal(t, float64(domain.DefaultPitch), out.View.Pitch)

	for m, c := range out.Histogram {
		switch m {
		case 10, 20, 40:
			assert.Equal(t, 1, c, "minute %d", m)
		default:
			assert.Equal(t, 0, c, "minute %d", m)
		}
	}
}

func TestRenderEmptyHour(t *testing.T) {
	out, err := Render(scenarioRecords(), domain.Query{Day: 2, Hour: 22, Mode: domain.ModeOrigin, ShowRaw: true})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Count)
	assert.True(t, out.Centroid.Empty())
	assert.Equal(t, 0, out.Histogram.Total())
	assert.Empty(t, out.Points)
	assert.Empty(t, out.HexBins)
	assert.Nil(t, out.View.Bounds)
	assert.Equal(t, "Total Data: 0 rows", out.Summary)
}

func TestRenderHidesRawPoints(t *testing.T) {
	out, err := Render(scenarioRecords(), domain.Query{Day: 1, Hour: 5, Mode: domain.ModeDestination})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Nil(t, out.Points)
}

func TestRenderValidates(t *testing.T) {
	_, err := Render(nil, domain.Query{Day: 6, Hour: 5, Mode: domain.ModeOrigin})
	assert.ErrorIs(t, err, domain.ErrInvalidDay)

	_, err = Render(nil, domain.Query{Day: 1, Hour: 24, Mode: domain.ModeOrigin})
	assert.ErrorIs(t, err, domain.ErrInvalidHour)

	_, err = Render(nil, domain.Query{Day: 1, Hour: 5, Mode: "od"})
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}
