package engine

import (
	"time"

	"vcs-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// seriesShape is the presentation shape of the trend series, resolved once
// from day count and requested grouping.
type seriesShape int

const (
	shapeHourly seriesShape = iota // single day, 24 hourly points
	shapeMultiDayHourly            // 2-3 days, hourly points with date-qualified labels
	shapeDaily                     // one point per day
)

// resolveShape picks the trend-series shape. Multi-day hourly detail is only
// readable for short ranges; anything longer degrades to daily granularity
// regardless of the requested grouping.
func resolveShape(dayCount int, grouping models.Grouping) seriesShape {
	if grouping == models.GroupingDaily {
		return shapeDaily
	}
	switch {
	case dayCount <= 1:
		return shapeHourly
	case dayCount <= 3:
		return shapeMultiDayHourly
	default:
		return shapeDaily
	}
}

// AssembleRange synthesizes every day in the filter's range and shapes the
// trend series. The spec must already be sanitized. A single sequence is
// threaded through all days; its state is never reset between days, so the
// whole range is one reproducible stream. The sequence is returned still
// positioned for the aggregator's confidence draw.
func AssembleRange(spec models.FilterSpec) ([]models.TrendPoint, []models.DaySynthesis, *Sequence) {
	from, to := parseRange(spec.DateFrom, spec.DateTo)
	dayCount := int(to.Sub(from).Hours()/24) + 1
	if dayCount < 1 {
		dayCount = 1
	}

	factor := CameraFactor(spec.CameraID)
	seq := NewSequence(SeedFromFilter(spec))

	days := make([]models.DaySynthesis, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		date := from.AddDate(0, 0, i).Format(dateLayout)
		days = append(days, SynthesizeDay(date, factor, seq))
	}

	return shapeSeries(days, resolveShape(dayCount, spec.TimeGrouping)), days, seq
}

// parseRange parses the calendar range, collapsing malformed or inverted
// ranges to a single day at dateFrom.
func parseRange(dateFrom, dateTo string) (time.Time, time.Time) {
	from, err := time.Parse(dateLayout, dateFrom)
	if err != nil {
		from = time.Now().UTC().Truncate(24 * time.Hour)
	}
	to, err := time.Parse(dateLayout, dateTo)
	if err != nil || to.Before(from) {
		to = from
	}
	return from, to
}

func shapeSeries(days []models.DaySynthesis, shape seriesShape) []models.TrendPoint {
	var series []models.TrendPoint

	switch shape {
	case shapeHourly:
		for _, row := range days[0].Hours {
			series = append(series, models.TrendPoint{Label: row.Label, Counts: row.Counts.Clone()})
		}
	case shapeMultiDayHourly:
		for _, day := range days {
			suffix := day.Date[5:] // MM-DD
			for _, row := range day.Hours {
				series = append(series, models.TrendPoint{
					Label:  suffix + " " + row.Label,
					Counts: row.Counts.Clone(),
				})
			}
		}
	case shapeDaily:
		for _, day := range days {
			series = append(series, models.TrendPoint{Label: day.Date, Counts: day.Totals.Clone()})
		}
	}

	return series
}
