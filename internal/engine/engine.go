package engine

import "vcs-dashboard/internal/models"

// Sanitize normalizes a filter spec in place of failing: unknown groupings
// fall back to hourly and an empty camera id means all cameras. Date fields
// are left as-is; AssembleRange degrades malformed ranges itself.
func Sanitize(spec models.FilterSpec) models.FilterSpec {
	if spec.TimeGrouping != models.GroupingHourly && spec.TimeGrouping != models.GroupingDaily {
		spec.TimeGrouping = models.GroupingHourly
	}
	if spec.CameraID == "" {
		spec.CameraID = "all"
	}
	return spec
}

// BuildDashboard runs the full pipeline for one filter spec. It never fails:
// every degradation case produces a well-formed bundle.
func BuildDashboard(spec models.FilterSpec) models.DashboardBundle {
	spec = Sanitize(spec)

	series, days, seq := AssembleRange(spec)
	_, kpi, distribution := Aggregate(series, days, seq)

	return models.DashboardBundle{
		Summary:      kpi,
		TrendSeries:  series,
		Distribution: distribution,
		Table:        Flatten(days),
		Cameras:      Cameras(),
	}
}
