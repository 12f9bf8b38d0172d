package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcs-dashboard/internal/models"
)

func TestBuildDashboardDeterministic(t *testing.T) {
	spec := filter("2026-02-01", "2026-02-08", "cam_003", models.GroupingDaily)

	first, err := json.Marshal(BuildDashboard(spec))
	require.NoError(t, err)
	second, err := json.Marshal(BuildDashboard(spec))
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical filter specs must produce byte-identical bundles")
}

func TestBuildDashboardReferenceDay(t *testing.T) {
	bundle := BuildDashboard(filter("2026-02-08", "2026-02-08", "all", models.GroupingHourly))

	require.Len(t, bundle.TrendSeries, 24)
	assert.Equal(t, "00:00", bundle.TrendSeries[0].Label)
	assert.Equal(t, "23:00", bundle.TrendSeries[23].Label)

	// 09:00 carries the largest per-row sum of the whole day.
	peakSum := 0
	peakLabel := ""
	for _, point := range bundle.TrendSeries {
		if sum := point.Counts.Sum(); sum > peakSum {
			peakSum = sum
			peakLabel = point.Label
		}
	}
	assert.Equal(t, "09:00", peakLabel)
	assert.Equal(t, 1708, peakSum)
	assert.Equal(t, "09:00", bundle.Summary.PeakLabel)

	assert.Equal(t, 20564, bundle.Summary.TotalVehicles)
	assert.Equal(t, models.CategoryCar, bundle.Summary.DominantCategory)
	assert.Equal(t, 93.7, bundle.Summary.AvgConfidence)

	require.Len(t, bundle.Distribution, 5)
	assert.Equal(t, 46.6, bundle.Distribution[0].Percentage)
	assert.Equal(t, 9579, bundle.Distribution[0].Count)
	assert.Equal(t, 30.6, bundle.Distribution[1].Percentage)
	assert.Equal(t, 14.6, bundle.Distribution[2].Percentage)
	assert.Equal(t, 4.8, bundle.Distribution[3].Percentage)
	assert.Equal(t, 3.4, bundle.Distribution[4].Percentage)

	require.Len(t, bundle.Cameras, 6)
	assert.Equal(t, "all", bundle.Cameras[0].ID)
}

func TestBuildDashboardCameraScaling(t *testing.T) {
	full := BuildDashboard(filter("2026-02-08", "2026-02-08", "all", models.GroupingHourly))
	scaled := BuildDashboard(filter("2026-02-08", "2026-02-08", "cam_005", models.GroupingHourly))

	require.Len(t, scaled.TrendSeries, 24)
	for h := range scaled.TrendSeries {
		for _, cat := range models.Categories {
			assert.LessOrEqual(t, scaled.TrendSeries[h].Counts[cat], full.TrendSeries[h].Counts[cat],
				"hour %d category %s", h, cat)
		}
	}
}

func TestBuildDashboardTableConsistency(t *testing.T) {
	bundle := BuildDashboard(filter("2026-02-01", "2026-02-03", "cam_001", models.GroupingHourly))

	require.Len(t, bundle.Table, 72)
	assert.Equal(t, "2026-02-01 00:00", bundle.Table[0].TimeLabel)
	assert.Equal(t, "2026-02-03 23:00", bundle.Table[71].TimeLabel)

	columns := make(models.Counts)
	for _, row := range bundle.Table {
		assert.Equal(t, row.Counts.Sum(), row.Total, "row %s", row.TimeLabel)
		for cat, n := range row.Counts {
			columns[cat] += n
		}
	}
	for i, entry := range bundle.Distribution {
		assert.Equal(t, columns[entry.Category], entry.Count, "category totals must match table column sums (%d)", i)
	}
}

func TestBuildDashboardDegradation(t *testing.T) {
	t.Run("unknown grouping defaults to hourly", func(t *testing.T) {
		bundle := BuildDashboard(filter("2026-02-08", "2026-02-08", "all", "weekly"))
		assert.Len(t, bundle.TrendSeries, 24)
	})

	t.Run("unknown camera uses default factor", func(t *testing.T) {
		bundle := BuildDashboard(filter("2026-02-08", "2026-02-08", "cam_999", models.GroupingHourly))
		assert.Len(t, bundle.TrendSeries, 24)
		assert.Greater(t, bundle.Summary.TotalVehicles, 0)
	})

	t.Run("empty camera means all cameras", func(t *testing.T) {
		a := BuildDashboard(filter("2026-02-08", "2026-02-08", "", models.GroupingHourly))
		b := BuildDashboard(filter("2026-02-08", "2026-02-08", "all", models.GroupingHourly))
		assert.Equal(t, b.Summary, a.Summary)
	})
}
