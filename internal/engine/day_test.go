package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcs-dashboard/internal/models"
)

func TestSynthesizeDayShape(t *testing.T) {
	day := SynthesizeDay("2026-02-08", 1.0, NewSequence(1080759908))

	require.Len(t, day.Hours, 24)
	assert.Equal(t, "00:00", day.Hours[0].Label)
	assert.Equal(t, "09:00", day.Hours[9].Label)
	assert.Equal(t, "23:00", day.Hours[23].Label)

	for _, row := range day.Hours {
		require.Len(t, row.Counts, len(models.Categories))
		for cat, count := range row.Counts {
			assert.GreaterOrEqual(t, count, 0, "%s %s", row.Label, cat)
		}
	}
}

func TestSynthesizeDayTotalsMatchRows(t *testing.T) {
	day := SynthesizeDay("2026-02-08", 0.32, NewSequence(7))

	for _, cat := range models.Categories {
		sum := 0
		for _, row := range day.Hours {
			sum += row.Counts[cat]
		}
		assert.Equal(t, sum, day.Totals[cat], "totals for %s must equal the hourly sum", cat)
	}
}

func TestSynthesizeDayDeterministic(t *testing.T) {
	a := SynthesizeDay("2026-02-08", 1.0, NewSequence(12345))
	b := SynthesizeDay("2026-02-08", 1.0, NewSequence(12345))
	assert.Equal(t, a, b)
}

func TestSynthesizeDayGoldenValues(t *testing.T) {
	// First day of the 2026-02-08/all/hourly reference query.
	day := SynthesizeDay("2026-02-08", 1.0, NewSequence(1080759908))

	assert.Equal(t, models.Counts{
		models.CategoryCar:   49,
		models.CategoryAuto:  31,
		models.CategoryBike:  14,
		models.CategoryBus:   5,
		models.CategoryTruck: 3,
	}, day.Hours[0].Counts)

	assert.Equal(t, models.Counts{
		models.CategoryCar:   820,
		models.CategoryAuto:  493,
		models.CategoryBike:  261,
		models.CategoryBus:   81,
		models.CategoryTruck: 53,
	}, day.Hours[9].Counts)

	assert.Equal(t, models.Counts{
		models.CategoryCar:   9579,
		models.CategoryAuto:  6292,
		models.CategoryBike:  3002,
		models.CategoryBus:   997,
		models.CategoryTruck: 694,
	}, day.Totals)
}

func TestSynthesizeDayScalesWithCameraFactor(t *testing.T) {
	// Worst-case noise spread (0.14*1.15*1.10 < 1.0*0.85*0.90) keeps every
	// low-factor count below its all-cameras counterpart, whatever the draws.
	full := SynthesizeDay("2026-02-08", 1.0, NewSequence(11))
	scaled := SynthesizeDay("2026-02-08", 0.14, NewSequence(99))

	for h := range full.Hours {
		for _, cat := range models.Categories {
			assert.LessOrEqual(t, scaled.Hours[h].Counts[cat], full.Hours[h].Counts[cat])
		}
	}
}
