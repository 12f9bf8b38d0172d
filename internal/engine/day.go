package engine

import (
	"fmt"
	"math"

	"vcs-dashboard/internal/models"
)

// SynthesizeDay builds one day's 24-row hourly table plus per-category daily
// totals. Draw order is part of the determinism contract: hours ascend 0..23
// and within each hour one hour-level draw precedes one draw per category in
// canonical order.
func SynthesizeDay(date string, cameraFactor float64, seq *Sequence) models.DaySynthesis {
	day := models.DaySynthesis{
		Date:   date,
		Hours:  make([]models.HourRow, 0, 24),
		Totals: make(models.Counts, len(models.Categories)),
	}

	for h := 0; h < 24; h++ {
		profile := hourlyProfile[h]
		hourNoise := 0.85 + seq.Next()*0.30

		row := models.HourRow{
			Label:  fmt.Sprintf("%02d:00", h),
			Counts: make(models.Counts, len(models.Categories)),
		}
		for _, cat := range models.Categories {
			catNoise := 0.90 + seq.Next()*0.20
			count := int(math.Round(float64(categoryPeaks[cat]) * profile * cameraFactor * hourNoise * catNoise))
			if count < 0 {
				count = 0
			}
			row.Counts[cat] = count
			day.Totals[cat] += count
		}
		day.Hours = append(day.Hours, row)
	}

	return day
}
