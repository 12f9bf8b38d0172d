package engine

import (
	"math"

	"vcs-dashboard/internal/models"
)

const (
	baseConfidence = 94.7
	minConfidence  = 88.0
	maxConfidence  = 99.0
)

// Aggregate reduces a query's synthesized days and trend series into category
// totals, headline KPIs and the percentage distribution. Totals always come
// from the day-level tables, never from the trend series, so a daily-shaped
// series cannot double-count. The confidence KPI consumes the next draw from
// the same sequence, keeping it reproducible alongside the day synthesis.
func Aggregate(series []models.TrendPoint, days []models.DaySynthesis, seq *Sequence) (models.Counts, models.SummaryKPI, []models.DistributionEntry) {
	totals := make(models.Counts, len(models.Categories))
	for _, day := range days {
		for _, cat := range models.Categories {
			totals[cat] += day.Totals[cat]
		}
	}
	grandTotal := totals.Sum()

	// Dominant category: strictly largest total, ties to the first category
	// in canonical order.
	dominant := models.Categories[0]
	dominantCount := 0
	for _, cat := range models.Categories {
		if totals[cat] > dominantCount {
			dominant = cat
			dominantCount = totals[cat]
		}
	}

	// Peak label: trend point with the largest summed counts, ties to the
	// earliest point.
	peakLabel := ""
	peakTotal := 0
	for _, point := range series {
		if sum := point.Counts.Sum(); sum > peakTotal {
			peakTotal = sum
			peakLabel = point.Label
		}
	}

	confidence := baseConfidence + (seq.Next()-0.5)*4.0
	confidence = math.Min(maxConfidence, math.Max(minConfidence, confidence))

	kpi := models.SummaryKPI{
		TotalVehicles:    grandTotal,
		DominantCategory: dominant,
		PeakLabel:        peakLabel,
		AvgConfidence:    round1(confidence),
	}

	distribution := make([]models.DistributionEntry, 0, len(models.Categories))
	for _, cat := range models.Categories {
		pct := 0.0
		if grandTotal > 0 {
			pct = round1(100 * float64(totals[cat]) / float64(grandTotal))
		}
		distribution = append(distribution, models.DistributionEntry{
			Category:   cat,
			Percentage: pct,
			Count:      totals[cat],
		})
	}

	return totals, kpi, distribution
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
