// Package track prepares raw vehicle sightings for display.
package track

import (
	"math"
	"sort"
	"time"

	"vcs-dashboard/internal/models"
)

// DefaultHistoryLimit bounds how many sightings a history response carries.
const DefaultHistoryLimit = 12

var istZone = time.FixedZone("IST", 5*3600+30*60)

// NormalizeRecords drops sightings with unusable coordinates or timestamps,
// keeps the newest limit records and returns them oldest-first, which is the
// order the timeline and map trace render in. Display timestamps are filled
// in as a side effect.
func NormalizeRecords(records []models.Sighting, limit int) []models.Sighting {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	valid := make([]models.Sighting, 0, len(records))
	for _, r := range records {
		if !finite(r.Latitude) || !finite(r.Longitude) || r.Timestamp <= 0 {
			continue
		}
		valid = append(valid, r)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Timestamp > valid[j].Timestamp
	})
	if len(valid) > limit {
		valid = valid[:limit]
	}

	// Reverse into chronological order.
	for i, j := 0, len(valid)-1; i < j; i, j = i+1, j-1 {
		valid[i], valid[j] = valid[j], valid[i]
	}

	for i := range valid {
		valid[i].DisplayTime = FormatIST(valid[i].Timestamp)
	}
	return valid
}

// FormatIST renders a unix-seconds timestamp in Indian Standard Time, the
// deployment's display zone.
func FormatIST(ts int64) string {
	if ts <= 0 {
		return "—"
	}
	return time.Unix(ts, 0).In(istZone).Format("02 Jan 2006, 03:04 PM") + " IST"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
