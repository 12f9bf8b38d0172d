package engine

import "vcs-dashboard/internal/models"

// Flatten expands the synthesized days into one row per (day, hour) pair in
// chronological order. Consumers may re-sort or paginate their own copies.
func Flatten(days []models.DaySynthesis) []models.TableRow {
	rows := make([]models.TableRow, 0, len(days)*24)
	for _, day := range days {
		for _, hour := range day.Hours {
			rows = append(rows, models.TableRow{
				TimeLabel: day.Date + " " + hour.Label,
				Counts:    hour.Counts.Clone(),
				Total:     hour.Counts.Sum(),
			})
		}
	}
	return rows
}
