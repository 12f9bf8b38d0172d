package models

// Category is a vehicle classification class
type Category string

const (
	CategoryCar   Category = "Car"
	CategoryAuto  Category = "Auto"
	CategoryBike  Category = "Bike"
	CategoryBus   Category = "Bus"
	CategoryTruck Category = "Truck"
)

// Categories is the canonical iteration order. Generator draws are consumed
// in this order, so it must never be reordered.
var Categories = []Category{CategoryCar, CategoryAuto, CategoryBike, CategoryBus, CategoryTruck}

// Grouping selects the requested trend-series granularity
type Grouping string

const (
	GroupingHourly Grouping = "hourly"
	GroupingDaily  Grouping = "daily"
)

// FilterSpec represents one dashboard query
type FilterSpec struct {
	DateFrom     string   `json:"date_from"`
	DateTo       string   `json:"date_to"`
	CameraID     string   `json:"camera_id"`
	TimeGrouping Grouping `json:"time_grouping"`
}

// Counts maps each category to a non-negative vehicle count
type Counts map[Category]int

// Clone returns an independent copy
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Sum returns the total across all categories
func (c Counts) Sum() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// HourRow is one hour's counts within a synthesized day
type HourRow struct {
	Label  string `json:"time"`
	Counts Counts `json:"counts"`
}

// DaySynthesis is the complete synthetic count table for one calendar date
type DaySynthesis struct {
	Date   string    `json:"date"`
	Hours  []HourRow `json:"hours"`
	Totals Counts    `json:"totals"`
}

// TrendPoint is one labeled point in the presented trend series
type TrendPoint struct {
	Label  string `json:"time"`
	Counts Counts `json:"counts"`
}

// DistributionEntry is one category's share of the grand total
type DistributionEntry struct {
	Category   Category `json:"category"`
	Percentage float64  `json:"percentage"`
	Count      int      `json:"count"`
}

// SummaryKPI holds the dashboard headline numbers
type SummaryKPI struct {
	TotalVehicles    int      `json:"total_vehicles"`
	DominantCategory Category `json:"dominant_category"`
	PeakLabel        string   `json:"peak_traffic_time"`
	AvgConfidence    float64  `json:"avg_confidence"`
}

// TableRow is one flattened (day, hour) row for the paginated table view
type TableRow struct {
	TimeLabel string `json:"time"`
	Counts    Counts `json:"counts"`
	Total     int    `json:"total"`
}

// CameraInfo describes one known camera
type CameraInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DashboardBundle is the full classification dashboard payload for one query
type DashboardBundle struct {
	Summary      SummaryKPI          `json:"summary_cards"`
	TrendSeries  []TrendPoint        `json:"vehicles_by_time"`
	Distribution []DistributionEntry `json:"vehicle_distribution"`
	Table        []TableRow          `json:"vehicle_table"`
	Cameras      []CameraInfo        `json:"cameras"`
}
