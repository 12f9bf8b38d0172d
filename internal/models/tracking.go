package models

import "time"

// Sighting is a single GPS observation of a tracked vehicle
type Sighting struct {
	ID          int64   `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	Timestamp   int64   `json:"timestamp"` // unix seconds
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	SpeedKMH    float64 `json:"speed_kmh"`
	Heading     float64 `json:"heading"` // degrees
	CameraID    string  `json:"camera_id,omitempty"`
	DisplayTime string  `json:"display_time,omitempty"`
}

// TrackedVehicle is a vehicle known to the tracking store
type TrackedVehicle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LicensePlate string    `json:"license_plate"`
	VehicleType  string    `json:"vehicle_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryQuery represents query parameters for sighting history searches
type HistoryQuery struct {
	VehicleID string
	From      int64 // unix seconds, 0 = unbounded
	To        int64
	Limit     int
}
