// Package db is the SQLite-backed vehicle tracking store: registered
// vehicles and their GPS sighting history. The classification engine never
// touches it; only the tracking endpoints and CLI do.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vcs-dashboard/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the SQLite connection
type Database struct {
	conn *sql.DB
}

// New creates a new database connection
func New(dbPath string) (*Database, error) {
	// Enable WAL mode and other optimizations via connection string
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000", dbPath)

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1) // SQLite works best with single writer
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &Database{conn: conn}

	if err := db.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// initialize creates tables and indexes
func (db *Database) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		license_plate TEXT UNIQUE NOT NULL,
		vehicle_type TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sightings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vehicle_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		speed_kmh REAL NOT NULL,
		heading REAL NOT NULL,
		camera_id TEXT,
		FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sightings_vehicle_id ON sightings(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_sightings_timestamp ON sightings(timestamp);
	CREATE INDEX IF NOT EXISTS idx_sightings_vehicle_timestamp ON sightings(vehicle_id, timestamp);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.conn.Close()
}

// InsertVehicle adds a new tracked vehicle
func (db *Database) InsertVehicle(v *models.TrackedVehicle) error {
	query := `INSERT INTO vehicles (id, name, license_plate, vehicle_type) VALUES (?, ?, ?, ?)`
	_, err := db.conn.Exec(query, v.ID, v.Name, v.LicensePlate, v.VehicleType)
	return err
}

// GetVehicle retrieves a vehicle by ID
func (db *Database) GetVehicle(id string) (*models.TrackedVehicle, error) {
	query := `SELECT id, name, license_plate, vehicle_type, created_at FROM vehicles WHERE id = ?`

	var v models.TrackedVehicle
	err := db.conn.QueryRow(query, id).Scan(&v.ID, &v.Name, &v.LicensePlate, &v.VehicleType, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVehicles returns all tracked vehicles
func (db *Database) ListVehicles() ([]models.TrackedVehicle, error) {
	query := `SELECT id, name, license_plate, vehicle_type, created_at FROM vehicles ORDER BY name`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.TrackedVehicle
	for rows.Next() {
		var v models.TrackedVehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.LicensePlate, &v.VehicleType, &v.CreatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// InsertSighting adds a single sighting record
func (db *Database) InsertSighting(s *models.Sighting) error {
	query := `
		INSERT INTO sightings (vehicle_id, timestamp, latitude, longitude, speed_kmh, heading, camera_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := db.conn.Exec(query,
		s.VehicleID, s.Timestamp, s.Latitude, s.Longitude, s.SpeedKMH, s.Heading, s.CameraID,
	)
	if err != nil {
		return err
	}

	id, _ := result.LastInsertId()
	s.ID = id
	return nil
}

// InsertSightingBatch efficiently inserts multiple sightings in one tx
func (db *Database) InsertSightingBatch(records []models.Sighting) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sightings (vehicle_id, timestamp, latitude, longitude, speed_kmh, heading, camera_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var count int64
	for _, s := range records {
		_, err := stmt.Exec(s.VehicleID, s.Timestamp, s.Latitude, s.Longitude, s.SpeedKMH, s.Heading, s.CameraID)
		if err != nil {
			return count, err
		}
		count++
	}

	return count, tx.Commit()
}

// QueryHistory retrieves sightings for a vehicle within a unix-seconds window
func (db *Database) QueryHistory(q models.HistoryQuery) ([]models.Sighting, error) {
	conditions := []string{"vehicle_id = ?"}
	args := []interface{}{q.VehicleID}

	baseQuery := `
		SELECT id, vehicle_id, timestamp, latitude, longitude, speed_kmh, heading, camera_id
		FROM sightings
	`

	if q.From > 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, q.From)
	}
	if q.To > 0 {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, q.To)
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY timestamp DESC"

	if q.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := db.conn.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Sighting
	for rows.Next() {
		var s models.Sighting
		var cameraID sql.NullString

		err := rows.Scan(&s.ID, &s.VehicleID, &s.Timestamp, &s.Latitude, &s.Longitude, &s.SpeedKMH, &s.Heading, &cameraID)
		if err != nil {
			return nil, err
		}
		if cameraID.Valid {
			s.CameraID = cameraID.String
		}
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetLatestSighting returns the most recent sighting for a vehicle
func (db *Database) GetLatestSighting(vehicleID string) (*models.Sighting, error) {
	query := `
		SELECT id, vehicle_id, timestamp, latitude, longitude, speed_kmh, heading, camera_id
		FROM sightings
		WHERE vehicle_id = ?
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var s models.Sighting
	var cameraID sql.NullString

	err := db.conn.QueryRow(query, vehicleID).Scan(
		&s.ID, &s.VehicleID, &s.Timestamp, &s.Latitude, &s.Longitude, &s.SpeedKMH, &s.Heading, &cameraID,
	)
	if err != nil {
		return nil, err
	}
	if cameraID.Valid {
		s.CameraID = cameraID.String
	}
	return &s, nil
}

// GetStats returns tracking store statistics
func (db *Database) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalSightings int64
	db.conn.QueryRow("SELECT COUNT(*) FROM sightings").Scan(&totalSightings)
	stats["total_sightings"] = totalSightings

	var totalVehicles int64
	db.conn.QueryRow("SELECT COUNT(*) FROM vehicles").Scan(&totalVehicles)
	stats["total_vehicles"] = totalVehicles

	var latest sql.NullInt64
	db.conn.QueryRow("SELECT MAX(timestamp) FROM sightings").Scan(&latest)
	if latest.Valid {
		stats["latest_sighting"] = latest.Int64
	}

	return stats, nil
}
