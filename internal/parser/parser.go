// Package parser loads vehicle sighting records from files for the ingest
// command.
package parser

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"vcs-dashboard/internal/models"
)

// Parser handles parsing of sighting data files
type Parser struct {
	format string
}

// NewParser creates a new parser with the specified format
func NewParser(format string) *Parser {
	return &Parser{format: format}
}

// ParseFile parses a sighting data file
func (p *Parser) ParseFile(filename string) ([]models.Sighting, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(p.format) {
	case "csv":
		return p.parseCSV(file)
	case "json":
		return p.parseJSON(file)
	case "log":
		return p.parseLog(file)
	default:
		return nil, fmt.Errorf("unsupported format: %s", p.format)
	}
}

// parseCSV parses CSV formatted sighting data
func (p *Parser) parseCSV(r io.Reader) ([]models.Sighting, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Map header indices
	indices := make(map[string]int)
	for i, h := range header {
		indices[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var results []models.Sighting
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return results, fmt.Errorf("error at line %d: %w", lineNum, err)
		}
		lineNum++

		data, err := p.recordToSighting(record, indices)
		if err != nil {
			// Log error but continue parsing
			fmt.Printf("Warning: line %d: %v\n", lineNum, err)
			continue
		}
		results = append(results, data)
	}

	return results, nil
}

// recordToSighting converts a CSV record to a Sighting
func (p *Parser) recordToSighting(record []string, indices map[string]int) (models.Sighting, error) {
	var s models.Sighting

	getValue := func(key string) string {
		if idx, ok := indices[key]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	s.VehicleID = getValue("vehicle_id")
	if s.VehicleID == "" {
		return s, fmt.Errorf("missing vehicle_id")
	}

	tsStr := getValue("timestamp")
	if tsStr != "" {
		ts, err := parseTimestamp(tsStr)
		if err != nil {
			return s, fmt.Errorf("invalid timestamp: %w", err)
		}
		s.Timestamp = ts
	}

	s.Latitude, _ = strconv.ParseFloat(getValue("lat"), 64)
	s.Longitude, _ = strconv.ParseFloat(getValue("lng"), 64)
	s.SpeedKMH, _ = strconv.ParseFloat(getValue("speed_kmh"), 64)
	s.Heading, _ = strconv.ParseFloat(getValue("heading"), 64)
	s.CameraID = getValue("camera_id")

	return s, nil
}

// parseJSON parses JSON formatted sighting data
func (p *Parser) parseJSON(r io.Reader) ([]models.Sighting, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	// Try to decode as array first
	var results []models.Sighting
	if err := json.Unmarshal(data, &results); err == nil {
		return results, nil
	}

	// Fall back to line-by-line JSON
	return p.parseJSONLines(strings.NewReader(string(data)))
}

// parseJSONLines parses newline-delimited JSON
func (p *Parser) parseJSONLines(r io.Reader) ([]models.Sighting, error) {
	var results []models.Sighting
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "[" || line == "]" {
			continue
		}

		// Remove trailing comma if present
		line = strings.TrimSuffix(line, ",")

		var s models.Sighting
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			fmt.Printf("Warning: line %d: %v\n", lineNum, err)
			continue
		}
		results = append(results, s)
	}

	return results, scanner.Err()
}

// parseLog parses custom log format: timestamp|vehicle_id|lat,lng|speed_kmh|heading|camera_id
func (p *Parser) parseLog(r io.Reader) ([]models.Sighting, error) {
	var results []models.Sighting
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 5 {
			fmt.Printf("Warning: line %d: insufficient fields\n", lineNum)
			continue
		}

		var s models.Sighting

		ts, err := parseTimestamp(parts[0])
		if err != nil {
			fmt.Printf("Warning: line %d: invalid timestamp\n", lineNum)
			continue
		}
		s.Timestamp = ts

		s.VehicleID = parts[1]

		coords := strings.Split(parts[2], ",")
		if len(coords) == 2 {
			s.Latitude, _ = strconv.ParseFloat(coords[0], 64)
			s.Longitude, _ = strconv.ParseFloat(coords[1], 64)
		}

		s.SpeedKMH, _ = strconv.ParseFloat(parts[3], 64)
		s.Heading, _ = strconv.ParseFloat(parts[4], 64)

		if len(parts) > 5 {
			s.CameraID = parts[5]
		}

		results = append(results, s)
	}

	return results, scanner.Err()
}

// parseTimestamp accepts unix seconds or common datetime formats
func parseTimestamp(s string) (int64, error) {
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ts, nil
	}

	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Unix(), nil
		}
	}

	return 0, fmt.Errorf("unable to parse timestamp: %s", s)
}

// ValidateSighting validates a sighting record
func ValidateSighting(s *models.Sighting) []string {
	var errors []string

	if s.VehicleID == "" {
		errors = append(errors, "vehicle_id is required")
	}
	if s.Timestamp <= 0 {
		errors = append(errors, "timestamp is required")
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		errors = append(errors, "lat must be between -90 and 90")
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		errors = append(errors, "lng must be between -180 and 180")
	}
	if s.SpeedKMH < 0 {
		errors = append(errors, "speed_kmh cannot be negative")
	}
	if s.Heading < 0 || s.Heading >= 360 {
		errors = append(errors, "heading must be in [0, 360)")
	}

	return errors
}
