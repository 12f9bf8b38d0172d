package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcs-dashboard/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSV(t *testing.T) {
	path := writeFile(t, "sightings.csv", `vehicle_id,timestamp,lat,lng,speed_kmh,heading,camera_id
VEH-001,1770508800,17.4126,78.4477,42.5,180,cam_001
VEH-002,2026-02-08 10:00:00,17.4200,78.4500,30.0,90,cam_002
,1770508800,17.4,78.4,10,0,cam_003
`)

	records, err := NewParser("csv").ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2, "record without vehicle_id is skipped")

	assert.Equal(t, "VEH-001", records[0].VehicleID)
	assert.Equal(t, int64(1770508800), records[0].Timestamp)
	assert.Equal(t, 17.4126, records[0].Latitude)
	assert.Equal(t, "cam_001", records[0].CameraID)
	assert.Greater(t, records[1].Timestamp, int64(0), "datetime timestamps are accepted")
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, "sightings.json", `[
		{"vehicle_id":"VEH-001","timestamp":1770508800,"lat":17.41,"lng":78.44,"speed_kmh":42.5,"heading":180}
	]`)

	records, err := NewParser("json").ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "VEH-001", records[0].VehicleID)
}

func TestParseLog(t *testing.T) {
	path := writeFile(t, "sightings.log", `# camera feed export
1770508800|VEH-001|17.41,78.44|42.5|180|cam_001
bad line
1770508900|VEH-001|17.42,78.45|40.0|175|cam_001
`)

	records, err := NewParser("log").ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 78.45, records[1].Longitude)
}

func TestParseUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "sightings.xml", "<xml/>")
	_, err := NewParser("xml").ParseFile(path)
	assert.Error(t, err)
}

func TestValidateSighting(t *testing.T) {
	valid := models.Sighting{VehicleID: "VEH-001", Timestamp: 1770508800, Latitude: 17.4, Longitude: 78.4, SpeedKMH: 40, Heading: 180}
	assert.Empty(t, ValidateSighting(&valid))

	invalid := models.Sighting{Latitude: 100, Longitude: -200, SpeedKMH: -1, Heading: 400}
	errs := ValidateSighting(&invalid)
	assert.Len(t, errs, 6)
}
