package engine

import "vcs-dashboard/internal/models"

// hourlyProfile is the diurnal intensity curve: low overnight, a morning
// plateau around 08:00-10:00 and an afternoon plateau around 14:00-17:00.
var hourlyProfile = [24]float64{
	0.06, 0.04, 0.03, 0.03, 0.04, 0.10, 0.30, 0.55,
	0.80, 0.90, 0.85, 0.75, 0.80, 0.85, 0.92, 0.88,
	0.82, 0.85, 0.78, 0.62, 0.48, 0.35, 0.22, 0.12,
}

// categoryPeaks is the expected count per category in the busiest hour under
// the all-cameras profile.
var categoryPeaks = map[models.Category]int{
	models.CategoryCar:   780,
	models.CategoryAuto:  520,
	models.CategoryBike:  245,
	models.CategoryBus:   82,
	models.CategoryTruck: 56,
}

// defaultCameraFactor is applied for camera ids missing from the table.
const defaultCameraFactor = 0.4

type cameraProfile struct {
	factor float64
	name   string
}

var cameraProfiles = map[string]cameraProfile{
	"all":     {1.0, "All Cameras"},
	"cam_001": {0.32, "Camera 001 - Main Junction"},
	"cam_002": {0.26, "Camera 002 - East Corridor"},
	"cam_003": {0.22, "Camera 003 - Office District"},
	"cam_004": {0.18, "Camera 004 - Parking Zone"},
	"cam_005": {0.14, "Camera 005 - Highway Exit"},
}

// cameraOrder fixes the presentation order of the camera list.
var cameraOrder = []string{"all", "cam_001", "cam_002", "cam_003", "cam_004", "cam_005"}

// CameraFactor resolves the intensity factor for a camera id. Unknown ids
// degrade to the default factor rather than failing.
func CameraFactor(id string) float64 {
	if p, ok := cameraProfiles[id]; ok {
		return p.factor
	}
	return defaultCameraFactor
}

// Cameras returns the known camera reference list.
func Cameras() []models.CameraInfo {
	out := make([]models.CameraInfo, 0, len(cameraOrder))
	for _, id := range cameraOrder {
		out = append(out, models.CameraInfo{ID: id, Name: cameraProfiles[id].name})
	}
	return out
}
