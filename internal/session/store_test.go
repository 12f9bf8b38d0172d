package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcs-dashboard/internal/models"
)

func spec(camera string) models.FilterSpec {
	return models.FilterSpec{
		DateFrom:     "2026-02-08",
		DateTo:       "2026-02-08",
		CameraID:     camera,
		TimeGrouping: models.GroupingHourly,
	}
}

func TestStoreHitAndMiss(t *testing.T) {
	store := NewStore(time.Minute)
	bundle := models.DashboardBundle{Summary: models.SummaryKPI{TotalVehicles: 42}}

	store.Put("sess-1", spec("all"), bundle)

	got, ok := store.Get("sess-1", spec("all"))
	require.True(t, ok)
	assert.Equal(t, 42, got.Summary.TotalVehicles)

	_, ok = store.Get("sess-1", spec("cam_001"))
	assert.False(t, ok, "a different spec is a miss")

	_, ok = store.Get("sess-2", spec("all"))
	assert.False(t, ok, "an unknown session is a miss")
}

func TestStoreLastQueryWins(t *testing.T) {
	store := NewStore(time.Minute)
	store.Put("sess-1", spec("all"), models.DashboardBundle{})
	store.Put("sess-1", spec("cam_001"), models.DashboardBundle{})

	_, ok := store.Get("sess-1", spec("all"))
	assert.False(t, ok, "only the most recent query is cached")
	_, ok = store.Get("sess-1", spec("cam_001"))
	assert.True(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	store.Put("sess-1", spec("all"), models.DashboardBundle{})

	current = current.Add(59 * time.Second)
	_, ok := store.Get("sess-1", spec("all"))
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = store.Get("sess-1", spec("all"))
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired entries are evicted on access")
}
