// Package engine generates the deterministic synthetic classification data
// behind the VCS dashboard: given a filter spec it produces a reproducible
// trend series, category totals, distribution, summary KPIs and table rows.
package engine

import (
	"fmt"

	"vcs-dashboard/internal/models"
)

const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647
)

// Sequence is a seeded pseudo-random source. Two sequences built from the
// same seed and advanced the same number of times yield identical values.
type Sequence struct {
	state int64
}

// NewSequence returns a sequence for the given seed. The seed is reduced
// into [1, 2147483646]; the recurrence is degenerate at 0, so 0 maps to 1.
func NewSequence(seed int64) *Sequence {
	s := seed % lcgModulus
	if s < 0 {
		s = -s
	}
	if s == 0 {
		s = 1
	}
	return &Sequence{state: s}
}

// Next returns the next value in [0, 1).
func (s *Sequence) Next() float64 {
	s.state = (s.state * lcgMultiplier) % lcgModulus
	return float64(s.state-1) / float64(lcgModulus-1)
}

// SeedFromFilter derives the sequence seed for a filter spec. djb2 over the
// joined filter fields; any two specs that collide simply share a stream,
// which only affects which synthetic numbers they see.
func SeedFromFilter(spec models.FilterSpec) int64 {
	key := fmt.Sprintf("%s-%s-%s-%s", spec.DateFrom, spec.DateTo, spec.CameraID, spec.TimeGrouping)
	var h uint32 = 5381
	for i := 0; i < len(key); i++ {
		h = h*33 + uint32(key[i])
	}
	return int64(h)
}
