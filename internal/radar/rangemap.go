package radar

import (
	"maps"
	"slices"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// AngleCount is the number of whole-degree angles the sensor can report.
const AngleCount = config.MaxAngle - config.MinAngle + 1

// RangeMap keeps the first in-range distance seen at each angle. Later
// readings at a known angle never overwrite it. The core only writes to it;
// it is read by exporters and the status bar.
type RangeMap struct {
	ranges map[int]int
}

// NewRangeMap creates an empty RangeMap.
func NewRangeMap() *RangeMap {
	return &RangeMap{
		ranges: make(map[int]int),
	}
}

// Record stores r if it is in range and its angle is new. It returns true
// when an entry was written.
func (m *RangeMap) Record(r Reading) bool {
	if !r.InRange() {
		return false
	}
	if _, ok := m.ranges[r.Angle]; ok {
		return false
	}
	m.ranges[r.Angle] = r.Distance
	return true
}

// Lookup returns the distance recorded for angle.
func (m *RangeMap) Lookup(angle int) (int, bool) {
	d, ok := m.ranges[angle]
	return d, ok
}

// Len returns the number of recorded angles.
func (m *RangeMap) Len() int {
	return len(m.ranges)
}

// Snapshot returns a copy of the map.
func (m *RangeMap) Snapshot() map[int]int {
	return maps.Clone(m.ranges)
}

// Angles returns the recorded angles in ascending order.
func (m *RangeMap) Angles() []int {
	return slices.Sorted(maps.Keys(m.ranges))
}

// Nearest returns the closest recorded reading. Ties go to the lower angle.
func (m *RangeMap) Nearest() (Reading, bool) {
	var best Reading
	found := false
	for angle, d := range m.ranges {
		if !found || d < best.Distance || (d == best.Distance && angle < best.Angle) {
			best = Reading{Angle: angle, Distance: d}
			found = true
		}
	}
	return best, found
}
