package radar

import (
	"strconv"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// Reading is one decoded (angle, distance) observation from the sensor.
type Reading struct {
	Angle    int // Degrees, [0, 180]
	Distance int // Centimetres
}

// InRange reports whether the reading belongs in the range map.
func (r Reading) InRange() bool {
	return r.Distance > config.MinRange && r.Distance < config.MaxRange
}

// Detected reports whether the reading is drawn as a blip.
func (r Reading) Detected() bool {
	return r.Distance > config.DetectMin && r.Distance < config.MaxRange
}

// String returns the reading in wire format, without the delimiter.
func (r Reading) String() string {
	return strconv.Itoa(r.Angle) + ":" + strconv.Itoa(r.Distance)
}

// DistanceLabel formats a distance for the status bar.
func DistanceLabel(distance int) string {
	if distance < config.MaxRange {
		return strconv.Itoa(distance) + " cm"
	}
	return "Nothing"
}
