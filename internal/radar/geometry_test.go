package radar

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesian_Axes(t *testing.T) {
	origin := image.Pt(120, 120)

	tests := []struct {
		angle, length int
		want          image.Point
	}{
		{0, 100, image.Pt(220, 120)},
		{90, 100, image.Pt(120, 20)},
		{180, 100, image.Pt(20, 120)},
		{0, 0, origin},
		{90, 104, image.Pt(120, 16)},
		{180, 7, image.Pt(113, 120)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Cartesian(origin, tt.angle, tt.length), "angle %d length %d", tt.angle, tt.length)
	}
}

func TestCartesian_Diagonals(t *testing.T) {
	origin := image.Pt(0, 0)

	// cos(45°)·100 ≈ 70.71
	assert.Equal(t, image.Pt(71, -71), Cartesian(origin, 45, 100))
	assert.Equal(t, image.Pt(-71, -71), Cartesian(origin, 135, 100))
	// cos(30°)·40 ≈ 34.64, sin(30°)·40 = 20
	assert.Equal(t, image.Pt(35, -20), Cartesian(origin, 30, 40))
}

func TestProject_Exact(t *testing.T) {
	x, y := Project(image.Pt(10, 10), 0, 5)
	assert.Equal(t, 15.0, x)
	assert.Equal(t, 10.0, y)
}

func TestLabelPoint(t *testing.T) {
	origin := image.Pt(120, 120)

	// Below vertical: no shift.
	assert.Equal(t, Cartesian(origin, 30, 107), LabelPoint(origin, 30, 104))
	// At and past vertical: shifted left by 8.
	at90 := Cartesian(origin, 90, 107)
	assert.Equal(t, image.Pt(at90.X-8, at90.Y), LabelPoint(origin, 90, 104))
	at150 := Cartesian(origin, 150, 107)
	assert.Equal(t, image.Pt(at150.X-8, at150.Y), LabelPoint(origin, 150, 104))
}
