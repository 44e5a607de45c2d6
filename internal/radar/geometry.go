package radar

import (
	"image"
	"math"
)

// Project converts a polar offset to screen coordinates around origin.
// Angles are degrees counter-clockwise from the positive x axis; screen y
// grows downward, so positive angles move up.
func Project(origin image.Point, angleDeg, length float64) (x, y float64) {
	rad := angleDeg * math.Pi / 180
	x = float64(origin.X) + math.Cos(rad)*length
	y = float64(origin.Y) - math.Sin(rad)*length
	return x, y
}

// Cartesian returns the pixel at angleDeg and length from origin.
func Cartesian(origin image.Point, angleDeg, length int) image.Point {
	x, y := Project(origin, float64(angleDeg), float64(length))
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// LabelPoint returns where the label for a line of the given length goes:
// just past the line end, shifted left once the line leans past vertical so
// the text does not sit on the line.
func LabelPoint(origin image.Point, angleDeg, length int) image.Point {
	p := Cartesian(origin, angleDeg, length+3)
	if angleDeg >= 90 {
		p.X -= 8
	}
	return p
}
