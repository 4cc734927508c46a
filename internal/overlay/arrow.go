package overlay

import (
	"math"

	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

// drawArrow: dot at the tail, shaft, filled head at the tip.
func drawArrow(s Surface, from, to inspect.Point, color finding.Color) {
	s.Save()
	defer s.Restore()

	s.SetColor(color)
	s.FillCircle(from.X, from.Y, arrowDot)
	s.Line(from.X, from.Y, to.X, to.Y)
	s.FillPolygon(arrowHeadPoints(from, to)...)
}

// arrowHeadPoints returns the head triangle with the tip in the middle.
// A zero-length arrow points along +x.
func arrowHeadPoints(from, to inspect.Point) []inspect.Point {
	a := math.Atan2(to.Y-from.Y, to.X-from.X)
	return []inspect.Point{
		{X: to.X + arrowHead*math.Cos(a-arrowAngle), Y: to.Y + arrowHead*math.Sin(a-arrowAngle)},
		to,
		{X: to.X + arrowHead*math.Cos(a+arrowAngle), Y: to.Y + arrowHead*math.Sin(a+arrowAngle)},
	}
}
