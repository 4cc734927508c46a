package overlay

import (
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

// Align is the horizontal anchoring of text relative to its x coordinate.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is an immediate-mode 2D drawing target.
//
// Save and Restore bracket colour, alpha, line width and transform, so style
// changes made between them never leak to later drawing calls.
// Text is positioned by its baseline.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int) error
	Clear()

	Save()
	Restore()
	Translate(dx, dy float64)

	SetColor(c finding.Color)
	SetAlpha(a float64)
	SetLineWidth(w float64)
	SetFontSize(size float64)

	StrokeRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	FillCircle(x, y, r float64)
	Line(x1, y1, x2, y2 float64)
	FillPolygon(pts ...inspect.Point)
	FillText(s string, x, y float64, align Align)
	MeasureText(s string) float64
}
