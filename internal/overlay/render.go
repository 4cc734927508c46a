package overlay

import (
	"math"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

const (
	arrowDot   = 4.0
	arrowHead  = 15.0
	arrowAngle = 0.9 * math.Pi
	fillAlpha  = 0.2
	hintOffset = 5.0
)

// Renderer draws a Result onto a Surface.
type Renderer struct {
	FontSize  float64
	LineWidth float64
}

func NewRenderer() *Renderer {
	return &Renderer{FontSize: 12, LineWidth: 1}
}

// Render clears s and draws the whole diagnosis under a translation that
// cancels the viewport scroll, so graphics stay registered with content.
// Findings are drawn first, then label links, then the tab path.
func (r *Renderer) Render(s Surface, res *inspect.Result, vp dom.Viewport) {
	s.Clear()
	if res == nil {
		return
	}
	s.Save()
	defer s.Restore()

	s.Translate(-vp.ScrollX, -vp.ScrollY)
	if r.FontSize > 0 {
		s.SetFontSize(r.FontSize)
	}
	if r.LineWidth > 0 {
		s.SetLineWidth(r.LineWidth)
	}

	for _, f := range res.Findings.Items() {
		drawFinding(s, f)
	}
	for _, l := range res.Links {
		drawArrow(s, inspect.Anchor(l.From), inspect.Anchor(l.To), finding.LawnGreen)
	}
	for _, seg := range res.Segments() {
		drawArrow(s, seg.From, seg.To, seg.Color)
		if seg.Label != "" {
			s.Save()
			s.SetColor(finding.Black)
			s.FillText(seg.Label, seg.To.X+hintOffset, seg.To.Y, AlignLeft)
			s.Restore()
		}
	}
}

// drawFinding outlines the target box, tints it and writes the label
// right-aligned just above it. Zero-size boxes are drawn like any other.
func drawFinding(s Surface, f finding.Finding) {
	if f.Target == nil {
		return
	}
	box := f.Target.Box

	s.Save()
	defer s.Restore()

	s.SetColor(f.Color)
	s.StrokeRect(box.X-0.5, box.Y-0.5, box.W+1, box.H+1)
	s.SetAlpha(fillAlpha)
	s.FillRect(box.X, box.Y, box.W, box.H)
	s.SetAlpha(1)

	s.SetColor(finding.Black)
	s.FillText(f.Label, box.Right(), box.Y-2, AlignRight)
}
