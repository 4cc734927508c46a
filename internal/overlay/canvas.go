package overlay

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func regularFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// SetLogger routes the raster backend's diagnostics to l; nil silences them.
func SetLogger(l *slog.Logger) { gg.SetLogger(l) }

// style is the part of the state gg.Context.Push does not save.
type style struct {
	color    finding.Color
	alpha    float64
	width    float64
	fontSize float64
	tx, ty   float64 // translation, applied by hand to text
}

// Canvas is a Surface backed by a gg raster context. The background is
// transparent, so the encoded image overlays the document without hiding it.
//
// Drawing errors are sticky: the first one is kept and returned by Err and
// EncodePNG.
type Canvas struct {
	dc    *gg.Context
	font  *text.FontSource
	faces map[float64]text.Face
	cur   style
	stack []style
	err   error
}

var _ Surface = (*Canvas)(nil)

// NewCanvas allocates a w×h transparent canvas.
func NewCanvas(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	src, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay font: %w", err)
	}
	c := &Canvas{
		dc:    gg.NewContext(w, h),
		font:  src,
		faces: make(map[float64]text.Face),
		cur:   style{color: finding.Black, alpha: 1, width: 1, fontSize: 12},
	}
	c.applyFont()
	c.applyPaint()
	return c, nil
}

func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

// Resize keeps the pixel buffer when the size is unchanged.
func (c *Canvas) Resize(w, h int) error {
	return c.dc.Resize(w, h)
}

// Clear makes every pixel transparent and starts a new frame.
func (c *Canvas) Clear() {
	c.dc.Clear()
	c.err = nil
}

func (c *Canvas) Save() {
	c.dc.Push()
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.dc.Pop()
	prev := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	fontChanged := prev.fontSize != c.cur.fontSize
	c.cur = prev
	c.applyPaint()
	if fontChanged {
		c.applyFont()
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
	c.cur.tx += dx
	c.cur.ty += dy
}

func (c *Canvas) SetColor(col finding.Color) {
	c.cur.color = col
	c.applyPaint()
}

func (c *Canvas) SetAlpha(a float64) {
	c.cur.alpha = min(max(a, 0), 1)
	c.applyPaint()
}

func (c *Canvas) SetLineWidth(w float64) {
	c.cur.width = w
	c.dc.SetLineWidth(w)
}

func (c *Canvas) SetFontSize(size float64) {
	if size <= 0 || size == c.cur.fontSize {
		return
	}
	c.cur.fontSize = size
	c.applyFont()
}

func (c *Canvas) applyPaint() {
	r, g, b := c.cur.color.RGB()
	c.dc.SetRGBA(r, g, b, c.cur.alpha)
	c.dc.SetLineWidth(c.cur.width)
}

func (c *Canvas) applyFont() {
	face, ok := c.faces[c.cur.fontSize]
	if !ok {
		face = c.font.Face(c.cur.fontSize)
		c.faces[c.cur.fontSize] = face
	}
	c.dc.SetFont(face)
}

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.keep(c.dc.Stroke())
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.keep(c.dc.Fill())
}

func (c *Canvas) FillCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.keep(c.dc.Fill())
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.dc.DrawLine(x1, y1, x2, y2)
	c.keep(c.dc.Stroke())
}

func (c *Canvas) FillPolygon(pts ...inspect.Point) {
	if len(pts) < 3 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.keep(c.dc.Fill())
}

// FillText draws s with its baseline at y. gg draws text straight into the
// pixmap, so the translation is added here.
func (c *Canvas) FillText(s string, x, y float64, align Align) {
	if s == "" {
		return
	}
	var ax float64
	switch align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	c.dc.DrawStringAnchored(s, x+c.cur.tx, y+c.cur.ty, ax, 0)
}

func (c *Canvas) MeasureText(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

// Err returns the first drawing error.
func (c *Canvas) Err() error { return c.err }

// EncodePNG writes the current frame.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.err != nil {
		return fmt.Errorf("overlay frame is incomplete: %w", c.err)
	}
	return c.dc.EncodePNG(w)
}

// Close releases the raster context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
