package overlay

import (
	"bytes"
	"image/png"
	"testing"

	"a11ylens/internal/finding"
)

func TestCanvasDrawsAndStaysTransparent(t *testing.T) {
	c, err := NewCanvas(60, 40)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Clear()
	c.Save()
	c.Translate(10, 5)
	c.SetColor(finding.Red)
	c.FillRect(0, 0, 20, 20)
	c.Restore()

	img := c.dc.Image()
	r, g, b, a := img.At(20, 15).RGBA()
	if a == 0 || r < g || r < b {
		t.Errorf("inside fill: rgba = %d %d %d %d, want opaque red", r, g, b, a)
	}
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("background alpha = %d, want transparent", a)
	}
	if _, _, _, a := img.At(50, 35).RGBA(); a != 0 {
		t.Errorf("outside the translated rect alpha = %d", a)
	}
}

func TestCanvasSaveRestoreScopesStyle(t *testing.T) {
	c, err := NewCanvas(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.SetColor(finding.Orange)
	c.Save()
	c.SetColor(finding.Silver)
	c.SetAlpha(0.2)
	c.SetLineWidth(3)
	c.SetFontSize(20)
	c.Translate(4, 4)
	c.Restore()

	if c.cur.color != finding.Orange || c.cur.alpha != 1 || c.cur.width != 1 || c.cur.fontSize != 12 {
		t.Fatalf("style leaked past Restore: %+v", c.cur)
	}
	if c.cur.tx != 0 || c.cur.ty != 0 {
		t.Fatalf("translation leaked past Restore")
	}
	c.Restore() // unbalanced restore is ignored
}

func TestCanvasResizeAndEncode(t *testing.T) {
	c, err := NewCanvas(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Resize(32, 24); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 32 || h != 24 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if err := c.Resize(0, 5); err == nil {
		t.Fatalf("zero width accepted")
	}

	if w := c.MeasureText("tabindex"); w <= 0 {
		t.Errorf("MeasureText = %v, font not loaded", w)
	}
	c.FillText("1", 2, 12, AlignLeft)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("png bounds = %v", b)
	}

	if _, err := NewCanvas(0, 1); err == nil {
		t.Fatalf("NewCanvas accepted an empty size")
	}
}
