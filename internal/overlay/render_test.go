package overlay

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

// recorder is a Surface that logs drawing calls with the state in effect.
type recorder struct {
	w, h   int
	cur    recState
	stack  []recState
	ops    []string
	clears int
}

type recState struct {
	color  finding.Color
	alpha  float64
	tx, ty float64
}

func newRecorder() *recorder {
	return &recorder{w: 100, h: 100, cur: recState{color: finding.Black, alpha: 1}}
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Resize(w, h int) error {
	r.w, r.h = w, h
	return nil
}
func (r *recorder) Clear() { r.clears++; r.ops = nil }
func (r *recorder) Save()  { r.stack = append(r.stack, r.cur) }
func (r *recorder) Restore() {
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}
func (r *recorder) Translate(dx, dy float64)     { r.cur.tx += dx; r.cur.ty += dy }
func (r *recorder) SetColor(c finding.Color)     { r.cur.color = c }
func (r *recorder) SetAlpha(a float64)           { r.cur.alpha = a }
func (r *recorder) SetLineWidth(float64)         {}
func (r *recorder) SetFontSize(float64)          {}
func (r *recorder) MeasureText(s string) float64 { return float64(len(s)) * 6 }

func (r *recorder) log(op string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf("%s %s a=%.1f t=(%g,%g) %s",
		op, r.cur.color, r.cur.alpha, r.cur.tx, r.cur.ty, fmt.Sprint(args...)))
}

func (r *recorder) StrokeRect(x, y, w, h float64) { r.log("stroke", x, " ", y, " ", w, " ", h) }
func (r *recorder) FillRect(x, y, w, h float64)   { r.log("fill", x, " ", y, " ", w, " ", h) }
func (r *recorder) FillCircle(x, y, rad float64)  { r.log("circle", x, " ", y) }
func (r *recorder) Line(x1, y1, x2, y2 float64)   { r.log("line", x1, " ", y1, " ", x2, " ", y2) }
func (r *recorder) FillPolygon(pts ...inspect.Point) {
	r.log("head", len(pts))
}
func (r *recorder) FillText(s string, x, y float64, align Align) {
	r.log("text", s, " ", x, " ", y, " ", align)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func scan(t *testing.T, markup string, vp dom.Viewport) (*inspect.Result, dom.Viewport) {
	t.Helper()
	snap, err := dom.ParseHTML(strings.NewReader(markup), vp)
	if err != nil {
		t.Fatal(err)
	}
	return inspect.Inspect(context.Background(), snap, inspect.DefaultOptions()), vp
}

func TestRenderFindingBox(t *testing.T) {
	res, vp := scan(t, `<img data-box="10 20 30 40">`, dom.Viewport{Width: 100, Height: 100})
	rec := newRecorder()
	NewRenderer().Render(rec, res, vp)

	want := []string{
		"stroke red a=1.0 t=(0,0) 9.5 19.5 31 41",
		"fill red a=0.2 t=(0,0) 10 20 30 40",
		"text black a=1.0 t=(0,0) alt? 40 18 2",
	}
	if len(rec.ops) != len(want) {
		t.Fatalf("ops:\n%s", strings.Join(rec.ops, "\n"))
	}
	for i := range want {
		if rec.ops[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, rec.ops[i], want[i])
		}
	}
	if len(rec.stack) != 0 {
		t.Errorf("unbalanced Save/Restore: depth %d", len(rec.stack))
	}
}

func TestRenderScrollTranslation(t *testing.T) {
	res, vp := scan(t, `<img data-box="0 500 10 10">`, dom.Viewport{Width: 100, Height: 100, ScrollX: 3, ScrollY: 480})
	rec := newRecorder()
	NewRenderer().Render(rec, res, vp)
	for _, op := range rec.ops {
		if !strings.Contains(op, "t=(-3,-480)") {
			t.Fatalf("drawn without scroll translation: %s", op)
		}
	}
	if rec.cur.tx != 0 || rec.cur.ty != 0 {
		t.Errorf("translation leaked past Render")
	}
}

func TestRenderTabPath(t *testing.T) {
	res, vp := scan(t, `
		<input id="b" tabindex="2" aria-label="b" data-box="100 100 50 20">
		<input id="a" tabindex="1" data-box="10 10 50 20">
		<a id="c" data-box="200 200 40 10"></a>`, dom.Viewport{Width: 400, Height: 400})
	rec := newRecorder()
	NewRenderer().Render(rec, res, vp)

	var lines, texts []string
	for _, op := range rec.ops {
		switch {
		case strings.HasPrefix(op, "line"):
			lines = append(lines, op)
		case strings.HasPrefix(op, "text") && strings.HasSuffix(op, " 0"):
			texts = append(texts, op)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("lines:\n%s", strings.Join(lines, "\n"))
	}
	wantLines := []string{
		"line darkblue a=1.0 t=(0,0) 5 5 20 20",
		"line darkblue a=1.0 t=(0,0) 20 20 110 110",
		"line darkred a=1.0 t=(0,0) 110 110 205 205",
	}
	for i := range wantLines {
		if lines[i] != wantLines[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], wantLines[i])
		}
	}
	if rec.count("head") != 3 || rec.count("circle") != 3 {
		t.Errorf("every arrow needs a dot and a head")
	}
	wantTexts := []string{
		"text black a=1.0 t=(0,0) 1 25 20 0",
		"text black a=1.0 t=(0,0) 2 115 110 0",
	}
	if strings.Join(texts, "\n") != strings.Join(wantTexts, "\n") {
		t.Errorf("hint labels:\n%s", strings.Join(texts, "\n"))
	}
}

func TestRenderLinks(t *testing.T) {
	res, vp := scan(t, `<label for="f" data-box="0 0 40 10"></label><input id="f" data-box="50 0 40 10">`, dom.Viewport{Width: 100, Height: 100})
	rec := newRecorder()
	NewRenderer().Render(rec, res, vp)
	if rec.count("line lawngreen") != 1 {
		t.Fatalf("expected one label link:\n%s", strings.Join(rec.ops, "\n"))
	}
}

func TestRenderNilAndEmpty(t *testing.T) {
	rec := newRecorder()
	NewRenderer().Render(rec, nil, dom.Viewport{})
	if rec.clears != 1 || len(rec.ops) != 0 {
		t.Fatalf("nil result should only clear")
	}
	res, vp := scan(t, `<p></p>`, dom.Viewport{Width: 10, Height: 10})
	NewRenderer().Render(rec, res, vp)
	if len(rec.ops) != 0 {
		t.Fatalf("empty document drew: %v", rec.ops)
	}
}

func TestArrowHead(t *testing.T) {
	pts := arrowHeadPoints(inspect.Point{X: 0, Y: 0}, inspect.Point{X: 100, Y: 0})
	if len(pts) != 3 || pts[1] != (inspect.Point{X: 100, Y: 0}) {
		t.Fatalf("tip must be the middle point: %+v", pts)
	}
	for _, p := range []inspect.Point{pts[0], pts[2]} {
		d := math.Hypot(p.X-100, p.Y)
		if math.Abs(d-arrowHead) > 1e-9 || p.X >= 100 {
			t.Errorf("head corner %+v off by length or side", p)
		}
	}
	if math.Abs(pts[0].Y+pts[2].Y) > 1e-9 {
		t.Errorf("head not symmetric: %+v", pts)
	}
}
