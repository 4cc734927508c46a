package dom

import (
	"fmt"
	"sort"
	"strings"
)

// Rect is an absolute border box in document coordinates.
type Rect struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Empty reports whether the box has no area.
// Zero-size boxes are still valid diagnostic targets.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Viewport describes the visible window of the document at capture time.
type Viewport struct {
	Width   int     `json:"width" msgpack:"width"`
	Height  int     `json:"height" msgpack:"height"`
	ScrollX float64 `json:"scroll_x" msgpack:"scroll_x"`
	ScrollY float64 `json:"scroll_y" msgpack:"scroll_y"`
}

// Element is one node of the document.
type Element struct {
	Index         int               `json:"-" msgpack:"-"`
	Tag           string            `json:"tag" msgpack:"tag"`
	Attrs         map[string]string `json:"attrs,omitempty" msgpack:"attrs,omitempty"`
	LayoutVisible bool              `json:"visible" msgpack:"visible"`
	Visibility    string            `json:"visibility,omitempty" msgpack:"visibility,omitempty"`
	Box           Rect              `json:"box" msgpack:"box"`
}

// Attr returns the attribute value and whether it is present at all.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil || e.Attrs == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// Has reports attribute presence regardless of value.
func (e *Element) Has(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// ID returns the id attribute, trimmed.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return strings.TrimSpace(v)
}

// String renders a css-like summary: tag#id.class[type=...]
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Tag)
	if id := e.ID(); id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	if cls, ok := e.Attr("class"); ok {
		for _, c := range strings.Fields(cls) {
			b.WriteByte('.')
			b.WriteString(c)
		}
	}
	if typ, ok := e.Attr("type"); ok && typ != "" {
		fmt.Fprintf(&b, "[type=%s]", typ)
	}
	return b.String()
}

// AttrNames returns attribute names sorted, for stable output.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
