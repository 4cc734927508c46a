package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// Fold returns the case-folded, trimmed form of an attribute or style value.
// A new Caser is built per call: Casers are stateful and batch scans run in
// parallel.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ParseHTML builds a snapshot from an HTML document.
// vp is used as the snapshot viewport since markup carries none.
func ParseHTML(r io.Reader, vp Viewport) (*Snapshot, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	snap := &Snapshot{Viewport: vp}
	walkHTML(root, htmlState{layout: true, visibility: "visible"}, snap)
	snap.Reindex()
	return snap, nil
}

// htmlState is what a node inherits from its ancestors.
type htmlState struct {
	layout     bool
	visibility string
}

func walkHTML(n *html.Node, st htmlState, snap *Snapshot) {
	if n.Type == html.ElementNode {
		style := parseStyle(getAttr(n, "style"))
		if hasAttr(n, "hidden") || style["display"] == "none" {
			st.layout = false
		}
		if v, ok := style["visibility"]; ok && v != "inherit" {
			st.visibility = v
		}
		layout := st.layout
		if n.Data == "input" && Fold(getAttr(n, "type")) == "hidden" {
			layout = false
		}
		if !isMetadataTag(n.Data) {
			snap.Elements = append(snap.Elements, &Element{
				Tag:           n.Data,
				Attrs:         attrMap(n),
				LayoutVisible: layout,
				Visibility:    st.visibility,
				Box:           boxFor(n, style),
			})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, st, snap)
	}
}

// isMetadataTag filters elements that never render a box.
func isMetadataTag(tag string) bool {
	switch tag {
	case "html", "head", "meta", "link", "script", "style", "title", "base", "noscript", "template":
		return true
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func attrMap(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		// first occurrence wins, as in browsers
		if _, dup := m[attr.Key]; !dup {
			m[attr.Key] = attr.Val
		}
	}
	return m
}

// parseStyle splits an inline style declaration into folded property/value pairs.
func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = Fold(prop)
		val = Fold(strings.TrimSuffix(strings.TrimSpace(val), "!important"))
		if prop != "" {
			out[prop] = val
		}
	}
	return out
}

// boxFor resolves geometry: data-box first, then inline px offsets.
func boxFor(n *html.Node, style map[string]string) Rect {
	if raw := getAttr(n, "data-box"); raw != "" {
		if r, ok := parseBox(raw); ok {
			return r
		}
	}
	return Rect{
		X: parsePx(style["left"]),
		Y: parsePx(style["top"]),
		W: parsePx(style["width"]),
		H: parsePx(style["height"]),
	}
}

func parseBox(raw string) (Rect, bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 4 {
		return Rect{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Rect{}, false
		}
		vals[i] = v
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, true
}

func parsePx(v string) float64 {
	v = strings.TrimSuffix(v, "px")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
