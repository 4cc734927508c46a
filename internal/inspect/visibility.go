package inspect

import "a11ylens/internal/dom"

// ReallyVisible reports whether e has a layout box and is not hidden through
// the visibility property, which layout visibility alone does not catch.
func ReallyVisible(e *dom.Element) bool {
	if e == nil || !e.LayoutVisible {
		return false
	}
	switch dom.Fold(e.Visibility) {
	case "hidden", "collapse":
		return false
	}
	return true
}

// candidates returns the really visible elements matching m, in document order.
func candidates(q dom.Query, m dom.Matcher) []*dom.Element {
	vis := q.Visible(m)
	out := make([]*dom.Element, 0, len(vis))
	for _, e := range vis {
		if ReallyVisible(e) {
			out = append(out, e)
		}
	}
	return out
}
