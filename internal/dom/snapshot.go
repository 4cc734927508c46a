package dom

import "strings"

// Matcher selects elements.
type Matcher func(*Element) bool

// Query is the document query collaborator used by the inspection rules.
// All results are in document order.
type Query interface {
	// All returns matching elements regardless of visibility.
	All(match Matcher) []*Element
	// Visible returns matching elements that have a layout box.
	Visible(match Matcher) []*Element
	// ByID returns the first element carrying the id, or nil.
	ByID(id string) *Element
}

// Snapshot is a captured document.
type Snapshot struct {
	Source   string     `json:"source,omitempty" msgpack:"source,omitempty"`
	Viewport Viewport   `json:"viewport" msgpack:"viewport"`
	Elements []*Element `json:"elements" msgpack:"elements"`
}

var _ Query = (*Snapshot)(nil)

// Reindex assigns traversal indexes 0..n-1 and normalises tag names.
// Nil entries are dropped.
func (s *Snapshot) Reindex() {
	kept := s.Elements[:0]
	for _, e := range s.Elements {
		if e == nil {
			continue
		}
		e.Tag = strings.ToLower(strings.TrimSpace(e.Tag))
		e.Index = len(kept)
		kept = append(kept, e)
	}
	s.Elements = kept
}

// Len returns the number of elements.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Elements)
}

func (s *Snapshot) All(match Matcher) []*Element {
	if s == nil {
		return nil
	}
	var out []*Element
	for _, e := range s.Elements {
		if match == nil || match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) Visible(match Matcher) []*Element {
	if s == nil {
		return nil
	}
	var out []*Element
	for _, e := range s.Elements {
		if !e.LayoutVisible {
			continue
		}
		if match == nil || match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) ByID(id string) *Element {
	if s == nil || id == "" {
		return nil
	}
	for _, e := range s.Elements {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// Tag matches any of the given tag names.
func Tag(names ...string) Matcher {
	return func(e *Element) bool {
		for _, n := range names {
			if e.Tag == n {
				return true
			}
		}
		return false
	}
}

// HasAttr matches elements carrying the attribute.
func HasAttr(name string) Matcher {
	return func(e *Element) bool { return e.Has(name) }
}

// AttrEquals matches an exact attribute value.
func AttrEquals(name, value string) Matcher {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// And matches when every matcher does.
func And(ms ...Matcher) Matcher {
	return func(e *Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return func(e *Element) bool { return !m(e) }
}
