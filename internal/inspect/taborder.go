package inspect

import (
	"sort"
	"strconv"
	"strings"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

// focusable matches elements that take keyboard focus.
var focusable = dom.Tag("a", "input", "select", "textarea", "button")

// Rank orders tab stops. Finite ranks come from an explicit hint and sort
// before infinite ones.
type Rank struct {
	Finite bool
	Value  int
}

// Unranked is the rank of a stop without a hint.
var Unranked = Rank{}

func Ranked(v int) Rank { return Rank{Finite: true, Value: v} }

// Compare returns -1, 0 or +1.
func (r Rank) Compare(o Rank) int {
	switch {
	case r.Finite && !o.Finite:
		return -1
	case !r.Finite && o.Finite:
		return 1
	case !r.Finite:
		return 0
	case r.Value < o.Value:
		return -1
	case r.Value > o.Value:
		return 1
	}
	return 0
}

func (r Rank) String() string {
	if !r.Finite {
		return "∞"
	}
	return strconv.Itoa(r.Value)
}

// TabStop is one element of the visiting order.
type TabStop struct {
	Target *dom.Element
	Rank   Rank
	Index  int // document order
}

// Hint is the literal attribute text of a finite stop, "" otherwise.
func (s TabStop) Hint() string {
	if !s.Rank.Finite {
		return ""
	}
	v, _ := s.Target.Attr("tabindex")
	return strings.TrimSpace(v)
}

// compareStops is a total order: rank, then document index.
func compareStops(a, b TabStop) int {
	if c := a.Rank.Compare(b.Rank); c != 0 {
		return c
	}
	switch {
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	}
	return 0
}

// SortStops orders stops in visiting order. The result does not depend on
// the input order.
func SortStops(stops []TabStop) {
	sort.Slice(stops, func(i, j int) bool {
		return compareStops(stops[i], stops[j]) < 0
	})
}

// HintKind classifies the tabindex attribute of an element.
type HintKind uint8

const (
	HintNone    HintKind = iota // absent or blank
	HintRanked                  // integer >= 0
	HintRemoved                 // negative or not a number
)

// ParseHint reads the tabindex of e. A non-blank value that is not an
// integer takes the element out of the order, like a negative one.
func ParseHint(e *dom.Element) (int, HintKind) {
	raw, ok := e.Attr("tabindex")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, HintNone
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return v, HintRemoved
	}
	return v, HintRanked
}

// UsesHints reports whether any focusable element of the document, visible
// or not, carries a tabindex attribute, whatever its value.
func UsesHints(q dom.Query) bool {
	return len(q.All(dom.And(focusable, dom.HasAttr("tabindex")))) > 0
}

// Path is the reconstructed visiting order.
type Path struct {
	Origin Point
	Stops  []TabStop
}

func (p Path) Len() int { return len(p.Stops) }

// Segment is one arrow of the drawn path.
type Segment struct {
	From, To Point
	Color    finding.Color
	// Label is the hint text drawn next to To, "" for unranked stops.
	Label string
	Stop  TabStop
}

// Suspect reports whether the arrow leads to a stop of unknown position.
func (s Segment) Suspect() bool { return s.Color == finding.DarkRed }

// Segments chains the stops from the origin. An unranked stop gets a
// suspect arrow only when hints are used elsewhere in the document.
func (p Path) Segments(useHints bool) []Segment {
	if len(p.Stops) == 0 {
		return nil
	}
	segs := make([]Segment, 0, len(p.Stops))
	from := p.Origin
	for _, st := range p.Stops {
		to := Anchor(st.Target)
		color := finding.DarkBlue
		if useHints && !st.Rank.Finite {
			color = finding.DarkRed
		}
		segs = append(segs, Segment{From: from, To: to, Color: color, Label: st.Hint(), Stop: st})
		from = to
	}
	return segs
}

// TabOrder reconstructs the keyboard visiting order.
//
// Negative or non-numeric hints remove an element from the order and are
// reported instead.
// Unhinted elements sort after every hinted one and are reported only when
// the document uses hints somewhere. Ties break on document order.
func TabOrder(q dom.Query, opts Options) Output {
	useHints := UsesHints(q)

	var (
		rep   finding.SliceReporter
		stops []TabStop
	)
	for _, e := range candidates(q, focusable) {
		hint, kind := ParseHint(e)
		switch kind {
		case HintRemoved:
			rep.Report(finding.TabRemoved, finding.GreenYellow, e, "tabindex=-1")
		case HintRanked:
			stops = append(stops, TabStop{Target: e, Rank: Ranked(hint), Index: e.Index})
		default:
			stops = append(stops, TabStop{Target: e, Rank: Unranked, Index: e.Index})
			if useHints {
				rep.Report(finding.TabUnordered, finding.Orange, e, "")
			}
		}
	}
	SortStops(stops)

	return Output{
		Findings: rep.Items,
		Path:     Path{Origin: opts.Origin, Stops: stops},
		UseHints: useHints,
	}
}
