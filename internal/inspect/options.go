package inspect

import (
	"fmt"
	"sort"
	"strings"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

// Point is a position in document coordinates.
type Point struct {
	X, Y float64
}

// Options tunes the fixed rule set.
type Options struct {
	// EmptyAlt tags images whose alt attribute is the empty string.
	// finding.NoColor turns the tier off.
	EmptyAlt finding.Color
	// Origin is where the tab path starts.
	Origin Point
	// Skip names rules that are not run.
	Skip map[string]bool
}

func DefaultOptions() Options {
	return Options{
		EmptyAlt: finding.Orange,
		Origin:   Point{X: 5, Y: 5},
	}
}

// SkipRules returns opts with the named rules disabled. Unknown names are an error.
func (o Options) SkipRules(names ...string) (Options, error) {
	skip := make(map[string]bool, len(o.Skip)+len(names))
	for k, v := range o.Skip {
		skip[k] = v
	}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := ruleByName(n); !ok {
			return o, fmt.Errorf("unknown rule %q (known: %s)", n, strings.Join(RuleNames(), ", "))
		}
		skip[n] = true
	}
	o.Skip = skip
	return o, nil
}

// Anchor is where arrows attach to an element: offset from the top-left
// corner by half the box height on both axes.
func Anchor(e *dom.Element) Point {
	h := e.Box.H / 2
	return Point{X: e.Box.X + h, Y: e.Box.Y + h}
}

// Link connects a label to the field it names.
type Link struct {
	From *dom.Element
	To   *dom.Element
}

// Output is what a single rule produces.
type Output struct {
	Findings []finding.Finding
	Links    []Link
	Path     Path
	UseHints bool
}

// Rule is one member of the fixed rule set.
type Rule struct {
	Name string
	Run  func(q dom.Query, opts Options) Output
}

var rules = []Rule{
	{Name: "alt", Run: AltText},
	{Name: "labels", Run: Labels},
	{Name: "taborder", Run: TabOrder},
	{Name: "accesskey", Run: AccessKeys},
}

// Rules returns the rule set in execution order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// RuleNames lists rule names, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

func ruleByName(name string) (Rule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}
