package inspect

import (
	"context"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

func parse(t *testing.T, body string) *dom.Snapshot {
	t.Helper()
	snap, err := dom.ParseHTML(strings.NewReader("<body>"+body+"</body>"), dom.Viewport{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	return snap
}

// summary renders findings as "id:CODE:label" for compact comparisons.
func summary(fs []finding.Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Target.ID()+":"+f.Code.ID()+":"+f.Label)
	}
	return out
}

func stopIDs(p Path) []string {
	out := make([]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		out = append(out, s.Target.ID())
	}
	return out
}

func TestReallyVisible(t *testing.T) {
	cases := []struct {
		name string
		e    *dom.Element
		want bool
	}{
		{"nil", nil, false},
		{"no layout", &dom.Element{Visibility: "visible"}, false},
		{"visible", &dom.Element{LayoutVisible: true, Visibility: "visible"}, true},
		{"unset", &dom.Element{LayoutVisible: true}, true},
		{"hidden", &dom.Element{LayoutVisible: true, Visibility: "hidden"}, false},
		{"hidden upper", &dom.Element{LayoutVisible: true, Visibility: " HIDDEN "}, false},
		{"collapse", &dom.Element{LayoutVisible: true, Visibility: "collapse"}, false},
	}
	for _, tc := range cases {
		if got := ReallyVisible(tc.e); got != tc.want {
			t.Errorf("%s: ReallyVisible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAltText(t *testing.T) {
	snap := parse(t, `
		<img id="missing">
		<img id="empty" alt="">
		<img id="ok" alt="logo">
		<img id="hidden" style="visibility:hidden">
		<div hidden><img id="gone"></div>`)

	got := summary(AltText(snap, DefaultOptions()).Findings)
	want := []string{"missing:ALT1001:alt?", `empty:ALT1002:alt=""`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}

	opts := DefaultOptions()
	opts.EmptyAlt = finding.NoColor
	got = summary(AltText(snap, opts).Findings)
	if !reflect.DeepEqual(got, want[:1]) {
		t.Fatalf("with empty alt off: %v", got)
	}
}

func TestAltPresentIsNeverRed(t *testing.T) {
	snap := parse(t, `<img id="a" alt=""><img id="b" alt=" "><img id="c" alt="x">`)
	for _, tier := range []finding.Color{finding.NoColor, finding.Orange, finding.Yellow} {
		opts := DefaultOptions()
		opts.EmptyAlt = tier
		for _, f := range AltText(snap, opts).Findings {
			if f.Color == finding.Red {
				t.Fatalf("tier %s: red finding on %s", tier, f.Target)
			}
		}
	}
}

func TestLabels(t *testing.T) {
	snap := parse(t, `
		<label id="l-ok" for="name"></label>
		<input id="name">
		<label id="l-none"></label>
		<label id="l-blank" for="  "></label>
		<label id="l-missing" for="nowhere"></label>
		<label id="l-hidden" for="secret"></label>
		<input id="secret" style="visibility:hidden">
		<label id="l-gone" for="gone"></label>
		<input id="gone" hidden>
		<input type="text">
		<input id="orphan" type="email">
		<input id="hidden-label-target">
		<label for="hidden-label-target" hidden></label>
		<input id="go" type="SUBMIT">
		<input type="image">
		<textarea id="notes"></textarea>
		<button id="b"></button>`)

	out := Labels(snap, DefaultOptions())
	got := summary(out.Findings)
	want := []string{
		"l-none:LBL2001:for?",
		"l-blank:LBL2001:for?",
		"l-missing:LBL2002:for nowhere?",
		"l-gone:LBL2002:for gone?",
		":FLD2101:id?",
		"orphan:FLD2102:label?",
		"notes:FLD2102:label?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings:\n got %v\nwant %v", got, want)
	}
	// a visibility:hidden target still has a box to point at
	var links []string
	for _, l := range out.Links {
		links = append(links, l.From.ID()+"->"+l.To.ID())
	}
	if !reflect.DeepEqual(links, []string{"l-ok->name", "l-hidden->secret"}) {
		t.Fatalf("links = %v", links)
	}
}

func TestTabOrderMixedHints(t *testing.T) {
	snap := parse(t, `
		<img>
		<label for="x"></label>
		<input id="x" tabindex="2">
		<input id="y" tabindex="1">
		<input id="z">`)

	res := Inspect(context.Background(), snap, DefaultOptions())

	if n := len(res.Findings.Filter(func(f finding.Finding) bool {
		return f.Color == finding.Red && f.Label == "alt?"
	})); n != 1 {
		t.Errorf("alt? findings = %d, want 1", n)
	}
	if len(res.Links) != 1 || res.Links[0].To.ID() != "x" {
		t.Errorf("expected one link to #x, got %+v", res.Links)
	}
	if !res.UseHints {
		t.Fatalf("useHints should be true")
	}
	if got := stopIDs(res.Path); !reflect.DeepEqual(got, []string{"y", "x", "z"}) {
		t.Fatalf("path = %v, want [y x z]", got)
	}

	segs := res.Segments()
	colors := []finding.Color{segs[0].Color, segs[1].Color, segs[2].Color}
	if !reflect.DeepEqual(colors, []finding.Color{finding.DarkBlue, finding.DarkBlue, finding.DarkRed}) {
		t.Errorf("arrow colours = %v", colors)
	}
	if segs[0].Label != "1" || segs[1].Label != "2" || segs[2].Label != "" {
		t.Errorf("labels = %q %q %q", segs[0].Label, segs[1].Label, segs[2].Label)
	}

	unordered := res.Findings.Filter(func(f finding.Finding) bool { return f.Code == finding.TabUnordered })
	if len(unordered) != 1 || unordered[0].Target.ID() != "z" || unordered[0].Color != finding.Orange {
		t.Errorf("no-hint findings = %v", summary(unordered))
	}
}

func TestTabOrderWithoutHints(t *testing.T) {
	snap := parse(t, `<a id="a1"></a><input id="i1"><select id="s1"></select><button id="b1"></button><textarea id="t1"></textarea><div hidden tabindex="3"></div>`)

	out := TabOrder(snap, DefaultOptions())
	if out.UseHints {
		t.Fatalf("useHints should be false")
	}
	if len(out.Findings) != 0 {
		t.Fatalf("unexpected findings: %v", summary(out.Findings))
	}
	if got := stopIDs(out.Path); !reflect.DeepEqual(got, []string{"a1", "i1", "s1", "b1", "t1"}) {
		t.Fatalf("path = %v", got)
	}
	for _, s := range out.Path.Segments(out.UseHints) {
		if s.Suspect() {
			t.Errorf("suspect arrow without hints: %+v", s)
		}
	}
}

func TestUseHintsIsDocumentWide(t *testing.T) {
	// The only hint sits on an invisible element; it still turns hints on.
	snap := parse(t, `<a id="a"></a><a id="b"></a><p hidden><a tabindex="0"></a></p>`)
	out := TabOrder(snap, DefaultOptions())
	if !out.UseHints {
		t.Fatalf("useHints should consider invisible focusables")
	}
	if len(out.Findings) != 2 {
		t.Fatalf("findings = %v", summary(out.Findings))
	}

	// Any tabindex attribute turns hints on. A blank one is no position,
	// a non-numeric one removes the element.
	snap = parse(t, `<a id="a" tabindex=""></a><a id="b"></a><input id="c" tabindex="first">`)
	out = TabOrder(snap, DefaultOptions())
	if !out.UseHints {
		t.Fatalf("blank and non-numeric tabindex must still enable hints")
	}
	if got := stopIDs(out.Path); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("path = %v", got)
	}
	got := summary(out.Findings)
	want := []string{"a:TAB3002:", "b:TAB3002:", "c:TAB3001:tabindex=-1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
	for _, s := range out.Path.Segments(out.UseHints) {
		if !s.Suspect() {
			t.Errorf("unhinted stop %s should get a suspect arrow", s.Stop.Target)
		}
	}
}

func TestParseHint(t *testing.T) {
	cases := []struct {
		attrs map[string]string
		value int
		kind  HintKind
	}{
		{nil, 0, HintNone},
		{map[string]string{"tabindex": "  "}, 0, HintNone},
		{map[string]string{"tabindex": " 3 "}, 3, HintRanked},
		{map[string]string{"tabindex": "0"}, 0, HintRanked},
		{map[string]string{"tabindex": "-2"}, -2, HintRemoved},
		{map[string]string{"tabindex": "first"}, 0, HintRemoved},
	}
	for _, tc := range cases {
		v, kind := ParseHint(&dom.Element{Tag: "a", Attrs: tc.attrs})
		if kind != tc.kind || (kind == HintRanked && v != tc.value) {
			t.Errorf("ParseHint(%v) = %d, %d; want %d, %d", tc.attrs, v, kind, tc.value, tc.kind)
		}
	}
}

func TestNegativeHintRemovesStop(t *testing.T) {
	snap := parse(t, `<input id="keep"><input id="drop" tabindex="-1"><a id="far" tabindex=" -7 "></a>`)
	out := TabOrder(snap, DefaultOptions())

	if got := stopIDs(out.Path); !reflect.DeepEqual(got, []string{"keep"}) {
		t.Fatalf("path = %v", got)
	}
	got := summary(out.Findings)
	want := []string{"keep:TAB3002:", "drop:TAB3001:tabindex=-1", "far:TAB3001:tabindex=-1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
	for _, f := range out.Findings {
		if f.Code == finding.TabRemoved && f.Color != finding.GreenYellow {
			t.Errorf("removed stop colour = %s", f.Color)
		}
	}
}

func TestSortStopsIsTotal(t *testing.T) {
	el := func(i int) *dom.Element { return &dom.Element{Index: i, Tag: "a"} }
	base := []TabStop{
		{Target: el(0), Rank: Unranked, Index: 0},
		{Target: el(1), Rank: Ranked(3), Index: 1},
		{Target: el(2), Rank: Ranked(0), Index: 2},
		{Target: el(3), Rank: Ranked(3), Index: 3},
		{Target: el(4), Rank: Unranked, Index: 4},
		{Target: el(5), Rank: Ranked(1), Index: 5},
		{Target: el(6), Rank: Ranked(0), Index: 6},
	}
	want := []int{2, 6, 5, 1, 3, 0, 4}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		stops := append([]TabStop(nil), base...)
		rng.Shuffle(len(stops), func(i, j int) { stops[i], stops[j] = stops[j], stops[i] })
		SortStops(stops)
		got := make([]int, len(stops))
		for i, s := range stops {
			got[i] = s.Index
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: order = %v, want %v", round, got, want)
		}
	}
}

func TestRankCompare(t *testing.T) {
	cases := []struct {
		a, b Rank
		want int
	}{
		{Ranked(0), Unranked, -1},
		{Unranked, Ranked(100), 1},
		{Unranked, Unranked, 0},
		{Ranked(2), Ranked(10), -1},
		{Ranked(4), Ranked(4), 0},
	}
	for _, tc := range cases {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("%s vs %s = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSegments(t *testing.T) {
	if segs := (Path{Origin: Point{5, 5}}).Segments(true); len(segs) != 0 {
		t.Fatalf("empty path drew %d arrows", len(segs))
	}

	target := &dom.Element{Tag: "input", Box: dom.Rect{X: 100, Y: 50, W: 200, H: 20}, Attrs: map[string]string{"tabindex": "4"}}
	p := Path{Origin: Point{5, 5}, Stops: []TabStop{{Target: target, Rank: Ranked(4)}}}
	segs := p.Segments(true)
	if len(segs) != 1 {
		t.Fatalf("one stop gave %d arrows", len(segs))
	}
	if segs[0].From != (Point{5, 5}) || segs[0].To != (Point{110, 60}) {
		t.Errorf("segment = %+v", segs[0])
	}
	if segs[0].Label != "4" || segs[0].Color != finding.DarkBlue {
		t.Errorf("label/colour = %q/%s", segs[0].Label, segs[0].Color)
	}
}

func TestInspectIdempotent(t *testing.T) {
	snap := parse(t, `
		<img><img alt="">
		<label for="q"></label><input id="q" tabindex="1">
		<a tabindex="1" accesskey="h"></a><a></a><a tabindex="-1"></a>`)

	first := Inspect(context.Background(), snap, DefaultOptions())
	second := Inspect(context.Background(), snap, DefaultOptions())
	if !reflect.DeepEqual(summary(first.Findings.Items()), summary(second.Findings.Items())) {
		t.Fatalf("findings differ between runs")
	}
	if !reflect.DeepEqual(stopIDs(first.Path), stopIDs(second.Path)) {
		t.Fatalf("paths differ between runs")
	}
	for i := range first.Path.Stops {
		if first.Path.Stops[i].Target != second.Path.Stops[i].Target {
			t.Fatalf("stop %d differs", i)
		}
	}
	keys := first.Findings.Filter(func(f finding.Finding) bool { return f.Code == finding.AccessKey })
	if len(keys) != 1 || keys[0].Label != "K=h" || keys[0].Color != finding.Silver {
		t.Errorf("access key findings = %v", summary(keys))
	}
}

func TestSkipRules(t *testing.T) {
	snap := parse(t, `<img><a accesskey="x"></a>`)
	opts, err := DefaultOptions().SkipRules("alt", "TabOrder")
	if err != nil {
		t.Fatal(err)
	}
	res := Inspect(context.Background(), snap, opts)
	for _, f := range res.Findings.Items() {
		if f.Code.Rule() == "alt" {
			t.Errorf("skipped rule produced %s", f.Code.ID())
		}
	}
	if res.Path.Len() != 0 {
		t.Errorf("skipped taborder still built a path")
	}
	if res.Findings.Count(finding.Silver) != 1 {
		t.Errorf("accesskey rule should still run")
	}
	if _, err := DefaultOptions().SkipRules("contrast"); err == nil {
		t.Errorf("unknown rule accepted")
	}
}

func TestEmptyDocument(t *testing.T) {
	res := Inspect(context.Background(), &dom.Snapshot{}, DefaultOptions())
	if res.Findings.Len() != 0 || res.Path.Len() != 0 || len(res.Segments()) != 0 {
		t.Fatalf("empty document produced output")
	}
}
